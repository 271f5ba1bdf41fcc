package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-explorer/internal/apperror"
	"country-explorer/internal/models"
)

func TestNewTokenIssuer_EmptySecretIsConfigError(t *testing.T) {
	_, err := NewTokenIssuer("", TokenTTL)

	require.Error(t, err)
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindConfiguration, appErr.Kind)
}

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenIssuer("super-secret", TokenTTL)
	require.NoError(t, err)

	tok, err := issuer.Issue("user-123", models.RoleUser)
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenIssuer("secret", -time.Second)
	require.NoError(t, err)

	tok, err := issuer.Issue("u1", models.RoleUser)
	require.NoError(t, err)

	_, err = issuer.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	right, _ := NewTokenIssuer("right-secret", TokenTTL)
	wrong, _ := NewTokenIssuer("wrong-secret", TokenTTL)

	tok, err := right.Issue("u2", models.RoleUser)
	require.NoError(t, err)

	_, err = wrong.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	issuer, _ := NewTokenIssuer("secret", TokenTTL)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: "u3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(tok)
	assert.Error(t, err)
}

func TestIssue_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	issuer, _ := NewTokenIssuer("secret", TokenTTL)

	_, err := issuer.Issue("u4", models.UserRole("root"))
	assert.Error(t, err)

	_, err = issuer.Issue("", models.RoleUser)
	assert.Error(t, err)
}

func TestParse_RejectsUnknownRoleClaim(t *testing.T) {
	t.Parallel()

	issuer, _ := NewTokenIssuer("secret", TokenTTL)
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u5",
		Role:   "root",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tok, err := forged.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
