package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"country-explorer/internal/apperror"
	"country-explorer/internal/models"
)

// TokenTTL is the lifetime of every issued session token.
const TokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens. Tokens are not stored
// anywhere; there is no revocation.
type TokenIssuer struct {
	secretKey []byte
	ttl       time.Duration
}

// NewTokenIssuer fails with a configuration error when secret is empty. Call
// it during startup so a missing secret stops the process before it serves.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, apperror.Configuration("JWT_SECRET is not defined in environment variables")
	}
	return &TokenIssuer{secretKey: []byte(secret), ttl: ttl}, nil
}

func (t *TokenIssuer) Issue(userID string, role models.UserRole) (string, error) {
	if userID == "" || !role.Valid() {
		return "", fmt.Errorf("cannot issue token for user %q with role %q", userID, role)
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secretKey)
}

func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" || !models.UserRole(claims.Role).Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
