package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "foo@bar.com", NormalizeEmail(" Foo@Bar.com "))
	assert.Equal(t, "a@b.com", NormalizeEmail("a@b.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestUserRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleSystemAdmin.Valid())
	assert.False(t, UserRole("root").Valid())
}

func TestUser_JSONNeverContainsHash(t *testing.T) {
	u := &User{
		ID:           "1",
		Name:         "A",
		Email:        "a@b.com",
		PasswordHash: "$2a$12$secret",
		Role:         RoleUser,
		CreatedAt:    time.Now(),
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$12$secret")
	assert.NotContains(t, string(raw), "password")

	raw, err = json.Marshal(NewAuthResponse(u, "tok"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"A","email":"a@b.com","role":"user","token":"tok"}`, string(raw))
}
