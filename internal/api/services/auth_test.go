package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTKey = "test-key"

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	store, recorder := newTestStore(t)
	users := NewUserService(store, recorder)
	auth := NewAuthService(store, testJWTKey)

	created, err := users.Create(ctx, CreateUserInput{
		Username:  "alice",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
		IsAdmin:   true,
	}, nil)
	require.NoError(t, err)

	t.Run("valid credentials yield a token", func(t *testing.T) {
		user, token, err := auth.SignIn(ctx, "alice", "secret123")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		require.NotEmpty(t, token)

		parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
			return []byte(testJWTKey), nil
		})
		require.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, float64(created.ID), claims["id"])
		assert.Equal(t, "alice", claims["username"])
		assert.Equal(t, true, claims["is_admin"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "nobody", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
