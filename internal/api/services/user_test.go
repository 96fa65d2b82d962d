package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
	"stockroom/internal/util"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	store, recorder := newTestStore(t)
	service := NewUserService(store, recorder)

	t.Run("password is stored hashed", func(t *testing.T) {
		user, err := service.Create(ctx, CreateUserInput{
			Username:  "alice",
			Password:  "secret123",
			FirstName: "Alice",
			LastName:  "Smith",
		}, nil)
		require.NoError(t, err)

		assert.NotEqual(t, "secret123", user.Password)
		assert.NoError(t, util.CheckPassword(user.Password, "secret123"))

		activities, err := store.Activities().ListByItem(ctx, domain.ItemTypeUser, user.ID)
		require.NoError(t, err)
		assert.Len(t, activities, 1)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := service.Create(ctx, CreateUserInput{Username: "alice", Password: "x", FirstName: "A", LastName: "B"}, nil)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	store, recorder := newTestStore(t)
	service := NewUserService(store, recorder)

	user, err := service.Create(ctx, CreateUserInput{Username: "bob", Password: "old-pass", FirstName: "Bob", LastName: "Jones"}, nil)
	require.NoError(t, err)

	t.Run("password change rehashes", func(t *testing.T) {
		newPass := "new-pass"
		updated, err := service.Update(ctx, user.ID, UpdateUserInput{Password: &newPass}, nil)
		require.NoError(t, err)
		assert.NoError(t, util.CheckPassword(updated.Password, "new-pass"))
		assert.Error(t, util.CheckPassword(updated.Password, "old-pass"))
	})

	t.Run("partial edit", func(t *testing.T) {
		dept := "IT"
		updated, err := service.Update(ctx, user.ID, UpdateUserInput{Department: &dept}, nil)
		require.NoError(t, err)
		require.NotNil(t, updated.Department)
		assert.Equal(t, "IT", *updated.Department)
		assert.Equal(t, "Bob", updated.FirstName)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := service.Update(ctx, 9999, UpdateUserInput{}, nil)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	store, recorder := newTestStore(t)
	service := NewUserService(store, recorder)

	user, err := service.Create(ctx, CreateUserInput{Username: "carol", Password: "x", FirstName: "Carol", LastName: "Lee"}, nil)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, user.ID, nil))
	_, err = service.Get(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.ErrorIs(t, service.Delete(ctx, user.ID, nil), repository.ErrUserNotFound)
}
