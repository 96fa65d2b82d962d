package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
)

func TestMemoryStoreAssets(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		asset := &domain.Asset{AssetTag: "T-1", Name: "Laptop", Category: "laptop", Status: domain.AssetStatusAvailable}
		require.NoError(t, store.Assets().Create(ctx, asset))
		assert.NotZero(t, asset.ID)
		assert.False(t, asset.CreatedAt.IsZero())
	})

	t.Run("duplicate tag rejected", func(t *testing.T) {
		err := store.Assets().Create(ctx, &domain.Asset{AssetTag: "T-1", Name: "Other", Category: "laptop"})
		assert.ErrorIs(t, err, ErrAssetTagExists)
	})

	t.Run("get by tag", func(t *testing.T) {
		asset, err := store.Assets().GetByTag(ctx, "T-1")
		require.NoError(t, err)
		assert.Equal(t, "Laptop", asset.Name)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Assets().Get(ctx, 9999)
		assert.ErrorIs(t, err, ErrAssetNotFound)
	})

	t.Run("get for update matches get", func(t *testing.T) {
		asset, err := store.Assets().GetByTag(ctx, "T-1")
		require.NoError(t, err)

		locked, err := store.Assets().GetForUpdate(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, asset, locked)

		_, err = store.Assets().GetForUpdate(ctx, 9999)
		assert.ErrorIs(t, err, ErrAssetNotFound)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		asset, err := store.Assets().GetByTag(ctx, "T-1")
		require.NoError(t, err)
		asset.Name = "mutated"

		again, err := store.Assets().GetByTag(ctx, "T-1")
		require.NoError(t, err)
		assert.Equal(t, "Laptop", again.Name)
	})

	t.Run("list by status", func(t *testing.T) {
		require.NoError(t, store.Assets().Create(ctx, &domain.Asset{AssetTag: "T-2", Name: "Pending", Category: "laptop", Status: domain.AssetStatusPending}))

		available, err := store.Assets().ListByStatus(ctx, domain.AssetStatusAvailable)
		require.NoError(t, err)
		assert.Len(t, available, 1)

		pending, err := store.Assets().ListByStatus(ctx, domain.AssetStatusPending)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})

	t.Run("delete", func(t *testing.T) {
		asset, err := store.Assets().GetByTag(ctx, "T-2")
		require.NoError(t, err)
		require.NoError(t, store.Assets().Delete(ctx, asset.ID))
		_, err = store.Assets().Get(ctx, asset.ID)
		assert.ErrorIs(t, err, ErrAssetNotFound)
	})
}

func TestMemoryStoreUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Users().Create(ctx, &domain.User{Username: "alice", Password: "x", FirstName: "Alice", LastName: "Smith"}))

	t.Run("duplicate username rejected", func(t *testing.T) {
		err := store.Users().Create(ctx, &domain.User{Username: "alice", Password: "y"})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("get by username", func(t *testing.T) {
		user, err := store.Users().GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", user.FullName())
	})

	t.Run("update rejects username collision", func(t *testing.T) {
		require.NoError(t, store.Users().Create(ctx, &domain.User{Username: "bob", Password: "x"}))
		bob, err := store.Users().GetByUsername(ctx, "bob")
		require.NoError(t, err)

		bob.Username = "alice"
		assert.ErrorIs(t, store.Users().Update(ctx, bob), ErrUserExists)
	})
}

func TestMemoryStoreAssignments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	resource := &domain.Resource{Kind: domain.ResourceKindConsumable, Name: "Toner", Category: "supplies", TotalQuantity: 10}
	require.NoError(t, store.Resources().Create(ctx, resource))

	older := &domain.Assignment{ResourceID: resource.ID, AssignedTo: "alice", Quantity: 2, AssignedDate: time.Now().Add(-time.Hour), Status: domain.AssignmentStatusAssigned}
	newer := &domain.Assignment{ResourceID: resource.ID, AssignedTo: "bob", Quantity: 1, AssignedDate: time.Now(), Status: domain.AssignmentStatusAssigned}
	require.NoError(t, store.Assignments().Create(ctx, older))
	require.NoError(t, store.Assignments().Create(ctx, newer))

	t.Run("list most recent first", func(t *testing.T) {
		assignments, err := store.Assignments().ListByResource(ctx, resource.ID)
		require.NoError(t, err)
		require.Len(t, assignments, 2)
		assert.Equal(t, "bob", assignments[0].AssignedTo)
		assert.Equal(t, "alice", assignments[1].AssignedTo)
	})

	t.Run("count open", func(t *testing.T) {
		count, err := store.Assignments().CountOpenByResource(ctx, resource.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		now := time.Now()
		older.Status = domain.AssignmentStatusReturned
		older.ReturnedDate = &now
		require.NoError(t, store.Assignments().Update(ctx, older))

		count, err = store.Assignments().CountOpenByResource(ctx, resource.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestMemoryStoreActivities(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	userID := int64(7)
	entries := []*domain.Activity{
		{Action: domain.ActionCreate, ItemType: domain.ItemTypeAsset, ItemID: 1, Timestamp: time.Now()},
		{Action: domain.ActionCheckout, ItemType: domain.ItemTypeAsset, ItemID: 1, UserID: &userID, Timestamp: time.Now()},
		{Action: domain.ActionCreate, ItemType: domain.ItemTypeConsumable, ItemID: 1, Timestamp: time.Now()},
	}
	for _, entry := range entries {
		require.NoError(t, store.Activities().Append(ctx, entry))
	}

	t.Run("list preserves append order", func(t *testing.T) {
		activities, err := store.Activities().List(ctx)
		require.NoError(t, err)
		require.Len(t, activities, 3)
		assert.Equal(t, domain.ActionCreate, activities[0].Action)
		assert.Equal(t, domain.ActionCheckout, activities[1].Action)
	})

	t.Run("filter by item", func(t *testing.T) {
		activities, err := store.Activities().ListByItem(ctx, domain.ItemTypeAsset, 1)
		require.NoError(t, err)
		assert.Len(t, activities, 2)
	})

	t.Run("filter by user", func(t *testing.T) {
		activities, err := store.Activities().ListByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, activities, 1)
	})
}

func TestMemoryStoreInTx(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("writes inside the unit are visible through the handle", func(t *testing.T) {
		err := store.InTx(ctx, func(tx Store) error {
			if err := tx.Assets().Create(ctx, &domain.Asset{AssetTag: "TX-1", Name: "A", Category: "c", Status: domain.AssetStatusAvailable}); err != nil {
				return err
			}
			_, err := tx.Assets().GetByTag(ctx, "TX-1")
			return err
		})
		require.NoError(t, err)
	})

	t.Run("error propagates", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := store.InTx(ctx, func(tx Store) error { return sentinel })
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("nested InTx does not deadlock", func(t *testing.T) {
		err := store.InTx(ctx, func(tx Store) error {
			return tx.InTx(ctx, func(inner Store) error {
				_, err := inner.Assets().GetByTag(ctx, "TX-1")
				return err
			})
		})
		require.NoError(t, err)
	})
}

func TestMemoryStoreNotPersistent(t *testing.T) {
	store := NewMemoryStore()
	assert.False(t, store.Persistent())
	assert.NoError(t, store.Close())
}
