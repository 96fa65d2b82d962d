package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/testutil"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	db, err := testutil.SetupTestDB("../../.env.test", "../../migrations")
	if err != nil {
		log.Printf("[TestMain] test database unavailable, postgres tests will be skipped: %v", err)
	}
	testDB = db

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

func TestPostgresStore_UserRoundTrip(t *testing.T) {
	testutil.RequireDB(t, testDB)

	store := NewPostgresStore(testDB)
	ctx := context.Background()
	ts := time.Now().UnixNano()

	email := fmt.Sprintf("pg%d@example.com", ts)
	user := &domain.User{
		Username:  fmt.Sprintf("pguser%d", ts),
		Password:  "hashedpassword",
		FirstName: "Pat",
		LastName:  "Quinn",
		Email:     &email,
	}
	require.NoError(t, store.Users().Create(ctx, user))
	require.NotZero(t, user.ID)

	found, err := store.Users().GetByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	dup := &domain.User{Username: user.Username, Password: "x", FirstName: "Dup", LastName: "User"}
	assert.ErrorIs(t, store.Users().Create(ctx, dup), ErrUserExists)

	require.NoError(t, store.Users().Delete(ctx, user.ID))
	_, err = store.Users().Get(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostgresStore_AssetTagUnique(t *testing.T) {
	testutil.RequireDB(t, testDB)

	store := NewPostgresStore(testDB)
	ctx := context.Background()
	tag := fmt.Sprintf("PG-%d", time.Now().UnixNano())

	asset := &domain.Asset{
		AssetTag: tag,
		Name:     "Test Laptop",
		Category: "laptop",
		Status:   domain.AssetStatusAvailable,
	}
	require.NoError(t, store.Assets().Create(ctx, asset))
	t.Cleanup(func() { _ = store.Assets().Delete(ctx, asset.ID) })

	found, err := store.Assets().GetByTag(ctx, tag)
	require.NoError(t, err)
	assert.Equal(t, asset.ID, found.ID)

	dup := &domain.Asset{AssetTag: tag, Name: "Other", Category: "laptop", Status: domain.AssetStatusAvailable}
	assert.ErrorIs(t, store.Assets().Create(ctx, dup), ErrAssetTagExists)
}

func TestPostgresStore_InTxRollsBackOnError(t *testing.T) {
	testutil.RequireDB(t, testDB)

	store := NewPostgresStore(testDB)
	ctx := context.Background()
	name := fmt.Sprintf("rollback-%d", time.Now().UnixNano())

	boom := errors.New("boom")
	err := store.InTx(ctx, func(tx Store) error {
		resource := &domain.Resource{
			Kind:          domain.ResourceKindConsumable,
			Name:          name,
			Category:      "cables",
			TotalQuantity: 10,
		}
		if err := tx.Resources().Create(ctx, resource); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	resources, err := store.Resources().ListByKind(ctx, domain.ResourceKindConsumable)
	require.NoError(t, err)
	for _, r := range resources {
		assert.NotEqual(t, name, r.Name)
	}
}
