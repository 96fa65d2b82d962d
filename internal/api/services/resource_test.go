package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/quantity"
	"stockroom/internal/repository"
)

func TestResourceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes quantity text", func(t *testing.T) {
		store, recorder := newTestStore(t)
		service := NewResourceService(store, recorder)

		resource, err := service.Create(ctx, CreateResourceInput{
			Kind:     domain.ResourceKindConsumable,
			Name:     "Toner",
			Category: "supplies",
			Quantity: " 24 ",
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 24, resource.TotalQuantity)
		assert.Equal(t, 0, resource.AssignedQuantity)
		assert.Equal(t, 24, resource.Available())

		activities, err := store.Activities().ListByItem(ctx, domain.ItemTypeConsumable, resource.ID)
		require.NoError(t, err)
		require.Len(t, activities, 1)
		assert.Equal(t, domain.ActionCreate, activities[0].Action)
		assert.Contains(t, activities[0].Notes, "Toner")
	})

	t.Run("rejects malformed quantity", func(t *testing.T) {
		store, recorder := newTestStore(t)
		service := NewResourceService(store, recorder)

		_, err := service.Create(ctx, CreateResourceInput{
			Kind:     domain.ResourceKindConsumable,
			Name:     "Toner",
			Category: "supplies",
			Quantity: "many",
		}, nil)
		assert.ErrorIs(t, err, quantity.ErrInvalidQuantity)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		store, recorder := newTestStore(t)
		service := NewResourceService(store, recorder)

		_, err := service.Create(ctx, CreateResourceInput{
			Kind:     domain.ResourceKind("gadget"),
			Name:     "X",
			Category: "c",
			Quantity: "1",
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidKind)
	})
}

func TestResourceService_Update(t *testing.T) {
	ctx := context.Background()
	store, recorder := newTestStore(t)
	service := NewResourceService(store, recorder)
	assignments := NewAssignmentService(store, recorder)

	resource, err := service.Create(ctx, CreateResourceInput{
		Kind:     domain.ResourceKindLicense,
		Name:     "Office",
		Category: "productivity",
		Quantity: "10",
	}, nil)
	require.NoError(t, err)

	_, err = assignments.Assign(ctx, AssignInput{ResourceID: resource.ID, AssignedTo: "alice", Quantity: "4"}, nil)
	require.NoError(t, err)

	t.Run("pool can grow", func(t *testing.T) {
		total := "20"
		updated, err := service.Update(ctx, resource.ID, UpdateResourceInput{TotalQuantity: &total}, nil)
		require.NoError(t, err)
		assert.Equal(t, 20, updated.TotalQuantity)
		assert.Equal(t, 4, updated.AssignedQuantity)
	})

	t.Run("pool cannot shrink below assigned", func(t *testing.T) {
		total := "3"
		_, err := service.Update(ctx, resource.ID, UpdateResourceInput{TotalQuantity: &total}, nil)
		assert.ErrorIs(t, err, quantity.ErrInvalidQuantity)

		current, err := store.Resources().Get(ctx, resource.ID)
		require.NoError(t, err)
		assert.Equal(t, 20, current.TotalQuantity)
	})

	t.Run("pool can shrink to exactly assigned", func(t *testing.T) {
		total := "4"
		updated, err := service.Update(ctx, resource.ID, UpdateResourceInput{TotalQuantity: &total}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Available())
	})
}

func TestResourceService_Delete(t *testing.T) {
	ctx := context.Background()
	store, recorder := newTestStore(t)
	service := NewResourceService(store, recorder)
	assignments := NewAssignmentService(store, recorder)

	resource, err := service.Create(ctx, CreateResourceInput{
		Kind:     domain.ResourceKindAccessory,
		Name:     "Dock",
		Category: "docking",
		Quantity: "5",
	}, nil)
	require.NoError(t, err)

	assignment, err := assignments.Assign(ctx, AssignInput{ResourceID: resource.ID, AssignedTo: "alice", Quantity: "1"}, nil)
	require.NoError(t, err)

	t.Run("blocked while assignments are open", func(t *testing.T) {
		err := service.Delete(ctx, resource.ID, nil)
		assert.ErrorIs(t, err, ErrHasActiveAssignments)

		_, err = store.Resources().Get(ctx, resource.ID)
		assert.NoError(t, err)
	})

	t.Run("allowed once everything is back", func(t *testing.T) {
		_, err := assignments.Return(ctx, assignment.ID, nil)
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, resource.ID, nil))

		_, err = store.Resources().Get(ctx, resource.ID)
		assert.ErrorIs(t, err, repository.ErrResourceNotFound)
	})
}

func TestResourceService_ListByKind(t *testing.T) {
	ctx := context.Background()
	store, recorder := newTestStore(t)
	service := NewResourceService(store, recorder)

	_, err := service.Create(ctx, CreateResourceInput{Kind: domain.ResourceKindConsumable, Name: "Toner", Category: "c", Quantity: "1"}, nil)
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateResourceInput{Kind: domain.ResourceKindComponent, Name: "RAM", Category: "c", Quantity: "1"}, nil)
	require.NoError(t, err)

	consumables, err := service.ListByKind(ctx, domain.ResourceKindConsumable)
	require.NoError(t, err)
	require.Len(t, consumables, 1)
	assert.Equal(t, "Toner", consumables[0].Name)

	_, err = service.ListByKind(ctx, domain.ResourceKind("gadget"))
	assert.ErrorIs(t, err, ErrInvalidKind)
}
