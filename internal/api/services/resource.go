package services

import (
	"context"
	"errors"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/quantity"
	"stockroom/internal/repository"
)

var (
	ErrHasActiveAssignments = errors.New("resource has active assignments")
	ErrInvalidKind          = errors.New("invalid resource kind")
)

// ResourceService manages pooled resources: consumables, components,
// accessories, license seat pools and IT equipment pools.
type ResourceService struct {
	store    repository.Store
	recorder *ActivityService
}

func NewResourceService(store repository.Store, recorder *ActivityService) *ResourceService {
	return &ResourceService{store: store, recorder: recorder}
}

func (s *ResourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.store.Resources().List(ctx)
}

func (s *ResourceService) ListByKind(ctx context.Context, kind domain.ResourceKind) ([]*domain.Resource, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return s.store.Resources().ListByKind(ctx, kind)
}

func (s *ResourceService) Get(ctx context.Context, id int64) (*domain.Resource, error) {
	return s.store.Resources().Get(ctx, id)
}

// CreateResourceInput carries a new pool. Quantity arrives as text because
// that is how it reaches the boundary; it is normalized exactly once here.
type CreateResourceInput struct {
	Kind           domain.ResourceKind
	Name           string
	Category       string
	Quantity       string
	Model          *string
	Manufacturer   *string
	Location       *string
	LicenseKey     *string
	ExpirationDate *string
	Notes          *string
}

func (s *ResourceService) Create(ctx context.Context, in CreateResourceInput, actorID *int64) (*domain.Resource, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, in.Kind)
	}
	total, err := quantity.Parse(in.Quantity)
	if err != nil {
		return nil, err
	}

	resource := &domain.Resource{
		Kind:             in.Kind,
		Name:             in.Name,
		Category:         in.Category,
		TotalQuantity:    total,
		AssignedQuantity: 0,
		Model:            in.Model,
		Manufacturer:     in.Manufacturer,
		Location:         in.Location,
		LicenseKey:       in.LicenseKey,
		ExpirationDate:   in.ExpirationDate,
		Notes:            in.Notes,
	}

	if err := s.store.Resources().Create(ctx, resource); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("%s %q created", kindLabel(resource.Kind), resource.Name)
	if err := s.recorder.Record(ctx, domain.ActionCreate, resource.Kind.ItemType(), resource.ID, actorID, note); err != nil {
		return nil, fmt.Errorf("create committed but audit failed: %w", err)
	}
	return resource, nil
}

type UpdateResourceInput struct {
	Name           *string
	Category       *string
	TotalQuantity  *string
	Model          *string
	Manufacturer   *string
	Location       *string
	LicenseKey     *string
	ExpirationDate *string
	Notes          *string
}

func (s *ResourceService) Update(ctx context.Context, id int64, in UpdateResourceInput, actorID *int64) (*domain.Resource, error) {
	var (
		updated *domain.Resource
		note    string
	)

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		resource, err := tx.Resources().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if in.TotalQuantity != nil {
			total, err := quantity.Parse(*in.TotalQuantity)
			if err != nil {
				return err
			}
			if err := quantity.CheckTotal(resource, total); err != nil {
				return err
			}
			resource.TotalQuantity = total
		}
		if in.Name != nil {
			resource.Name = *in.Name
		}
		if in.Category != nil {
			resource.Category = *in.Category
		}
		if in.Model != nil {
			resource.Model = in.Model
		}
		if in.Manufacturer != nil {
			resource.Manufacturer = in.Manufacturer
		}
		if in.Location != nil {
			resource.Location = in.Location
		}
		if in.LicenseKey != nil {
			resource.LicenseKey = in.LicenseKey
		}
		if in.ExpirationDate != nil {
			resource.ExpirationDate = in.ExpirationDate
		}
		if in.Notes != nil {
			resource.Notes = in.Notes
		}

		if err := tx.Resources().Update(ctx, resource); err != nil {
			return err
		}

		note = fmt.Sprintf("%s %q updated", kindLabel(resource.Kind), resource.Name)
		updated = resource
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, domain.ActionUpdate, updated.Kind.ItemType(), id, actorID, note); err != nil {
		return nil, fmt.Errorf("update committed but audit failed: %w", err)
	}
	return updated, nil
}

// Delete removes a pool. A pool with open assignments cannot be deleted:
// the quantity ledger must never be orphaned.
func (s *ResourceService) Delete(ctx context.Context, id int64, actorID *int64) error {
	var (
		note     string
		itemType domain.ItemType
	)

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		resource, err := tx.Resources().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		open, err := tx.Assignments().CountOpenByResource(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("%w: %d open", ErrHasActiveAssignments, open)
		}

		note = fmt.Sprintf("%s %q deleted", kindLabel(resource.Kind), resource.Name)
		itemType = resource.Kind.ItemType()
		return tx.Resources().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if err := s.recorder.Record(ctx, domain.ActionDelete, itemType, id, actorID, note); err != nil {
		return fmt.Errorf("delete committed but audit failed: %w", err)
	}
	return nil
}

func kindLabel(kind domain.ResourceKind) string {
	switch kind {
	case domain.ResourceKindConsumable:
		return "Consumable"
	case domain.ResourceKindComponent:
		return "Component"
	case domain.ResourceKindAccessory:
		return "Accessory"
	case domain.ResourceKindLicense:
		return "License"
	case domain.ResourceKindITEquipment:
		return "IT equipment"
	}
	return "Resource"
}
