package services

import (
	"context"
	"errors"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

var (
	ErrAssetDeployed = errors.New("asset is currently checked out")
	ErrInvalidStatus = errors.New("invalid asset status")
)

type AssetService struct {
	store    repository.Store
	recorder *ActivityService
}

func NewAssetService(store repository.Store, recorder *ActivityService) *AssetService {
	return &AssetService{store: store, recorder: recorder}
}

func (s *AssetService) List(ctx context.Context) ([]*domain.Asset, error) {
	return s.store.Assets().List(ctx)
}

func (s *AssetService) ListByStatus(ctx context.Context, status domain.AssetStatus) ([]*domain.Asset, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.Assets().ListByStatus(ctx, status)
}

func (s *AssetService) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	return s.store.Assets().Get(ctx, id)
}

func (s *AssetService) GetByTag(ctx context.Context, tag string) (*domain.Asset, error) {
	return s.store.Assets().GetByTag(ctx, tag)
}

// Create intakes an asset. Intake status is available unless the caller
// marks it pending; deployed states are only reachable through Checkout.
func (s *AssetService) Create(ctx context.Context, asset *domain.Asset, actorID *int64) (*domain.Asset, error) {
	if asset.Status == "" {
		asset.Status = domain.AssetStatusAvailable
	}
	if asset.Status != domain.AssetStatusAvailable && asset.Status != domain.AssetStatusPending {
		return nil, fmt.Errorf("%w: intake status must be available or pending, got %q", ErrInvalidStatus, asset.Status)
	}

	if err := s.store.Assets().Create(ctx, asset); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Asset %q (%s) created", asset.Name, asset.AssetTag)
	if err := s.recorder.Record(ctx, domain.ActionCreate, domain.ItemTypeAsset, asset.ID, actorID, note); err != nil {
		return nil, fmt.Errorf("create committed but audit failed: %w", err)
	}
	return asset, nil
}

// UpdateAssetInput carries an administrative partial edit. Nil fields are
// left untouched. Status changes here are corrections, not lifecycle
// transitions; checkout and checkin own those.
type UpdateAssetInput struct {
	AssetTag     *string
	Name         *string
	Description  *string
	Category     *string
	Status       *domain.AssetStatus
	SerialNumber *string
	Model        *string
	Manufacturer *string
	Location     *string
	PurchaseDate *string
	PurchaseCost *string
	Department   *string
	KnoxID       *string
	AssignedTo   *int64
	Notes        *string
}

func (s *AssetService) Update(ctx context.Context, id int64, in UpdateAssetInput, actorID *int64) (*domain.Asset, error) {
	var (
		updated *domain.Asset
		note    string
	)

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		asset, err := tx.Assets().Get(ctx, id)
		if err != nil {
			return err
		}

		if in.Status != nil {
			if !in.Status.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidStatus, *in.Status)
			}
			asset.Status = *in.Status
		}
		if in.AssetTag != nil {
			asset.AssetTag = *in.AssetTag
		}
		if in.Name != nil {
			asset.Name = *in.Name
		}
		if in.Description != nil {
			asset.Description = in.Description
		}
		if in.Category != nil {
			asset.Category = *in.Category
		}
		if in.SerialNumber != nil {
			asset.SerialNumber = in.SerialNumber
		}
		if in.Model != nil {
			asset.Model = in.Model
		}
		if in.Manufacturer != nil {
			asset.Manufacturer = in.Manufacturer
		}
		if in.Location != nil {
			asset.Location = in.Location
		}
		if in.PurchaseDate != nil {
			asset.PurchaseDate = in.PurchaseDate
		}
		if in.PurchaseCost != nil {
			asset.PurchaseCost = in.PurchaseCost
		}
		if in.Department != nil {
			asset.Department = in.Department
		}
		if in.KnoxID != nil {
			asset.KnoxID = in.KnoxID
		}
		if in.AssignedTo != nil {
			if _, err := tx.Users().Get(ctx, *in.AssignedTo); err != nil {
				return err
			}
			asset.AssignedTo = in.AssignedTo
		}
		if in.Notes != nil {
			asset.Notes = in.Notes
		}

		if err := tx.Assets().Update(ctx, asset); err != nil {
			return err
		}

		note = fmt.Sprintf("Asset %q (%s) updated", asset.Name, asset.AssetTag)
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, domain.ActionUpdate, domain.ItemTypeAsset, id, actorID, note); err != nil {
		return nil, fmt.Errorf("update committed but audit failed: %w", err)
	}
	return updated, nil
}

// Delete hard-deletes an asset. A deployed or overdue asset cannot be
// deleted; it has to come back first.
func (s *AssetService) Delete(ctx context.Context, id int64, actorID *int64) error {
	var note string

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		asset, err := tx.Assets().Get(ctx, id)
		if err != nil {
			return err
		}
		if asset.Deployed() {
			return ErrAssetDeployed
		}
		note = fmt.Sprintf("Asset %q (%s) deleted", asset.Name, asset.AssetTag)
		return tx.Assets().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if err := s.recorder.Record(ctx, domain.ActionDelete, domain.ItemTypeAsset, id, actorID, note); err != nil {
		return fmt.Errorf("delete committed but audit failed: %w", err)
	}
	return nil
}

// Stats is a read-side projection over current asset statuses.
func (s *AssetService) Stats(ctx context.Context) (*domain.AssetStats, error) {
	assets, err := s.store.Assets().List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.AssetStats{Total: len(assets)}
	for _, a := range assets {
		switch a.Status {
		case domain.AssetStatusDeployed:
			stats.Deployed++
		case domain.AssetStatusAvailable:
			stats.Available++
		case domain.AssetStatusPending:
			stats.Pending++
		case domain.AssetStatusOverdue:
			stats.Overdue++
		case domain.AssetStatusArchived:
			stats.Archived++
		}
	}
	return stats, nil
}
