package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/metrics"
	"stockroom/internal/repository"
)

var (
	ErrAssetNotAvailable = errors.New("asset is not available for checkout")
	ErrAssetNotDeployed  = errors.New("asset is not checked out")
)

// CheckoutService drives the unique-item lifecycle:
// available -> deployed -> (available | overdue) -> available.
type CheckoutService struct {
	store    repository.Store
	recorder *ActivityService
}

func NewCheckoutService(store repository.Store, recorder *ActivityService) *CheckoutService {
	return &CheckoutService{store: store, recorder: recorder}
}

// Checkout hands the asset to the given user. The audit note embeds the
// asset and holder names resolved now, so the trail stays accurate if the
// holder is later renamed or deleted.
func (s *CheckoutService) Checkout(ctx context.Context, assetID, userID int64, expectedCheckin *time.Time, notes string) (*domain.Asset, error) {
	var (
		updated *domain.Asset
		note    string
	)

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		asset, err := tx.Assets().GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		user, err := tx.Users().Get(ctx, userID)
		if err != nil {
			return err
		}
		if asset.Status != domain.AssetStatusAvailable {
			return ErrAssetNotAvailable
		}

		now := time.Now().UTC()
		asset.Status = domain.AssetStatusDeployed
		asset.AssignedTo = &userID
		asset.CheckoutDate = &now
		asset.ExpectedCheckinDate = expectedCheckin

		if err := tx.Assets().Update(ctx, asset); err != nil {
			return err
		}

		note = notes
		if note == "" {
			note = fmt.Sprintf("Asset %s (%s) checked out to %s", asset.Name, asset.AssetTag, user.FullName())
		}
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, domain.ActionCheckout, domain.ItemTypeAsset, assetID, &userID, note); err != nil {
		return nil, fmt.Errorf("checkout committed but audit failed: %w", err)
	}

	metrics.CheckoutsTotal.Inc()
	return updated, nil
}

// Checkin returns the asset to the shelf, clearing the holder, the checkout
// dates and the per-checkout knox id.
func (s *CheckoutService) Checkin(ctx context.Context, assetID int64) (*domain.Asset, error) {
	var (
		updated    *domain.Asset
		note       string
		prevHolder *int64
	)

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		asset, err := tx.Assets().GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if !asset.Deployed() {
			return ErrAssetNotDeployed
		}

		prevHolder = asset.AssignedTo
		asset.Status = domain.AssetStatusAvailable
		asset.AssignedTo = nil
		asset.CheckoutDate = nil
		asset.ExpectedCheckinDate = nil
		asset.KnoxID = nil

		if err := tx.Assets().Update(ctx, asset); err != nil {
			return err
		}

		note = fmt.Sprintf("Asset %s (%s) checked in", asset.Name, asset.AssetTag)
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, domain.ActionCheckin, domain.ItemTypeAsset, assetID, prevHolder, note); err != nil {
		return nil, fmt.Errorf("checkin committed but audit failed: %w", err)
	}

	metrics.CheckinsTotal.Inc()
	return updated, nil
}

// MarkOverdue flips a deployed asset past its expected checkin date to
// overdue. The holder is unchanged. Called by the sweep worker.
func (s *CheckoutService) MarkOverdue(ctx context.Context, assetID int64) (*domain.Asset, error) {
	var (
		updated *domain.Asset
		note    string
	)

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		asset, err := tx.Assets().GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if asset.Status != domain.AssetStatusDeployed {
			return ErrAssetNotDeployed
		}

		asset.Status = domain.AssetStatusOverdue
		if err := tx.Assets().Update(ctx, asset); err != nil {
			return err
		}

		note = fmt.Sprintf("Asset %s (%s) marked overdue", asset.Name, asset.AssetTag)
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, domain.ActionUpdate, domain.ItemTypeAsset, assetID, nil, note); err != nil {
		return nil, fmt.Errorf("overdue update committed but audit failed: %w", err)
	}

	return updated, nil
}
