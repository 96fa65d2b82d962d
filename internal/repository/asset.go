package repository

import (
	"context"
	"database/sql"
	"errors"

	"stockroom/internal/domain"
)

const assetColumns = `
	id, asset_tag, name, description, category, status, serial_number, model,
	manufacturer, location, purchase_date, purchase_cost, department, knox_id,
	assigned_to, checkout_date, expected_checkin_date, notes, created_at, updated_at`

type pgAssets struct {
	q querier
}

func (r *pgAssets) List(ctx context.Context) ([]*domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets ORDER BY id`

	assets := []*domain.Asset{}
	if err := r.q.SelectContext(ctx, &assets, query); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *pgAssets) ListByStatus(ctx context.Context, status domain.AssetStatus) ([]*domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets WHERE status = $1 ORDER BY id`

	assets := []*domain.Asset{}
	if err := r.q.SelectContext(ctx, &assets, query, status); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *pgAssets) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets WHERE id = $1`

	asset := &domain.Asset{}
	if err := r.q.GetContext(ctx, asset, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (r *pgAssets) GetForUpdate(ctx context.Context, id int64) (*domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets WHERE id = $1 FOR UPDATE`

	asset := &domain.Asset{}
	if err := r.q.GetContext(ctx, asset, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (r *pgAssets) GetByTag(ctx context.Context, tag string) (*domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets WHERE asset_tag = $1`

	asset := &domain.Asset{}
	if err := r.q.GetContext(ctx, asset, query, tag); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (r *pgAssets) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (
			asset_tag, name, description, category, status, serial_number, model,
			manufacturer, location, purchase_date, purchase_cost, department, knox_id,
			assigned_to, checkout_date, expected_checkin_date, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowxContext(ctx, query,
		asset.AssetTag, asset.Name, asset.Description, asset.Category, asset.Status,
		asset.SerialNumber, asset.Model, asset.Manufacturer, asset.Location,
		asset.PurchaseDate, asset.PurchaseCost, asset.Department, asset.KnoxID,
		asset.AssignedTo, asset.CheckoutDate, asset.ExpectedCheckinDate, asset.Notes,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrAssetTagExists
		}
		return err
	}
	return nil
}

func (r *pgAssets) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets SET
			asset_tag = $1, name = $2, description = $3, category = $4, status = $5,
			serial_number = $6, model = $7, manufacturer = $8, location = $9,
			purchase_date = $10, purchase_cost = $11, department = $12, knox_id = $13,
			assigned_to = $14, checkout_date = $15, expected_checkin_date = $16,
			notes = $17, updated_at = NOW()
		WHERE id = $18
	`

	res, err := r.q.ExecContext(ctx, query,
		asset.AssetTag, asset.Name, asset.Description, asset.Category, asset.Status,
		asset.SerialNumber, asset.Model, asset.Manufacturer, asset.Location,
		asset.PurchaseDate, asset.PurchaseCost, asset.Department, asset.KnoxID,
		asset.AssignedTo, asset.CheckoutDate, asset.ExpectedCheckinDate, asset.Notes,
		asset.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrAssetTagExists
		}
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (r *pgAssets) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssetNotFound
	}
	return nil
}
