package repository

import (
	"context"
	"database/sql"
	"errors"

	"stockroom/internal/domain"
)

const resourceColumns = `
	id, kind, name, category, total_quantity, assigned_quantity, model,
	manufacturer, location, license_key, expiration_date, notes, created_at, updated_at`

type pgResources struct {
	q querier
}

func (r *pgResources) List(ctx context.Context) ([]*domain.Resource, error) {
	query := `SELECT` + resourceColumns + ` FROM resources ORDER BY id`

	resources := []*domain.Resource{}
	if err := r.q.SelectContext(ctx, &resources, query); err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *pgResources) ListByKind(ctx context.Context, kind domain.ResourceKind) ([]*domain.Resource, error) {
	query := `SELECT` + resourceColumns + ` FROM resources WHERE kind = $1 ORDER BY id`

	resources := []*domain.Resource{}
	if err := r.q.SelectContext(ctx, &resources, query, kind); err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *pgResources) Get(ctx context.Context, id int64) (*domain.Resource, error) {
	query := `SELECT` + resourceColumns + ` FROM resources WHERE id = $1`

	resource := &domain.Resource{}
	if err := r.q.GetContext(ctx, resource, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return resource, nil
}

func (r *pgResources) GetForUpdate(ctx context.Context, id int64) (*domain.Resource, error) {
	query := `SELECT` + resourceColumns + ` FROM resources WHERE id = $1 FOR UPDATE`

	resource := &domain.Resource{}
	if err := r.q.GetContext(ctx, resource, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return resource, nil
}

func (r *pgResources) Create(ctx context.Context, resource *domain.Resource) error {
	query := `
		INSERT INTO resources (
			kind, name, category, total_quantity, assigned_quantity, model,
			manufacturer, location, license_key, expiration_date, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	return r.q.QueryRowxContext(ctx, query,
		resource.Kind, resource.Name, resource.Category, resource.TotalQuantity,
		resource.AssignedQuantity, resource.Model, resource.Manufacturer,
		resource.Location, resource.LicenseKey, resource.ExpirationDate, resource.Notes,
	).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
}

func (r *pgResources) Update(ctx context.Context, resource *domain.Resource) error {
	query := `
		UPDATE resources SET
			kind = $1, name = $2, category = $3, total_quantity = $4,
			assigned_quantity = $5, model = $6, manufacturer = $7, location = $8,
			license_key = $9, expiration_date = $10, notes = $11, updated_at = NOW()
		WHERE id = $12
	`

	res, err := r.q.ExecContext(ctx, query,
		resource.Kind, resource.Name, resource.Category, resource.TotalQuantity,
		resource.AssignedQuantity, resource.Model, resource.Manufacturer,
		resource.Location, resource.LicenseKey, resource.ExpirationDate, resource.Notes,
		resource.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResourceNotFound
	}
	return nil
}

func (r *pgResources) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResourceNotFound
	}
	return nil
}
