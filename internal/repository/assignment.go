package repository

import (
	"context"
	"database/sql"
	"errors"

	"stockroom/internal/domain"
)

const assignmentColumns = `
	id, resource_id, assigned_to, knox_id, serial_number, quantity,
	assigned_date, returned_date, status, notes`

type pgAssignments struct {
	q querier
}

func (r *pgAssignments) ListByResource(ctx context.Context, resourceID int64) ([]*domain.Assignment, error) {
	query := `SELECT` + assignmentColumns + `
		FROM assignments
		WHERE resource_id = $1
		ORDER BY assigned_date DESC, id DESC`

	assignments := []*domain.Assignment{}
	if err := r.q.SelectContext(ctx, &assignments, query, resourceID); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *pgAssignments) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	query := `SELECT` + assignmentColumns + ` FROM assignments WHERE id = $1`

	assignment := &domain.Assignment{}
	if err := r.q.GetContext(ctx, assignment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *pgAssignments) GetForUpdate(ctx context.Context, id int64) (*domain.Assignment, error) {
	query := `SELECT` + assignmentColumns + ` FROM assignments WHERE id = $1 FOR UPDATE`

	assignment := &domain.Assignment{}
	if err := r.q.GetContext(ctx, assignment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *pgAssignments) CountOpenByResource(ctx context.Context, resourceID int64) (int, error) {
	query := `SELECT COUNT(*) FROM assignments WHERE resource_id = $1 AND status = $2`

	var count int
	if err := r.q.GetContext(ctx, &count, query, resourceID, domain.AssignmentStatusAssigned); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *pgAssignments) Create(ctx context.Context, assignment *domain.Assignment) error {
	query := `
		INSERT INTO assignments (
			resource_id, assigned_to, knox_id, serial_number, quantity,
			assigned_date, returned_date, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	return r.q.QueryRowxContext(ctx, query,
		assignment.ResourceID, assignment.AssignedTo, assignment.KnoxID,
		assignment.SerialNumber, assignment.Quantity, assignment.AssignedDate,
		assignment.ReturnedDate, assignment.Status, assignment.Notes,
	).Scan(&assignment.ID)
}

func (r *pgAssignments) Update(ctx context.Context, assignment *domain.Assignment) error {
	query := `
		UPDATE assignments SET
			assigned_to = $1, knox_id = $2, serial_number = $3, quantity = $4,
			assigned_date = $5, returned_date = $6, status = $7, notes = $8
		WHERE id = $9
	`

	res, err := r.q.ExecContext(ctx, query,
		assignment.AssignedTo, assignment.KnoxID, assignment.SerialNumber,
		assignment.Quantity, assignment.AssignedDate, assignment.ReturnedDate,
		assignment.Status, assignment.Notes, assignment.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
