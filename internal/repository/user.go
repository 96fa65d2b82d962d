package repository

import (
	"context"
	"database/sql"
	"errors"

	"stockroom/internal/domain"
)

const userColumns = `
	id, username, password, first_name, last_name, email, department, is_admin, created_at`

type pgUsers struct {
	q querier
}

func (r *pgUsers) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY id`

	users := []*domain.User{}
	if err := r.q.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *pgUsers) Get(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`

	user := &domain.User{}
	if err := r.q.GetContext(ctx, user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *pgUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE username = $1`

	user := &domain.User{}
	if err := r.q.GetContext(ctx, user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *pgUsers) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password, first_name, last_name, email, department, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRowxContext(ctx, query,
		user.Username, user.Password, user.FirstName, user.LastName,
		user.Email, user.Department, user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (r *pgUsers) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			username = $1, password = $2, first_name = $3, last_name = $4,
			email = $5, department = $6, is_admin = $7
		WHERE id = $8
	`

	res, err := r.q.ExecContext(ctx, query,
		user.Username, user.Password, user.FirstName, user.LastName,
		user.Email, user.Department, user.IsAdmin, user.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUserExists
		}
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *pgUsers) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
