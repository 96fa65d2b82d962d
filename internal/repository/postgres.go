package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// querier is satisfied by both *sqlx.DB and *sqlx.Tx so the same entity
// stores serve plain calls and calls inside InTx.
type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type PostgresStore struct {
	db *sqlx.DB // nil when this store is bound to a transaction
	q  querier
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) Users() UserStore             { return &pgUsers{q: s.q} }
func (s *PostgresStore) Assets() AssetStore           { return &pgAssets{q: s.q} }
func (s *PostgresStore) Resources() ResourceStore     { return &pgResources{q: s.q} }
func (s *PostgresStore) Assignments() AssignmentStore { return &pgAssignments{q: s.q} }
func (s *PostgresStore) Activities() ActivityStore    { return &pgActivities{q: s.q} }

func (s *PostgresStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.db == nil {
		// already inside a transaction; join it
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&PostgresStore{q: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) Persistent() bool {
	return true
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isUniqueConstraintError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505"
}
