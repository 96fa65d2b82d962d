package repository

import (
	"context"
	"errors"

	"stockroom/internal/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetTagExists     = errors.New("asset tag already exists")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

type UserStore interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type AssetStore interface {
	List(ctx context.Context) ([]*domain.Asset, error)
	ListByStatus(ctx context.Context, status domain.AssetStatus) ([]*domain.Asset, error)
	Get(ctx context.Context, id int64) (*domain.Asset, error)
	// GetForUpdate reads the asset and locks its row until the enclosing
	// transaction ends. Concurrent transactions block here instead of
	// deciding against a stale read. Equivalent to Get on the memory store,
	// where InTx already holds the global lock.
	GetForUpdate(ctx context.Context, id int64) (*domain.Asset, error)
	GetByTag(ctx context.Context, tag string) (*domain.Asset, error)
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	Delete(ctx context.Context, id int64) error
}

type ResourceStore interface {
	List(ctx context.Context) ([]*domain.Resource, error)
	ListByKind(ctx context.Context, kind domain.ResourceKind) ([]*domain.Resource, error)
	Get(ctx context.Context, id int64) (*domain.Resource, error)
	// GetForUpdate locks the resource row for the transaction so quantity
	// moves serialize per pool.
	GetForUpdate(ctx context.Context, id int64) (*domain.Resource, error)
	Create(ctx context.Context, resource *domain.Resource) error
	Update(ctx context.Context, resource *domain.Resource) error
	Delete(ctx context.Context, id int64) error
}

type AssignmentStore interface {
	// ListByResource returns assignments most recent first.
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.Assignment, error)
	Get(ctx context.Context, id int64) (*domain.Assignment, error)
	// GetForUpdate locks the assignment row so a record can only be closed
	// by one transaction.
	GetForUpdate(ctx context.Context, id int64) (*domain.Assignment, error)
	CountOpenByResource(ctx context.Context, resourceID int64) (int, error)
	Create(ctx context.Context, assignment *domain.Assignment) error
	Update(ctx context.Context, assignment *domain.Assignment) error
}

type ActivityStore interface {
	List(ctx context.Context) ([]*domain.Activity, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Activity, error)
	ListByItem(ctx context.Context, itemType domain.ItemType, itemID int64) ([]*domain.Activity, error)
	Append(ctx context.Context, activity *domain.Activity) error
}

// Store is the capability set the lifecycle and ledger services operate
// against. Both backends honor identical error semantics; the backend is
// selected once at startup by Open and never rebound.
type Store interface {
	Users() UserStore
	Assets() AssetStore
	Resources() ResourceStore
	Assignments() AssignmentStore
	Activities() ActivityStore

	// InTx runs fn as a single atomic unit: a database transaction on the
	// postgres store, a critical section on the memory store. The Store
	// passed to fn must be used for every access inside the unit.
	InTx(ctx context.Context, fn func(Store) error) error

	// Persistent reports whether writes survive a restart. The memory
	// fallback returns false so operators can see degraded mode.
	Persistent() bool

	Close() error
}
