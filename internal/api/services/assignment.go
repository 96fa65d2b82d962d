package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/metrics"
	"stockroom/internal/quantity"
	"stockroom/internal/repository"
)

var ErrAssignmentReturned = errors.New("assignment already returned")

// AssignmentService moves quantity between a pool and its open assignments.
// Every move goes through the quantity helpers so the pool can never owe
// more than it holds.
type AssignmentService struct {
	store    repository.Store
	recorder *ActivityService
}

func NewAssignmentService(store repository.Store, recorder *ActivityService) *AssignmentService {
	return &AssignmentService{store: store, recorder: recorder}
}

func (s *AssignmentService) List(ctx context.Context, resourceID int64) ([]*domain.Assignment, error) {
	if _, err := s.store.Resources().Get(ctx, resourceID); err != nil {
		return nil, err
	}
	return s.store.Assignments().ListByResource(ctx, resourceID)
}

func (s *AssignmentService) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	return s.store.Assignments().Get(ctx, id)
}

type AssignInput struct {
	ResourceID   int64
	AssignedTo   string
	Quantity     string
	KnoxID       *string
	SerialNumber *string
	Notes        *string
}

// Assign reserves quantity from the pool and opens an assignment record.
// Reservation and record land in one transaction; the audit entry follows
// the commit. The pool row is read under a row lock so two concurrent
// reserves cannot both pass the availability check against a stale read.
func (s *AssignmentService) Assign(ctx context.Context, in AssignInput, actorID *int64) (*domain.Assignment, error) {
	amount, err := quantity.ParsePositive(in.Quantity)
	if err != nil {
		return nil, err
	}

	var (
		created *domain.Assignment
		note    string
		kind    domain.ResourceKind
	)

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		resource, err := tx.Resources().GetForUpdate(ctx, in.ResourceID)
		if err != nil {
			return err
		}
		if err := quantity.Reserve(resource, amount); err != nil {
			return err
		}
		if err := tx.Resources().Update(ctx, resource); err != nil {
			return err
		}

		assignment := &domain.Assignment{
			ResourceID:   resource.ID,
			AssignedTo:   in.AssignedTo,
			KnoxID:       in.KnoxID,
			SerialNumber: in.SerialNumber,
			Quantity:     amount,
			AssignedDate: time.Now().UTC(),
			Status:       domain.AssignmentStatusAssigned,
			Notes:        in.Notes,
		}
		if err := tx.Assignments().Create(ctx, assignment); err != nil {
			return err
		}

		note = fmt.Sprintf("%s %q: %d assigned to %s", kindLabel(resource.Kind), resource.Name, amount, in.AssignedTo)
		kind = resource.Kind
		created = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, domain.ActionCheckout, kind.ItemType(), created.ResourceID, actorID, note); err != nil {
		return nil, fmt.Errorf("assignment committed but audit failed: %w", err)
	}

	metrics.AssignmentsTotal.Inc()
	return created, nil
}

// Return closes an open assignment and releases its quantity back to the
// pool. A closed assignment cannot be returned twice.
func (s *AssignmentService) Return(ctx context.Context, assignmentID int64, actorID *int64) (*domain.Assignment, error) {
	var (
		closed *domain.Assignment
		note   string
		kind   domain.ResourceKind
	)

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		assignment, err := tx.Assignments().GetForUpdate(ctx, assignmentID)
		if err != nil {
			return err
		}
		if !assignment.Open() {
			return ErrAssignmentReturned
		}

		resource, err := tx.Resources().GetForUpdate(ctx, assignment.ResourceID)
		if err != nil {
			return err
		}
		if err := quantity.Release(resource, assignment.Quantity); err != nil {
			return err
		}
		if err := tx.Resources().Update(ctx, resource); err != nil {
			return err
		}

		now := time.Now().UTC()
		assignment.Status = domain.AssignmentStatusReturned
		assignment.ReturnedDate = &now
		if err := tx.Assignments().Update(ctx, assignment); err != nil {
			return err
		}

		note = fmt.Sprintf("%s %q: %d returned by %s", kindLabel(resource.Kind), resource.Name, assignment.Quantity, assignment.AssignedTo)
		kind = resource.Kind
		closed = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, domain.ActionCheckin, kind.ItemType(), closed.ResourceID, actorID, note); err != nil {
		return nil, fmt.Errorf("return committed but audit failed: %w", err)
	}

	metrics.ReturnsTotal.Inc()
	return closed, nil
}
