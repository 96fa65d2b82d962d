// Package quantity guards the conservation invariant for pooled resources:
// assigned + available = total, never negative. All quantity values entering
// the system pass through Parse so string-typed input from the edge is
// normalized in one place.
package quantity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"stockroom/internal/domain"
)

var (
	ErrInvalidQuantity      = errors.New("quantity must be a non-negative integer")
	ErrInsufficientQuantity = errors.New("insufficient quantity available")
	// ErrConservation indicates a release that would take the assigned count
	// negative. That means an assignment record was lost or duplicated, so it
	// is a bug, not user error.
	ErrConservation = errors.New("quantity conservation violated")
)

// Parse normalizes a quantity supplied as free-form text.
func Parse(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidQuantity
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	return n, nil
}

// ParsePositive is Parse with a lower bound of one, for amounts being
// reserved or released.
func ParsePositive(raw string) (int, error) {
	n, err := Parse(raw)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	return n, nil
}

// Reserve moves amount units from available to assigned on the resource.
// The caller must persist the resource in the same transaction as the
// assignment record it is backing.
func Reserve(r *domain.Resource, amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if amount > r.Available() {
		return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientQuantity, amount, r.Available())
	}
	r.AssignedQuantity += amount
	return nil
}

// Release moves amount units back from assigned to available.
func Release(r *domain.Resource, amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if amount > r.AssignedQuantity {
		return fmt.Errorf("%w: releasing %d with only %d assigned", ErrConservation, amount, r.AssignedQuantity)
	}
	r.AssignedQuantity -= amount
	return nil
}

// CheckTotal validates a new total against the current assigned count, for
// administrative edits that resize the pool.
func CheckTotal(r *domain.Resource, total int) error {
	if total < 0 {
		return ErrInvalidQuantity
	}
	if total < r.AssignedQuantity {
		return fmt.Errorf("%w: total %d below assigned %d", ErrInvalidQuantity, total, r.AssignedQuantity)
	}
	return nil
}
