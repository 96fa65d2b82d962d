package domain

import "time"

type AssignmentStatus string

const (
	AssignmentStatusAssigned AssignmentStatus = "assigned"
	AssignmentStatusReturned AssignmentStatus = "returned"
)

// Assignment records one allocation of a pooled resource to a holder.
// Assignments are part of the audit surface and are never deleted, only
// marked returned.
type Assignment struct {
	ID           int64            `json:"id" db:"id"`
	ResourceID   int64            `json:"resource_id" db:"resource_id"`
	AssignedTo   string           `json:"assigned_to" db:"assigned_to"`
	KnoxID       *string          `json:"knox_id,omitempty" db:"knox_id"`
	SerialNumber *string          `json:"serial_number,omitempty" db:"serial_number"`
	Quantity     int              `json:"quantity" db:"quantity"`
	AssignedDate time.Time        `json:"assigned_date" db:"assigned_date"`
	ReturnedDate *time.Time       `json:"returned_date,omitempty" db:"returned_date"`
	Status       AssignmentStatus `json:"status" db:"status"`
	Notes        *string          `json:"notes,omitempty" db:"notes"`
}

func (a *Assignment) Open() bool {
	return a.Status == AssignmentStatusAssigned
}
