package domain

import "time"

// ResourceKind identifies a pooled resource family. The values double as
// activity item types so the audit trail stays queryable per kind.
type ResourceKind string

const (
	ResourceKindConsumable  ResourceKind = "consumable"
	ResourceKindComponent   ResourceKind = "component"
	ResourceKindAccessory   ResourceKind = "accessory"
	ResourceKindLicense     ResourceKind = "license"
	ResourceKindITEquipment ResourceKind = "it-equipment"
)

func (k ResourceKind) Valid() bool {
	switch k {
	case ResourceKindConsumable, ResourceKindComponent, ResourceKindAccessory, ResourceKindLicense, ResourceKindITEquipment:
		return true
	}
	return false
}

func (k ResourceKind) ItemType() ItemType {
	return ItemType(k)
}

// Resource is a quantity-tracked pool shared across many holders.
// Invariant: 0 <= AssignedQuantity <= TotalQuantity.
type Resource struct {
	ID               int64        `json:"id" db:"id"`
	Kind             ResourceKind `json:"kind" db:"kind"`
	Name             string       `json:"name" db:"name"`
	Category         string       `json:"category" db:"category"`
	TotalQuantity    int          `json:"total_quantity" db:"total_quantity"`
	AssignedQuantity int          `json:"assigned_quantity" db:"assigned_quantity"`
	Model            *string      `json:"model,omitempty" db:"model"`
	Manufacturer     *string      `json:"manufacturer,omitempty" db:"manufacturer"`
	Location         *string      `json:"location,omitempty" db:"location"`
	LicenseKey       *string      `json:"license_key,omitempty" db:"license_key"`
	ExpirationDate   *string      `json:"expiration_date,omitempty" db:"expiration_date"`
	Notes            *string      `json:"notes,omitempty" db:"notes"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

// Available is the quantity still on the shelf.
func (r *Resource) Available() int {
	return r.TotalQuantity - r.AssignedQuantity
}
