package domain

import "time"

type AssetStatus string

const (
	AssetStatusAvailable AssetStatus = "available"
	AssetStatusDeployed  AssetStatus = "deployed"
	AssetStatusOverdue   AssetStatus = "overdue"
	AssetStatusPending   AssetStatus = "pending"
	AssetStatusArchived  AssetStatus = "archived"
)

func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusAvailable, AssetStatusDeployed, AssetStatusOverdue, AssetStatusPending, AssetStatusArchived:
		return true
	}
	return false
}

// Asset is an individually tagged item with a single holder at a time.
type Asset struct {
	ID                  int64       `json:"id" db:"id"`
	AssetTag            string      `json:"asset_tag" db:"asset_tag"`
	Name                string      `json:"name" db:"name"`
	Description         *string     `json:"description,omitempty" db:"description"`
	Category            string      `json:"category" db:"category"`
	Status              AssetStatus `json:"status" db:"status"`
	SerialNumber        *string     `json:"serial_number,omitempty" db:"serial_number"`
	Model               *string     `json:"model,omitempty" db:"model"`
	Manufacturer        *string     `json:"manufacturer,omitempty" db:"manufacturer"`
	Location            *string     `json:"location,omitempty" db:"location"`
	PurchaseDate        *string     `json:"purchase_date,omitempty" db:"purchase_date"`
	PurchaseCost        *string     `json:"purchase_cost,omitempty" db:"purchase_cost"`
	Department          *string     `json:"department,omitempty" db:"department"`
	KnoxID              *string     `json:"knox_id,omitempty" db:"knox_id"`
	AssignedTo          *int64      `json:"assigned_to,omitempty" db:"assigned_to"`
	CheckoutDate        *time.Time  `json:"checkout_date,omitempty" db:"checkout_date"`
	ExpectedCheckinDate *time.Time  `json:"expected_checkin_date,omitempty" db:"expected_checkin_date"`
	Notes               *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at" db:"updated_at"`
}

// Deployed reports whether the asset is currently in someone's hands.
func (a *Asset) Deployed() bool {
	return a.Status == AssetStatusDeployed || a.Status == AssetStatusOverdue
}

type AssetStats struct {
	Total     int `json:"total"`
	Deployed  int `json:"deployed"`
	Available int `json:"available"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Archived  int `json:"archived"`
}
