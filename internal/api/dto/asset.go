package dto

import "time"

type CreateAssetRequest struct {
	AssetTag     string  `json:"asset_tag" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Status       string  `json:"status" validate:"omitempty,oneof=available pending"`
	Description  *string `json:"description,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Model        *string `json:"model,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Location     *string `json:"location,omitempty"`
	PurchaseDate *string `json:"purchase_date,omitempty"`
	PurchaseCost *string `json:"purchase_cost,omitempty"`
	Department   *string `json:"department,omitempty"`
	KnoxID       *string `json:"knox_id,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type UpdateAssetRequest struct {
	AssetTag     *string `json:"asset_tag,omitempty"`
	Name         *string `json:"name,omitempty"`
	Category     *string `json:"category,omitempty"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=available deployed overdue pending archived"`
	Description  *string `json:"description,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Model        *string `json:"model,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Location     *string `json:"location,omitempty"`
	PurchaseDate *string `json:"purchase_date,omitempty"`
	PurchaseCost *string `json:"purchase_cost,omitempty"`
	Department   *string `json:"department,omitempty"`
	KnoxID       *string `json:"knox_id,omitempty"`
	AssignedTo   *int64  `json:"assigned_to,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type CheckoutRequest struct {
	UserID              int64      `json:"user_id" validate:"required"`
	ExpectedCheckinDate *time.Time `json:"expected_checkin_date,omitempty"`
	Notes               string     `json:"notes,omitempty"`
}
