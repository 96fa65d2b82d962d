package dto

type CreateResourceRequest struct {
	Kind           string  `json:"kind" validate:"required,oneof=consumable component accessory license it-equipment"`
	Name           string  `json:"name" validate:"required"`
	Category       string  `json:"category" validate:"required"`
	Quantity       string  `json:"quantity" validate:"required"`
	Model          *string `json:"model,omitempty"`
	Manufacturer   *string `json:"manufacturer,omitempty"`
	Location       *string `json:"location,omitempty"`
	LicenseKey     *string `json:"license_key,omitempty"`
	ExpirationDate *string `json:"expiration_date,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type UpdateResourceRequest struct {
	Name           *string `json:"name,omitempty"`
	Category       *string `json:"category,omitempty"`
	Quantity       *string `json:"quantity,omitempty"`
	Model          *string `json:"model,omitempty"`
	Manufacturer   *string `json:"manufacturer,omitempty"`
	Location       *string `json:"location,omitempty"`
	LicenseKey     *string `json:"license_key,omitempty"`
	ExpirationDate *string `json:"expiration_date,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type AssignRequest struct {
	AssignedTo   string  `json:"assigned_to" validate:"required"`
	Quantity     string  `json:"quantity" validate:"required"`
	KnoxID       *string `json:"knox_id,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}
