package domain

import "time"

type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionCheckout Action = "checkout"
	ActionCheckin  Action = "checkin"
)

// ItemType is the subject kind of an activity entry.
type ItemType string

const (
	ItemTypeAsset        ItemType = "asset"
	ItemTypeComponent    ItemType = "component"
	ItemTypeAccessory    ItemType = "accessory"
	ItemTypeConsumable   ItemType = "consumable"
	ItemTypeLicense      ItemType = "license"
	ItemTypeITEquipment  ItemType = "it-equipment"
	ItemTypeBitlockerKey ItemType = "bitlocker-key"
	ItemTypeVM           ItemType = "vm"
	ItemTypeUser         ItemType = "user"
)

// Activity is one immutable audit-log row. UserID is nil for
// system-initiated actions.
type Activity struct {
	ID        int64     `json:"id" db:"id"`
	Action    Action    `json:"action" db:"action"`
	ItemType  ItemType  `json:"item_type" db:"item_type"`
	ItemID    int64     `json:"item_id" db:"item_id"`
	UserID    *int64    `json:"user_id,omitempty" db:"user_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Notes     string    `json:"notes" db:"notes"`
}
