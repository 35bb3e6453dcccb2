package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryHistory is the append-only stock ledger: one row per quantity
// change, never mutated or deleted. The sum of QuantityChange for an item
// always equals that item's current quantity minus its quantity at creation.
type InventoryHistory struct {
	ID              uuid.UUID `json:"id" db:"id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id" db:"inventory_item_id"`
	QuantityChange  float64   `json:"quantity_change" db:"quantity_change"`
	ChangeReason    string    `json:"change_reason" db:"change_reason"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
