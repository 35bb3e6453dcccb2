package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is the root of truth for current stock. Quantity is a running
// total mutated through signed deltas (stock adjustments and order receipts);
// only an explicit edit overwrites it with an absolute value.
type InventoryItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Quantity  float64   `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	OrderUnit *string   `json:"order_unit" db:"order_unit"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
