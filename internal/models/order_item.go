package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is one ordered line of a purchase order. It is created unreceived
// and flips to received exactly once, at which point its quantity has been
// credited to the referenced inventory item.
type OrderItem struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	PurchaseOrderID uuid.UUID  `json:"purchase_order_id" db:"purchase_order_id"`
	InventoryItemID uuid.UUID  `json:"inventory_item_id" db:"inventory_item_id"`
	QuantityOrdered int        `json:"quantity_ordered" db:"quantity_ordered"`
	UnitPrice       float64    `json:"unit_price" db:"unit_price"`
	IsReceived      bool       `json:"is_received" db:"is_received"`
	ReceivedDate    *time.Time `json:"received_date" db:"received_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// OrderItemWithName joins an order item with its inventory item's name for
// the incoming-deliveries and order-detail read models.
type OrderItemWithName struct {
	OrderItem
	ItemName string `json:"item_name" db:"item_name"`
}
