package models

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseOrder struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SupplierID  uuid.UUID `json:"supplier_id" db:"supplier_id"`
	OrderDate   time.Time `json:"order_date" db:"order_date"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// OrderLine is one resolved line of a purchase order, carrying the item name
// for display and document rendering. Subtotal is the caller-declared line
// total and is not persisted.
type OrderLine struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// PurchaseOrderDetail is the read model returned by order creation and order
// listing: the order row plus its supplier and resolved line items.
type PurchaseOrderDetail struct {
	PurchaseOrder
	Supplier *Supplier   `json:"supplier,omitempty"`
	Items    []OrderLine `json:"items"`
}
