package repositories

import (
	"context"
	"time"

	"beanmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderItemRepository interface {
	Create(ctx context.Context, q Querier, item *models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	// GetForUpdate locks the order-item row so two concurrent receipts of
	// the same line serialize; the loser then sees is_received = true.
	GetForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.OrderItem, error)
	MarkReceived(ctx context.Context, q Querier, id uuid.UUID, receivedAt time.Time) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemWithName, error)
	ListUnreceived(ctx context.Context, limit, offset int) ([]*models.OrderItemWithName, error)
}

type orderItemRepo struct {
	db DB
}

func NewOrderItemRepository(db DB) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) Create(ctx context.Context, q Querier, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (id, purchase_order_id, inventory_item_id, quantity_ordered, unit_price, is_received, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
	`
	_, err := q.Exec(ctx, query, item.ID, item.PurchaseOrderID, item.InventoryItemID, item.QuantityOrdered, item.UnitPrice)
	return err
}

const orderItemColumns = `id, purchase_order_id, inventory_item_id, quantity_ordered, unit_price, is_received, received_date, created_at`

func scanOrderItem(row pgx.Row) (*models.OrderItem, error) {
	item := &models.OrderItem{}
	err := row.Scan(&item.ID, &item.PurchaseOrderID, &item.InventoryItemID, &item.QuantityOrdered, &item.UnitPrice, &item.IsReceived, &item.ReceivedDate, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *orderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1`
	return scanOrderItem(r.db.QueryRow(ctx, query, id))
}

func (r *orderItemRepo) GetForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1 FOR UPDATE`
	return scanOrderItem(q.QueryRow(ctx, query, id))
}

func (r *orderItemRepo) MarkReceived(ctx context.Context, q Querier, id uuid.UUID, receivedAt time.Time) error {
	query := `
		UPDATE order_items
		SET is_received = TRUE, received_date = $1
		WHERE id = $2 AND is_received = FALSE
	`
	tag, err := q.Exec(ctx, query, receivedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemWithName, error) {
	query := `
		SELECT oi.id, oi.purchase_order_id, oi.inventory_item_id, oi.quantity_ordered, oi.unit_price, oi.is_received, oi.received_date, oi.created_at, ii.name AS item_name
		FROM order_items oi
		JOIN inventory_items ii ON oi.inventory_item_id = ii.id
		WHERE oi.purchase_order_id = $1
		ORDER BY oi.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderItemsWithName(rows)
}

func (r *orderItemRepo) ListUnreceived(ctx context.Context, limit, offset int) ([]*models.OrderItemWithName, error) {
	query := `
		SELECT oi.id, oi.purchase_order_id, oi.inventory_item_id, oi.quantity_ordered, oi.unit_price, oi.is_received, oi.received_date, oi.created_at, ii.name AS item_name
		FROM order_items oi
		JOIN inventory_items ii ON oi.inventory_item_id = ii.id
		WHERE oi.is_received = FALSE
		ORDER BY oi.created_at ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderItemsWithName(rows)
}

func scanOrderItemsWithName(rows pgx.Rows) ([]*models.OrderItemWithName, error) {
	var items []*models.OrderItemWithName
	for rows.Next() {
		item := &models.OrderItemWithName{}
		if err := rows.Scan(&item.ID, &item.PurchaseOrderID, &item.InventoryItemID, &item.QuantityOrdered, &item.UnitPrice, &item.IsReceived, &item.ReceivedDate, &item.CreatedAt, &item.ItemName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
