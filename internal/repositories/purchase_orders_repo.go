package repositories

import (
	"context"

	"beanmart/internal/models"

	"github.com/google/uuid"
)

type PurchaseOrderRepository interface {
	// Create runs on the caller's Querier so the order and its line items
	// can be inserted in one transaction.
	Create(ctx context.Context, q Querier, order *models.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	List(ctx context.Context, limit, offset int) ([]*models.PurchaseOrder, error)
}

type purchaseOrderRepo struct {
	db DB
}

func NewPurchaseOrderRepository(db DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, q Querier, order *models.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, order_date, total_amount, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := q.Exec(ctx, query, order.ID, order.SupplierID, order.OrderDate, order.TotalAmount)
	return err
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	order := &models.PurchaseOrder{}
	query := `
		SELECT id, supplier_id, order_date, total_amount, created_at
		FROM purchase_orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.SupplierID, &order.OrderDate, &order.TotalAmount, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*models.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, order_date, total_amount, created_at
		FROM purchase_orders
		ORDER BY order_date DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.PurchaseOrder
	for rows.Next() {
		order := &models.PurchaseOrder{}
		if err := rows.Scan(&order.ID, &order.SupplierID, &order.OrderDate, &order.TotalAmount, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
