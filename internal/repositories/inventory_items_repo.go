package repositories

import (
	"context"

	"beanmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InventoryItemRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error)
	Count(ctx context.Context) (int, error)

	// GetForUpdate locks the item row for the duration of the transaction so
	// concurrent adjustments on the same item serialize instead of losing a
	// delta.
	GetForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.InventoryItem, error)
	// AddQuantity applies a signed delta to the running quantity total.
	AddQuantity(ctx context.Context, q Querier, id uuid.UUID, delta float64) error
}

type inventoryItemRepo struct {
	db DB
}

func NewInventoryItemRepository(db DB) InventoryItemRepository {
	return &inventoryItemRepo{db: db}
}

func (r *inventoryItemRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, name, quantity, price, order_unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.Name, item.Quantity, item.Price, item.OrderUnit)
	return err
}

func (r *inventoryItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `
		SELECT id, name, quantity, price, order_unit, created_at, updated_at
		FROM inventory_items
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Quantity, &item.Price, &item.OrderUnit, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *inventoryItemRepo) GetForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `
		SELECT id, name, quantity, price, order_unit, created_at, updated_at
		FROM inventory_items
		WHERE id = $1
		FOR UPDATE
	`
	err := q.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Quantity, &item.Price, &item.OrderUnit, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *inventoryItemRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $1, quantity = $2, price = $3, order_unit = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.Quantity, item.Price, item.OrderUnit, item.ID)
	return err
}

func (r *inventoryItemRepo) AddQuantity(ctx context.Context, q Querier, id uuid.UUID, delta float64) error {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, delta, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryItemRepo) List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error) {
	query := `
		SELECT id, name, quantity, price, order_unit, created_at, updated_at
		FROM inventory_items
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item := &models.InventoryItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Price, &item.OrderUnit, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryItemRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&count)
	return count, err
}
