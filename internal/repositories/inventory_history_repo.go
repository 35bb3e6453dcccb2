package repositories

import (
	"context"

	"beanmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InventoryHistoryRepository is append-only: rows are inserted, listed, and
// summed, never updated or deleted.
type InventoryHistoryRepository interface {
	Append(ctx context.Context, q Querier, entry *models.InventoryHistory) error
	ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.InventoryHistory, error)
	List(ctx context.Context, limit, offset int) ([]*models.InventoryHistory, error)
	SumDeltasByItem(ctx context.Context, itemID uuid.UUID) (float64, error)
	CountByItem(ctx context.Context, itemID uuid.UUID) (int, error)
}

type inventoryHistoryRepo struct {
	db DB
}

func NewInventoryHistoryRepository(db DB) InventoryHistoryRepository {
	return &inventoryHistoryRepo{db: db}
}

func (r *inventoryHistoryRepo) Append(ctx context.Context, q Querier, entry *models.InventoryHistory) error {
	query := `
		INSERT INTO inventory_history (id, inventory_item_id, quantity_change, change_reason, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := q.Exec(ctx, query, entry.ID, entry.InventoryItemID, entry.QuantityChange, entry.ChangeReason)
	return err
}

func (r *inventoryHistoryRepo) ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.InventoryHistory, error) {
	query := `
		SELECT id, inventory_item_id, quantity_change, change_reason, created_at
		FROM inventory_history
		WHERE inventory_item_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

func (r *inventoryHistoryRepo) List(ctx context.Context, limit, offset int) ([]*models.InventoryHistory, error) {
	query := `
		SELECT id, inventory_item_id, quantity_change, change_reason, created_at
		FROM inventory_history
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

func scanHistoryRows(rows pgx.Rows) ([]*models.InventoryHistory, error) {
	var entries []*models.InventoryHistory
	for rows.Next() {
		entry := &models.InventoryHistory{}
		if err := rows.Scan(&entry.ID, &entry.InventoryItemID, &entry.QuantityChange, &entry.ChangeReason, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *inventoryHistoryRepo) SumDeltasByItem(ctx context.Context, itemID uuid.UUID) (float64, error) {
	var sum float64
	query := `
		SELECT COALESCE(SUM(quantity_change), 0)
		FROM inventory_history
		WHERE inventory_item_id = $1
	`
	err := r.db.QueryRow(ctx, query, itemID).Scan(&sum)
	return sum, err
}

func (r *inventoryHistoryRepo) CountByItem(ctx context.Context, itemID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM inventory_history WHERE inventory_item_id = $1`
	err := r.db.QueryRow(ctx, query, itemID).Scan(&count)
	return count, err
}
