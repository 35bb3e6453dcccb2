package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"beanmart/internal/caching"
	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReceiptReason is the change_reason recorded when an ordered line item is
// credited to stock.
const ReceiptReason = "receipt"

const itemCacheTTL = 5 * time.Minute

// LedgerService owns every mutation of InventoryItem.Quantity. Each quantity
// change and its mirroring history row commit in one transaction, so the
// ledger can never drift from the running total.
type LedgerService interface {
	// AdjustStock applies a signed delta to an item's quantity and appends
	// one history row. The delta is not floored at zero.
	AdjustStock(ctx context.Context, itemID uuid.UUID, delta float64, reason string) error
	// ReceiveOrderItem credits an ordered quantity to stock and marks the
	// line received. A second call on the same line is a no-op and returns
	// received = false.
	ReceiveOrderItem(ctx context.Context, orderItemID uuid.UUID) (received bool, err error)
}

type ledgerService struct {
	db            repositories.DB
	itemRepo      repositories.InventoryItemRepository
	historyRepo   repositories.InventoryHistoryRepository
	orderItemRepo repositories.OrderItemRepository
	cacheService  caching.CacheService
}

func NewLedgerService(db repositories.DB, itemRepo repositories.InventoryItemRepository, historyRepo repositories.InventoryHistoryRepository, orderItemRepo repositories.OrderItemRepository, cacheService caching.CacheService) LedgerService {
	return &ledgerService{
		db:            db,
		itemRepo:      itemRepo,
		historyRepo:   historyRepo,
		orderItemRepo: orderItemRepo,
		cacheService:  cacheService,
	}
}

func (s *ledgerService) AdjustStock(ctx context.Context, itemID uuid.UUID, delta float64, reason string) error {
	if err := common.ValidateRequiredString(reason, "change_reason"); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin stock adjustment: %w", err)
	}
	defer tx.Rollback(ctx)

	item, err := s.itemRepo.GetForUpdate(ctx, tx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("inventory item %s: %w", itemID, common.ErrNotFound)
		}
		return fmt.Errorf("lock inventory item: %w", err)
	}

	if err := s.itemRepo.AddQuantity(ctx, tx, item.ID, delta); err != nil {
		return fmt.Errorf("apply quantity delta: %w", err)
	}

	entry := &models.InventoryHistory{
		ID:              uuid.New(),
		InventoryItemID: item.ID,
		QuantityChange:  delta,
		ChangeReason:    reason,
	}
	if err := s.historyRepo.Append(ctx, tx, entry); err != nil {
		return fmt.Errorf("append history row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit stock adjustment: %w", err)
	}

	s.invalidateItem(ctx, item.ID)
	return nil
}

func (s *ledgerService) ReceiveOrderItem(ctx context.Context, orderItemID uuid.UUID) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin receipt: %w", err)
	}
	defer tx.Rollback(ctx)

	orderItem, err := s.orderItemRepo.GetForUpdate(ctx, tx, orderItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("order item %s: %w", orderItemID, common.ErrNotFound)
		}
		return false, fmt.Errorf("lock order item: %w", err)
	}

	if orderItem.IsReceived {
		return false, nil
	}

	delta := float64(orderItem.QuantityOrdered)
	if err := s.itemRepo.AddQuantity(ctx, tx, orderItem.InventoryItemID, delta); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("inventory item %s: %w", orderItem.InventoryItemID, common.ErrNotFound)
		}
		return false, fmt.Errorf("credit received quantity: %w", err)
	}

	entry := &models.InventoryHistory{
		ID:              uuid.New(),
		InventoryItemID: orderItem.InventoryItemID,
		QuantityChange:  delta,
		ChangeReason:    ReceiptReason,
	}
	if err := s.historyRepo.Append(ctx, tx, entry); err != nil {
		return false, fmt.Errorf("append receipt history row: %w", err)
	}

	if err := s.orderItemRepo.MarkReceived(ctx, tx, orderItem.ID, time.Now()); err != nil {
		return false, fmt.Errorf("mark order item received: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit receipt: %w", err)
	}

	s.invalidateItem(ctx, orderItem.InventoryItemID)
	return true, nil
}

func (s *ledgerService) invalidateItem(ctx context.Context, itemID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeleteItem(ctx, itemID); err != nil {
		log.Printf("Failed to invalidate cache for item %s: %v", itemID.String(), err)
	}
}
