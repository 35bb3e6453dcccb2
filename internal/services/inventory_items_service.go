package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"beanmart/internal/caching"
	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InventoryItemService covers item CRUD. Quantity is normally mutated through
// the ledger; Update is the one explicit-edit escape hatch and overwrites the
// absolute value without a history row, matching observed behavior.
type InventoryItemService interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error)
	History(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.InventoryHistory, error)
	AllHistory(ctx context.Context, limit, offset int) ([]*models.InventoryHistory, error)
}

type inventoryItemService struct {
	itemRepo     repositories.InventoryItemRepository
	historyRepo  repositories.InventoryHistoryRepository
	cacheService caching.CacheService
}

func NewInventoryItemService(itemRepo repositories.InventoryItemRepository, historyRepo repositories.InventoryHistoryRepository, cacheService caching.CacheService) InventoryItemService {
	return &inventoryItemService{
		itemRepo:     itemRepo,
		historyRepo:  historyRepo,
		cacheService: cacheService,
	}
}

func (s *inventoryItemService) Create(ctx context.Context, item *models.InventoryItem) error {
	if err := common.ValidateRequiredString(item.Name, "item name"); err != nil {
		return err
	}
	if item.Price < 0 {
		return fmt.Errorf("item price cannot be negative: %w", common.ErrValidation)
	}

	item.ID = uuid.New()
	return s.itemRepo.Create(ctx, item)
}

func (s *inventoryItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	if s.cacheService != nil {
		cached, err := s.cacheService.GetItem(ctx, id)
		if err != nil {
			log.Printf("Cache error for item %s: %v", id.String(), err)
		} else if cached != nil {
			return cached, nil
		}
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %s: %w", id, common.ErrNotFound)
		}
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.SetItem(ctx, item, itemCacheTTL); err != nil {
			log.Printf("Failed to cache item %s: %v", id.String(), err)
		}
	}
	return item, nil
}

func (s *inventoryItemService) Update(ctx context.Context, item *models.InventoryItem) error {
	if err := common.ValidateRequiredString(item.Name, "item name"); err != nil {
		return err
	}
	if item.Price < 0 {
		return fmt.Errorf("item price cannot be negative: %w", common.ErrValidation)
	}

	if _, err := s.GetByID(ctx, item.ID); err != nil {
		return err
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return err
	}

	if s.cacheService != nil {
		if err := s.cacheService.DeleteItem(ctx, item.ID); err != nil {
			log.Printf("Failed to invalidate cache for item %s: %v", item.ID.String(), err)
		}
	}
	return nil
}

func (s *inventoryItemService) List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error) {
	return s.itemRepo.List(ctx, limit, offset)
}

func (s *inventoryItemService) History(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.InventoryHistory, error) {
	if _, err := s.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByItem(ctx, itemID, limit, offset)
}

func (s *inventoryItemService) AllHistory(ctx context.Context, limit, offset int) ([]*models.InventoryHistory, error) {
	return s.historyRepo.List(ctx, limit, offset)
}
