package services

import (
	"context"
	"fmt"
	"log"

	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
)

// SeedService loads a small starter catalog on an empty database so a fresh
// deployment has suppliers and items to work with. Seeding is skipped when
// any supplier or item already exists.
type SeedService interface {
	SeedIfEmpty(ctx context.Context) (bool, error)
}

type seedService struct {
	supplierRepo repositories.SupplierRepository
	itemRepo     repositories.InventoryItemRepository
}

func NewSeedService(supplierRepo repositories.SupplierRepository, itemRepo repositories.InventoryItemRepository) SeedService {
	return &seedService{
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
	}
}

func (s *seedService) SeedIfEmpty(ctx context.Context) (bool, error) {
	supplierCount, err := s.supplierRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count suppliers: %w", err)
	}
	itemCount, err := s.itemRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count inventory items: %w", err)
	}
	if supplierCount > 0 || itemCount > 0 {
		return false, nil
	}

	suppliers := []*models.Supplier{
		{
			ID:      uuid.New(),
			Name:    "Highland Roasters Co.",
			Address: ptr("12 Harbor Street, Portland, OR"),
			Phone:   ptr("503-555-0117"),
			Email:   ptr("orders@highlandroasters.example"),
		},
		{
			ID:      uuid.New(),
			Name:    "Pacific Bean Imports",
			Address: ptr("88 Cannery Row, Oakland, CA"),
			Phone:   ptr("510-555-0198"),
			Email:   ptr("sales@pacificbean.example"),
		},
		{
			ID:      uuid.New(),
			Name:    "Cascade Packaging Supply",
			Address: ptr("401 Mill Road, Tacoma, WA"),
			Phone:   ptr("253-555-0142"),
			Email:   ptr("support@cascadepack.example"),
		},
	}
	for _, sup := range suppliers {
		if err := s.supplierRepo.Create(ctx, sup); err != nil {
			return false, fmt.Errorf("failed to seed supplier %s: %w", sup.Name, err)
		}
	}

	items := []*models.InventoryItem{
		{Name: "Blend Coffee 200g", Price: 450, OrderUnit: ptr("bag")},
		{Name: "Single Origin Ethiopia 200g", Price: 680, OrderUnit: ptr("bag")},
		{Name: "Decaf Colombia 200g", Price: 520, OrderUnit: ptr("bag")},
		{Name: "Drip Bag Assortment 10pk", Price: 900, OrderUnit: ptr("box")},
		{Name: "Paper Filter #2 100ct", Price: 300, OrderUnit: ptr("pack")},
		{Name: "Gift Box Set", Price: 1500, OrderUnit: ptr("box")},
	}
	for i, item := range items {
		item.ID = uuid.New()
		item.Quantity = float64(11 + i)
		if err := s.itemRepo.Create(ctx, item); err != nil {
			return false, fmt.Errorf("failed to seed item %s: %w", item.Name, err)
		}
	}

	log.Printf("Seeded %d suppliers and %d inventory items", len(suppliers), len(items))
	return true, nil
}

func ptr(s string) *string { return &s }
