package jobs

import (
	"context"
	"log"

	"beanmart/internal/repositories"

	"github.com/google/uuid"
)

type LowStockAlertService struct {
	itemRepo repositories.InventoryItemRepository
}

type LowStockAlert struct {
	ItemID       uuid.UUID
	ItemName     string
	CurrentStock float64
	Threshold    float64
}

func NewLowStockAlertService(itemRepo repositories.InventoryItemRepository) *LowStockAlertService {
	return &LowStockAlertService{itemRepo: itemRepo}
}

func (a *LowStockAlertService) CheckLowStock(ctx context.Context, threshold float64) ([]LowStockAlert, error) {
	if threshold <= 0 {
		threshold = 10
	}

	items, err := a.itemRepo.List(ctx, 1000, 0)
	if err != nil {
		log.Printf("Failed to list inventory items for low stock check: %v", err)
		return nil, err
	}

	var alerts []LowStockAlert
	for _, item := range items {
		if item.Quantity <= threshold {
			alerts = append(alerts, LowStockAlert{
				ItemID:       item.ID,
				ItemName:     item.Name,
				CurrentStock: item.Quantity,
				Threshold:    threshold,
			})
		}
	}
	return alerts, nil
}

func (a *LowStockAlertService) LogLowStockAlerts(alerts []LowStockAlert) {
	if len(alerts) == 0 {
		log.Println("No low stock alerts to log")
		return
	}

	log.Printf("Low stock alerts (%d items):", len(alerts))
	for _, alert := range alerts {
		log.Printf("- Item '%s' has %.2f units (threshold: %.2f)",
			alert.ItemName, alert.CurrentStock, alert.Threshold)
	}
}
