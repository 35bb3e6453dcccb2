package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderLineInput is one requested line of a new purchase order. Subtotal is
// caller-computed and trusted, matching observed behavior; it is echoed back
// for document rendering but never persisted.
type OrderLineInput struct {
	InventoryItemID uuid.UUID
	UnitPrice       float64
	Quantity        int
	Subtotal        float64
}

// CreateOrderRequest carries everything needed to create a purchase order
// with its line items. DeclaredTotal is stored as total_amount without
// recomputation.
type CreateOrderRequest struct {
	SupplierID    uuid.UUID
	OrderDate     time.Time
	DeclaredTotal float64
	Lines         []OrderLineInput
}

type OrderService interface {
	// CreateOrder creates one purchase order and one order item per line,
	// all unreceived, in a single transaction. Stock is untouched until
	// receipt.
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.PurchaseOrderDetail, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.PurchaseOrderDetail, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*models.PurchaseOrderDetail, error)
	ListIncoming(ctx context.Context, limit, offset int) ([]*models.OrderItemWithName, error)
}

type orderService struct {
	db            repositories.DB
	orderRepo     repositories.PurchaseOrderRepository
	orderItemRepo repositories.OrderItemRepository
	supplierRepo  repositories.SupplierRepository
	itemRepo      repositories.InventoryItemRepository
}

func NewOrderService(db repositories.DB, orderRepo repositories.PurchaseOrderRepository, orderItemRepo repositories.OrderItemRepository, supplierRepo repositories.SupplierRepository, itemRepo repositories.InventoryItemRepository) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		supplierRepo:  supplierRepo,
		itemRepo:      itemRepo,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.PurchaseOrderDetail, error) {
	if req == nil || len(req.Lines) == 0 {
		return nil, fmt.Errorf("order needs at least one line item: %w", common.ErrValidation)
	}
	for i, line := range req.Lines {
		if err := common.ValidatePositiveInt(line.Quantity, fmt.Sprintf("line %d quantity", i+1)); err != nil {
			return nil, err
		}
		if err := common.ValidatePositiveFloat(line.UnitPrice, fmt.Sprintf("line %d price", i+1)); err != nil {
			return nil, err
		}
	}

	supplier, err := s.supplierRepo.GetByID(ctx, req.SupplierID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %s: %w", req.SupplierID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("look up supplier: %w", err)
	}

	// Resolve item names up front; this also validates every referenced item.
	lines := make([]models.OrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		item, err := s.itemRepo.GetByID(ctx, line.InventoryItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("inventory item %s: %w", line.InventoryItemID, common.ErrNotFound)
			}
			return nil, fmt.Errorf("look up inventory item: %w", err)
		}
		lines = append(lines, models.OrderLine{
			Name:      item.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal,
		})
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &models.PurchaseOrder{
		ID:          uuid.New(),
		SupplierID:  supplier.ID,
		OrderDate:   orderDate,
		TotalAmount: req.DeclaredTotal,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order creation: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("insert purchase order: %w", err)
	}
	for _, line := range req.Lines {
		orderItem := &models.OrderItem{
			ID:              uuid.New(),
			PurchaseOrderID: order.ID,
			InventoryItemID: line.InventoryItemID,
			QuantityOrdered: line.Quantity,
			UnitPrice:       line.UnitPrice,
		}
		if err := s.orderItemRepo.Create(ctx, tx, orderItem); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order creation: %w", err)
	}

	return &models.PurchaseOrderDetail{
		PurchaseOrder: *order,
		Supplier:      supplier,
		Items:         lines,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.PurchaseOrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase order %s: %w", orderID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("look up purchase order: %w", err)
	}

	supplier, err := s.supplierRepo.GetByID(ctx, order.SupplierID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("look up order supplier: %w", err)
	}

	items, err := s.orderItemRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	return buildOrderDetail(order, supplier, items), nil
}

func (s *orderService) ListOrders(ctx context.Context, limit, offset int) ([]*models.PurchaseOrderDetail, error) {
	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}

	details := make([]*models.PurchaseOrderDetail, 0, len(orders))
	for _, order := range orders {
		items, err := s.orderItemRepo.ListByOrder(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("list items for order %s: %w", order.ID, err)
		}
		details = append(details, buildOrderDetail(order, nil, items))
	}
	return details, nil
}

func (s *orderService) ListIncoming(ctx context.Context, limit, offset int) ([]*models.OrderItemWithName, error) {
	return s.orderItemRepo.ListUnreceived(ctx, limit, offset)
}

func buildOrderDetail(order *models.PurchaseOrder, supplier *models.Supplier, items []*models.OrderItemWithName) *models.PurchaseOrderDetail {
	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderLine{
			Name:      item.ItemName,
			UnitPrice: item.UnitPrice,
			Quantity:  item.QuantityOrdered,
			Subtotal:  item.UnitPrice * float64(item.QuantityOrdered),
		})
	}
	return &models.PurchaseOrderDetail{
		PurchaseOrder: *order,
		Supplier:      supplier,
		Items:         lines,
	}
}
