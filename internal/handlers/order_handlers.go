package handlers

import (
	"net/http"
	"time"

	"beanmart/internal/common"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles purchase order HTTP requests
type OrderHandlers struct {
	orderService  services.OrderService
	ledgerService services.LedgerService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService, ledgerService services.LedgerService) *OrderHandlers {
	return &OrderHandlers{
		orderService:  orderService,
		ledgerService: ledgerService,
	}
}

// OrderLineRequest represents one line of an order creation payload
type OrderLineRequest struct {
	InventoryItemID string  `json:"inventory_item_id"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	Subtotal        float64 `json:"subtotal"`
}

// CreateOrderHTTPRequest represents the order creation payload
type CreateOrderHTTPRequest struct {
	SupplierID string             `json:"supplier_id"`
	OrderDate  string             `json:"order_date"`
	Total      float64            `json:"total"`
	Items      []OrderLineRequest `json:"items"`
}

// CreateOrder handles creating a purchase order with its line items
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateOrderHTTPRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	supplierID, err := common.ValidateUUID(req.SupplierID, "supplier_id")
	if err != nil {
		return common.SendCoreError(c, "Supplier", err)
	}

	var orderDate time.Time
	if req.OrderDate != "" {
		orderDate, err = common.ValidateDateFormat(req.OrderDate, "order_date")
		if err != nil {
			return common.SendCoreError(c, "Order", err)
		}
	}

	svcReq := &services.CreateOrderRequest{
		SupplierID:    supplierID,
		OrderDate:     orderDate,
		DeclaredTotal: req.Total,
	}
	for _, line := range req.Items {
		itemID, err := common.ValidateUUID(line.InventoryItemID, "inventory_item_id")
		if err != nil {
			return common.SendCoreError(c, "Inventory item", err)
		}
		svcReq.Lines = append(svcReq.Lines, services.OrderLineInput{
			InventoryItemID: itemID,
			UnitPrice:       line.Price,
			Quantity:        line.Quantity,
			Subtotal:        line.Subtotal,
		})
	}

	detail, err := h.orderService.CreateOrder(ctx, svcReq)
	if err != nil {
		return common.SendCoreError(c, "Order", err)
	}

	return c.JSON(http.StatusCreated, detail)
}

// GetOrder handles getting one purchase order with supplier and lines
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendCoreError(c, "Order", err)
	}

	detail, err := h.orderService.GetOrder(ctx, id)
	if err != nil {
		return common.SendCoreError(c, "Order", err)
	}

	return c.JSON(http.StatusOK, detail)
}

// ListOrders handles listing purchase orders, newest first
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	orders, err := h.orderService.ListOrders(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list orders")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}

// ListIncoming handles listing unreceived order items across all orders
func (h *OrderHandlers) ListIncoming(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	items, err := h.orderService.ListIncoming(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list incoming items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"incoming": items,
		"limit":    limit,
		"offset":   offset,
	})
}

// ReceiveOrderItem credits an ordered line into stock. Receiving an already
// received line returns received = false with status 200.
func (h *OrderHandlers) ReceiveOrderItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "order item id")
	if err != nil {
		return common.SendCoreError(c, "Order item", err)
	}

	received, err := h.ledgerService.ReceiveOrderItem(ctx, id)
	if err != nil {
		return common.SendCoreError(c, "Order item", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"received": received,
	})
}
