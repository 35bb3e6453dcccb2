package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles inventory item and stock ledger HTTP requests
type InventoryHandlers struct {
	itemService   services.InventoryItemService
	ledgerService services.LedgerService
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(itemService services.InventoryItemService, ledgerService services.LedgerService) *InventoryHandlers {
	return &InventoryHandlers{
		itemService:   itemService,
		ledgerService: ledgerService,
	}
}

// ListItemsRequest represents query parameters for listing items
type ListItemsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListItems handles getting a list of inventory items
func (h *InventoryHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	items, err := h.itemService.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list inventory items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

// ItemRequest represents the inventory item create/update payload
type ItemRequest struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	OrderUnit *string `json:"order_unit"`
}

// CreateItem handles creating a new inventory item
func (h *InventoryHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	item := &models.InventoryItem{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
		OrderUnit: req.OrderUnit,
	}
	if err := h.itemService.Create(ctx, item); err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	return c.JSON(http.StatusCreated, item)
}

// GetItem handles getting a single inventory item by ID
func (h *InventoryHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	item, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles overwriting an inventory item's fields
func (h *InventoryHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	item := &models.InventoryItem{
		ID:        id,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
		OrderUnit: req.OrderUnit,
	}
	if err := h.itemService.Update(ctx, item); err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	return c.JSON(http.StatusOK, item)
}

// AdjustStockRequest represents a signed stock adjustment
type AdjustStockRequest struct {
	QuantityChange float64 `json:"quantity_change"`
	ChangeReason   string  `json:"change_reason"`
}

// AdjustStock applies a signed delta to an item and records the change
func (h *InventoryHandlers) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.ledgerService.AdjustStock(ctx, id, req.QuantityChange, req.ChangeReason); err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	item, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	return c.JSON(http.StatusOK, item)
}

// GetItemHistory handles listing the stock history for one item
func (h *InventoryHandlers) GetItemHistory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	history, err := h.itemService.History(ctx, id, limit, offset)
	if err != nil {
		return common.SendCoreError(c, "Inventory item", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": history,
		"limit":   limit,
		"offset":  offset,
	})
}
