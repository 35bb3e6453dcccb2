package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// HistoryHandlers handles the cross-item stock history listing
type HistoryHandlers struct {
	itemService services.InventoryItemService
}

// NewHistoryHandlers creates a new history handlers instance
func NewHistoryHandlers(itemService services.InventoryItemService) *HistoryHandlers {
	return &HistoryHandlers{itemService: itemService}
}

// ListHistory handles listing stock history across all items, newest first
func (h *HistoryHandlers) ListHistory(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	history, err := h.itemService.AllHistory(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list stock history")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": history,
		"limit":   limit,
		"offset":  offset,
	})
}
