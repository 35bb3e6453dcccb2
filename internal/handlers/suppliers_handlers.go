package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// SupplierHandlers handles supplier-related HTTP requests
type SupplierHandlers struct {
	supplierService services.SupplierService
}

// NewSupplierHandlers creates a new supplier handlers instance
func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

// ListSuppliersRequest represents query parameters for listing suppliers
type ListSuppliersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListSuppliers handles getting a list of suppliers
func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListSuppliersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	suppliers, err := h.supplierService.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list suppliers")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"limit":     limit,
		"offset":    offset,
	})
}

// SupplierRequest represents the supplier create/update payload
type SupplierRequest struct {
	Name        string  `json:"name"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	ContactInfo *string `json:"contact_info"`
}

// CreateSupplier handles creating a new supplier
func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	supplier := &models.Supplier{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		ContactInfo: req.ContactInfo,
	}
	if err := h.supplierService.Create(ctx, supplier); err != nil {
		return common.SendCoreError(c, "Supplier", err)
	}

	return c.JSON(http.StatusCreated, supplier)
}

// GetSupplier handles getting a single supplier by ID
func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "supplier id")
	if err != nil {
		return common.SendCoreError(c, "Supplier", err)
	}

	supplier, err := h.supplierService.GetByID(ctx, id)
	if err != nil {
		return common.SendCoreError(c, "Supplier", err)
	}

	return c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier handles updating an existing supplier
func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "supplier id")
	if err != nil {
		return common.SendCoreError(c, "Supplier", err)
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	supplier := &models.Supplier{
		ID:          id,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		ContactInfo: req.ContactInfo,
	}
	if err := h.supplierService.Update(ctx, supplier); err != nil {
		return common.SendCoreError(c, "Supplier", err)
	}

	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles deleting a supplier
func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "supplier id")
	if err != nil {
		return common.SendCoreError(c, "Supplier", err)
	}

	if err := h.supplierService.Delete(ctx, id); err != nil {
		return common.SendCoreError(c, "Supplier", err)
	}

	return c.NoContent(http.StatusNoContent)
}
