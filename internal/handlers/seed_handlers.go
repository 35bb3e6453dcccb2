package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// SeedHandlers exposes the starter-data load for fresh environments
type SeedHandlers struct {
	seedService services.SeedService
}

// NewSeedHandlers creates a new seed handlers instance
func NewSeedHandlers(seedService services.SeedService) *SeedHandlers {
	return &SeedHandlers{seedService: seedService}
}

// Seed handles POST /v1/seed. Seeding only runs against an empty database.
func (h *SeedHandlers) Seed(c echo.Context) error {
	ctx := c.Request().Context()

	seeded, err := h.seedService.SeedIfEmpty(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to seed database: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"seeded": seeded,
	})
}
