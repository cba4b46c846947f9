package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"elaraMarket/business/catalog"
	"elaraMarket/pkg/logger"
)

type CatalogAdminService interface {
	Reload(ctx context.Context) (catalog.Diagnostics, error)
	Diagnostics() catalog.Diagnostics
}

type AdminHandler struct {
	catalogService CatalogAdminService
	timeout        time.Duration
}

func NewAdminHandler(catalogService CatalogAdminService) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		timeout:        60 * time.Second,
	}
}

// POST /api/v1/admin/catalog/reload
func (h *AdminHandler) ReloadCatalog(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	diag, err := h.catalogService.Reload(ctx)
	if err != nil {
		logger.Error("Catalog reload failed", "error", err)
		// the previous snapshot keeps serving, so report the diagnostics too
		return c.JSON(http.StatusBadGateway, map[string]interface{}{
			"message":     err.Error(),
			"diagnostics": diag,
		})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(diag))
}

// GET /api/v1/admin/catalog/diagnostics
func (h *AdminHandler) CatalogDiagnostics(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalogService.Diagnostics()))
}
