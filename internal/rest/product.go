package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
)

type CatalogService interface {
	Product(id uint64) (domain.Product, error)
	Products() []domain.Product
	ByCategory(categoryID uint64) []domain.Product
	Categories() []domain.Category
	Trending(n int) []domain.Product
}

type ProductHandler struct {
	catalogService CatalogService
	timeout        time.Duration
}

func NewProductHandler(catalogService CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		timeout:        10 * time.Second,
	}
}

// GET /api/v1/products?category_id=2
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	categoryIDStr := c.QueryParam("category_id")
	if categoryIDStr == "" {
		return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalogService.Products()))
	}

	categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid category id", "category_id", categoryIDStr, "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalogService.ByCategory(categoryID)))
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productIDStr := c.Param("id")

	productID, err := strconv.ParseUint(productIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", "id", productIDStr, "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product, err := h.catalogService.Product(productID)
	if err != nil {
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

// GET /api/v1/categories
func (h *ProductHandler) GetAllCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalogService.Categories()))
}

// GET /api/v1/products/trending?limit=20
func (h *ProductHandler) GetTrending(c echo.Context) error {
	limit := 20
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = parsed
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalogService.Trending(limit)))
}
