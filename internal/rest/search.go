package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"elaraMarket/business/search"
	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
	"elaraMarket/pkg/metrics"
)

type SearchService interface {
	Search(ctx context.Context, req search.Request) ([]domain.Product, error)
}

type SearchHandler struct {
	searchService SearchService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewSearchHandler(searchService SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type SearchRequest struct {
	Query      string  `query:"q"`
	CategoryID uint64  `query:"category_id"`
	MinPrice   float64 `query:"min_price" validate:"gte=0"`
	MaxPrice   float64 `query:"max_price" validate:"gte=0"`
	Limit      int     `query:"limit" validate:"gte=0,lte=100"`
	SessionID  string  `query:"session_id"`
}

const defaultSearchLimit = 20

// GET /api/v1/search?q=iphone&category_id=2&min_price=10&limit=20
func (h *SearchHandler) Search(c echo.Context) error {
	started := time.Now()

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind search request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate search request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Limit == 0 {
		req.Limit = defaultSearchLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.searchService.Search(ctx, search.Request{
		Query: req.Query,
		Filters: domain.SearchFilters{
			CategoryID: req.CategoryID,
			MinPrice:   req.MinPrice,
			MaxPrice:   req.MaxPrice,
		},
		Limit:     req.Limit,
		SessionID: req.SessionID,
	})

	metrics.SearchRequests.Inc()
	metrics.SearchLatency.Observe(time.Since(started).Seconds())

	if err != nil {
		logger.Error("Failed to search products", "query", req.Query, "error", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}
