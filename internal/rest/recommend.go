package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"elaraMarket/business/recommend"
	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
	"elaraMarket/pkg/metrics"
)

type RecommendService interface {
	Recommend(ctx context.Context, req recommend.Request) ([]domain.Product, error)
}

type RecommendHandler struct {
	recommendService RecommendService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewRecommendHandler(recommendService RecommendService) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

type RecommendRequest struct {
	UserID    uint64 `query:"user_id"`
	ProductID uint64 `query:"product_id"`
	Mode      string `query:"mode" validate:"omitempty,oneof=personalized trending similar frequently_bought"`
	Limit     int    `query:"limit" validate:"gte=0,lte=100"`
}

const defaultRecommendLimit = 10

// GET /api/v1/recommendations?user_id=42&mode=personalized&limit=10
func (h *RecommendHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind recommendation request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate recommendation request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Limit == 0 {
		req.Limit = defaultRecommendLimit
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.ModePersonalized
	}

	metrics.RecommendRequests.WithLabelValues(mode).Inc()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.recommendService.Recommend(ctx, recommend.Request{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Mode:      mode,
		Limit:     req.Limit,
	})
	if err != nil {
		logger.Error("Failed to build recommendations", "mode", mode, "error", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}
