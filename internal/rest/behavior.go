package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
)

type BehaviorRecorder interface {
	SaveEvent(ctx context.Context, event domain.BehaviorEvent) error
}

type BehaviorHandler struct {
	behaviorRepo BehaviorRecorder
	validator    *validator.Validate
	timeout      time.Duration
}

func NewBehaviorHandler(behaviorRepo BehaviorRecorder) *BehaviorHandler {
	return &BehaviorHandler{
		behaviorRepo: behaviorRepo,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type RecordEventRequest struct {
	UserID    uint64                 `json:"user_id" validate:"required"`
	Action    string                 `json:"action" validate:"required,oneof=view purchase search cart_add"`
	ProductID uint64                 `json:"product_id"`
	Context   map[string]interface{} `json:"context"`
}

// POST /api/v1/events
func (h *BehaviorHandler) RecordEvent(c echo.Context) error {
	var req RecordEventRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind event request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate event request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if h.behaviorRepo == nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "behavior store unavailable"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event := domain.BehaviorEvent{
		UserID:    req.UserID,
		Action:    req.Action,
		ProductID: req.ProductID,
		Context:   datatypes.JSONMap(req.Context),
	}

	if err := h.behaviorRepo.SaveEvent(ctx, event); err != nil {
		logger.Error("Failed to save behavior event", "user_id", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("event recorded"))
}
