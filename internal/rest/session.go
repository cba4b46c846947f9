package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
)

type SessionService interface {
	Get(ctx context.Context, sessionID string) (domain.SessionContext, bool, error)
	UpdatePreferences(ctx context.Context, sessionID string, prefs map[string]string) error
}

type SessionHandler struct {
	sessionStore SessionService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewSessionHandler(sessionStore SessionService) *SessionHandler {
	return &SessionHandler{
		sessionStore: sessionStore,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c echo.Context) error {
	sessionID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sessCtx, ok, err := h.sessionStore.Get(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load session", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "session not found or expired"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(sessCtx))
}

type UpdatePreferencesRequest struct {
	Preferences map[string]string `json:"preferences" validate:"required,min=1"`
}

// PUT /api/v1/sessions/:id/preferences
func (h *SessionHandler) UpdatePreferences(c echo.Context) error {
	sessionID := c.Param("id")

	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind preferences request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate preferences request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sessionStore.UpdatePreferences(ctx, sessionID, req.Preferences); err != nil {
		logger.Error("Failed to update preferences", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("preferences updated"))
}
