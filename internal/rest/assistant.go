package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"elaraMarket/business/assistant"
	"elaraMarket/pkg/logger"
)

type AssistantService interface {
	Chat(ctx context.Context, req assistant.ChatRequest) (assistant.ChatReply, error)
}

type AssistantHandler struct {
	assistantService AssistantService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewAssistantHandler(assistantService AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		validator:        validator.New(),
		timeout:          30 * time.Second,
	}
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// POST /api/v1/assistant/chat
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req ChatRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind chat request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate chat request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reply, err := h.assistantService.Chat(ctx, assistant.ChatRequest{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		logger.Error("Failed to answer chat", "session_id", req.SessionID, "error", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reply))
}
