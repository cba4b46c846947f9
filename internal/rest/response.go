package rest

import (
	"errors"
	"net/http"

	"elaraMarket/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusFromError maps the domain sentinels onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrCollaboratorTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
