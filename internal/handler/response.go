package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jazzypay/internal/repository"
	"jazzypay/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidOrderID),
		errors.Is(err, service.ErrUnsupportedCurrency),
		errors.Is(err, service.ErrMalformedCallback):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, repository.ErrStaleStatus):
		return http.StatusConflict

	// Upstream processor failures
	case errors.Is(err, service.ErrConnectionFailed),
		errors.Is(err, service.ErrProcessorRejected):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
