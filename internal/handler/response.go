package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autonomo/internal/dispatch"
	"autonomo/internal/domain/value"
	"autonomo/internal/repository"
	"autonomo/internal/service"
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

// mapErrorToHTTPStatus maps service and domain errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var cmdErr *dispatch.CommandError

	switch {
	// Not found errors
	case errors.Is(err, service.ErrRideNotFound),
		errors.Is(err, service.ErrVehicleNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, value.ErrInvalidLatitude),
		errors.Is(err, value.ErrInvalidLongitude),
		errors.Is(err, value.ErrInvalidVin):
		return http.StatusBadRequest

	// A rejected command is a conflict with the aggregate's current state.
	case errors.As(err, &cmdErr),
		errors.Is(err, service.ErrAggregateBusy):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
