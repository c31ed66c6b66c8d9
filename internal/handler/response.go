package handler

import (
	"errors"
	"net/http"

	"github.com/bazary/bazary-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// respondError maps service errors onto the HTTP taxonomy. Validation
// failures carry their message through; anything unrecognized is an
// internal failure and must not leak its text to the client.
func respondError(c echo.Context, err error) error {
	var rl *service.RateLimitedError
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "resource not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrAlreadyProcessed):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_processed", "this proposal has already been processed"))
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "duplicate entry"))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", err.Error()))
	case errors.As(err, &rl):
		return c.JSON(http.StatusTooManyRequests, NewErrorResponse("rate_limited", rl.Error()))
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", ve.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "internal server error"))
	}
}
