package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The credential and
	// registration messages are part of the dashboard contract.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusBadRequest, "Vehicle number not found in RTO database. Cannot verify ownership."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, domain.ErrAdminExists):
		return http.StatusConflict, "Username already taken"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrViolationNotFound):
		return http.StatusNotFound, "challan not found"
	case errors.Is(err, domain.ErrCameraNotFound):
		return http.StatusNotFound, "camera not found"
	case errors.Is(err, domain.ErrTicketNotFound):
		return http.StatusNotFound, "support ticket not found"
	case errors.Is(err, domain.ErrTicketInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrChallanAlreadyPaid):
		return http.StatusConflict, "Challan already paid"
	case errors.Is(err, domain.ErrChallanNotPayable):
		return http.StatusUnprocessableEntity, "Challan is not payable yet"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
