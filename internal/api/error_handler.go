package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/api/handler"
	"github.com/usermgmt/account-service/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and client messages.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the same {"message", "data"} envelope as successful responses.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.Envelope) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, handler.Envelope{
			Message: "One or more validation errors occurred.",
			Data:    ve.Fields,
		}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.Envelope{Message: fmt.Sprintf("%v", he.Message)}
	}

	code, msg := http.StatusInternalServerError, "An unexpected error occurred."
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		code, msg = http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrEmailTaken):
		code, msg = http.StatusBadRequest, "This email address is already registered."
	case errors.Is(err, domain.ErrUserNotDeleted):
		code, msg = http.StatusBadRequest, "User is not deleted and cannot be restored."
	case errors.Is(err, domain.ErrInvalidCredentials):
		code, msg = http.StatusUnauthorized, "Invalid email or password. Please try again."
	case errors.Is(err, domain.ErrAccountInactive):
		code, msg = http.StatusUnauthorized, "Your account is inactive or deleted."
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUnauthenticated):
		code, msg = http.StatusUnauthorized, "Authentication is required to access this resource."
	case errors.Is(err, domain.ErrAccessInactive):
		code, msg = http.StatusForbidden, "Access denied. Your account is inactive or deleted."
	case errors.Is(err, domain.ErrAdminRequired):
		code, msg = http.StatusForbidden, "Access denied. Only Admins are permitted to perform this action."
	case errors.Is(err, domain.ErrForbidden):
		code, msg = http.StatusForbidden, "Access denied."
	case errors.Is(err, domain.ErrTooManyAttempts):
		code, msg = http.StatusTooManyRequests, "Too many login attempts. Please try again later."
	default:
		// Unexpected error: log the real cause, return a generic message.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
	}

	return code, handler.Envelope{Message: msg}
}
