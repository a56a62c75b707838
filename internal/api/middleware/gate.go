package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/api/metrics"
	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

// Gate asks the access gate about every request before the route's own role
// check runs. capability is the one the route declares.
func Gate(gate ports.AccessGate, capability domain.Capability, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := CallerFrom(c)

			decision, err := gate.Decide(c.Request().Context(), caller, c.Request().Method, capability)
			if err != nil {
				return err
			}

			if !decision.Allowed {
				reason := denyReason(decision.Reason)
				metrics.AccessDecisionsTotal.WithLabelValues("deny", reason).Inc()
				log.Info().
					Str("user_id", caller.UserID).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Str("reason", reason).
					Msg("access denied")
				return decision.Reason
			}

			metrics.AccessDecisionsTotal.WithLabelValues("allow", "").Inc()
			return next(c)
		}
	}
}

func denyReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccessInactive):
		return "inactive"
	case errors.Is(err, domain.ErrAdminRequired):
		return "admin_required"
	default:
		return "other"
	}
}
