package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/usermgmt/account-service/internal/core/domain"
)

// Require enforces the minimum role a route declares, using the caller's
// token claims.
func Require(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := CallerFrom(c)

			if capability.RequiresAuthentication() && !caller.Authenticated {
				return domain.ErrUnauthenticated
			}
			if capability == domain.CapabilityAdmin && !caller.HasRole(domain.RoleAdmin) {
				return domain.ErrAdminRequired
			}
			return next(c)
		}
	}
}
