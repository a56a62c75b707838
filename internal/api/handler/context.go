package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/usermgmt/account-service/internal/api/middleware"
	"github.com/usermgmt/account-service/internal/core/domain"
)

// selfID returns the caller's own user id. Self routes never read the id
// from the request.
func selfID(c echo.Context) (string, error) {
	caller := middleware.CallerFrom(c)
	if !caller.Authenticated || caller.UserID == "" {
		return "", domain.ErrUnauthenticated
	}
	return caller.UserID, nil
}

// bindAndValidate binds the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
