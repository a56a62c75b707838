package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotDeleted     = errors.New("user is not deleted")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive or deleted")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrForbidden          = errors.New("access forbidden")
)

// Forbidden reasons produced by the access gate and the per-route role check.
var (
	ErrAccessInactive = fmt.Errorf("%w: account inactive or deleted", ErrForbidden)
	ErrAdminRequired  = fmt.Errorf("%w: admin required", ErrForbidden)
)
