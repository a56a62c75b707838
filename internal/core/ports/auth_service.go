package ports

import (
	"context"
)

// RegisterInput carries the fields accepted on registration and admin create.
// Roles are never taken from input.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Address  string
	IsActive bool
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	// Login returns a signed token for valid credentials.
	Login(ctx context.Context, email, password string) (string, error)
}
