package ports

import (
	"context"
)

// ListUsersInput holds the raw query parameters of the list endpoint.
// UserService interprets them:
//   - Status: "" = no filter, "active" = active only, anything else = inactive only.
//   - Sort:   "" = store order, "age_asc" = age ascending, anything else = age descending.
type ListUsersInput struct {
	Search string
	Status string
	Sort   string
}

// UpdateUserInput is the admin update DTO.
type UpdateUserInput struct {
	Name     string
	Email    string
	Age      int
	Address  string
	IsActive bool
}

// UpdateProfileInput is the self-service update DTO. It cannot change the
// activity flag or roles.
type UpdateProfileInput struct {
	Name    string
	Email   string
	Age     int
	Address string
}

// UserProfile is the public projection of an account.
type UserProfile struct {
	ID       string
	Name     string
	Email    string
	Age      int
	Address  string
	IsActive bool
}

// UserService defines the account management use cases. Admin-only
// operations assume the caller was already authorised; self operations take
// the caller's own user id.
type UserService interface {
	List(ctx context.Context, input ListUsersInput) ([]UserProfile, error)
	Get(ctx context.Context, id string) (*UserProfile, error)
	Create(ctx context.Context, input RegisterInput) (*UserProfile, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*UserProfile, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*UserProfile, error)

	GetSelf(ctx context.Context, userID string) (*UserProfile, error)
	UpdateSelf(ctx context.Context, userID string, input UpdateProfileInput) (*UserProfile, error)
}
