package ports

import (
	"context"

	"github.com/usermgmt/account-service/internal/core/domain"
)

// SortOrder controls how List orders accounts.
type SortOrder int

const (
	SortNone    SortOrder = iota // store order
	SortAgeAsc                   // age ascending
	SortAgeDesc                  // age descending
)

// ListUsersFilter carries the already-normalised list query. Deleted accounts
// are always excluded.
type ListUsersFilter struct {
	Search string // case-insensitive substring of name or email; empty = no filter
	Active *bool  // nil = no filter
	Sort   SortOrder
}

// UserRepository defines persistence operations for accounts.
// Email lookups are case-insensitive. Lookups return domain.ErrUserNotFound
// when nothing matches.
type UserRepository interface {
	// FindByEmail matches deleted accounts too.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID skips soft-deleted accounts unless includeDeleted is set.
	FindByID(ctx context.Context, id string, includeDeleted bool) (*domain.User, error)
	// Create assigns the ID. It returns domain.ErrEmailTaken on a duplicate.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update replaces the mutable fields of the account with user.ID.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
}
