package domain

import (
	"slices"
	"time"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User models an account. Accounts are never physically removed; IsDeleted
// marks a soft delete that Restore can undo.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsDeleted    bool      `json:"is_deleted"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user currently holds role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// CanSignIn is false for deleted or deactivated accounts.
func (u *User) CanSignIn() bool {
	return u.IsActive && !u.IsDeleted
}

// Caller is the identity resolved from a bearer token for a single request.
// The zero value is an anonymous caller.
type Caller struct {
	UserID        string
	Email         string
	Roles         []string
	Authenticated bool
}

func (c Caller) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}
