package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

// createAccount hashes the password and stores a new account with roles.
// The email is checked up front so duplicates fail before hashing.
func createAccount(ctx context.Context, repo ports.UserRepository, hasher ports.PasswordHasher, in ports.RegisterInput, roles ...string) (*domain.User, error) {
	if err := ensureEmailAvailable(ctx, repo, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        strings.TrimSpace(in.Email),
		Name:         in.Name,
		Age:          in.Age,
		Address:      in.Address,
		PasswordHash: hash,
		IsActive:     in.IsActive,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ensureEmailAvailable fails with domain.ErrEmailTaken when email belongs to
// an account other than ownerID, deleted accounts included.
func ensureEmailAvailable(ctx context.Context, repo ports.UserRepository, email, ownerID string) error {
	existing, err := repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case existing.ID != ownerID:
		return domain.ErrEmailTaken
	}
	return nil
}

func toProfile(u *domain.User) *ports.UserProfile {
	return &ports.UserProfile{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Age:      u.Age,
		Address:  u.Address,
		IsActive: u.IsActive,
	}
}
