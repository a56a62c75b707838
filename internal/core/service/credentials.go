package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

// dummyPassword is hashed once so unknown emails still pay for a comparison.
const dummyPassword = "not-a-real-password-0"

// CredentialVerifier checks an email and password against the stored account.
type CredentialVerifier struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	dummyHash string
}

func NewCredentialVerifier(repo ports.UserRepository, hasher ports.PasswordHasher) *CredentialVerifier {
	v := &CredentialVerifier{repo: repo, hasher: hasher}
	if h, err := hasher.Hash(dummyPassword); err == nil {
		v.dummyHash = h
	}
	return v
}

// Verify returns the account for a valid pair. Unknown emails and wrong
// passwords both yield domain.ErrInvalidCredentials; deactivated or deleted
// accounts yield domain.ErrAccountInactive before the password is checked.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := v.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if v.dummyHash != "" {
				_ = v.hasher.Verify(password, v.dummyHash)
			}
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	if !user.CanSignIn() {
		return nil, domain.ErrAccountInactive
	}

	if !v.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
