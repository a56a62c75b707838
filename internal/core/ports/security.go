package ports

import (
	"context"

	"github.com/usermgmt/account-service/internal/core/domain"
)

// PasswordHasher hashes and checks passwords. Verify must compare in
// constant time.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer signs tokens for verified accounts.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenAuthenticator turns a raw bearer token into a Caller. An empty token
// yields an anonymous Caller and no error.
type TokenAuthenticator interface {
	Authenticate(raw string) (domain.Caller, error)
}

// AccessGate decides whether an authenticated caller may proceed to a route
// declaring capability.
type AccessGate interface {
	Decide(ctx context.Context, caller domain.Caller, method string, capability domain.Capability) (domain.Decision, error)
}

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
