package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

// AccessGate restricts authenticated callers based on the live state of their
// account. Token claims are a snapshot, so activity and roles are always
// re-read from the store.
type AccessGate struct {
	repo        ports.UserRepository
	denyUnknown bool
	log         zerolog.Logger
}

// NewAccessGate returns a gate. With denyUnknown set, a valid token whose
// account no longer exists is denied instead of passed to the handler.
func NewAccessGate(repo ports.UserRepository, denyUnknown bool, log zerolog.Logger) *AccessGate {
	return &AccessGate{repo: repo, denyUnknown: denyUnknown, log: log}
}

// Decide applies, in order: anonymous callers pass; deleted or inactive
// accounts are denied; admins pass; GET passes; PUT on a self route passes;
// everything else needs an admin.
func (g *AccessGate) Decide(ctx context.Context, caller domain.Caller, method string, capability domain.Capability) (domain.Decision, error) {
	if !caller.Authenticated {
		return domain.Allow(), nil
	}

	user, err := g.repo.FindByID(ctx, caller.UserID, true)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			g.log.Debug().Str("user_id", caller.UserID).Msg("gate: caller account not found")
			if g.denyUnknown {
				return domain.Deny(domain.ErrAccessInactive), nil
			}
			return domain.Allow(), nil
		}
		return domain.Decision{}, fmt.Errorf("access gate: load caller: %w", err)
	}

	if !user.CanSignIn() {
		return domain.Deny(domain.ErrAccessInactive), nil
	}

	if user.HasRole(domain.RoleAdmin) {
		return domain.Allow(), nil
	}

	if method == http.MethodGet {
		return domain.Allow(), nil
	}

	if method == http.MethodPut && capability == domain.CapabilitySelf {
		return domain.Allow(), nil
	}

	return domain.Deny(domain.ErrAdminRequired), nil
}
