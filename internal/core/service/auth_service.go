package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

// SeedAdmin describes the bootstrap administrator.
type SeedAdmin struct {
	Email    string
	Password string
}

// AuthService implements registration, login and the admin bootstrap.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	verifier *CredentialVerifier
	tokens   ports.TokenIssuer
	limiter  ports.LoginLimiter
	log      zerolog.Logger
}

// NewAuthService wires the service. limiter may be nil to disable login
// throttling.
func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	limiter ports.LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		verifier: NewCredentialVerifier(repo, hasher),
		tokens:   tokens,
		limiter:  limiter,
		log:      log,
	}
}

// Register creates a self-service account. The role is always User.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	user, err := createAccount(ctx, s.repo, s.hasher, in, domain.RoleUser)
	if err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Msg("account registered")
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter check failed, continuing")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) && s.limiter != nil {
			if lerr := s.limiter.RecordFailure(ctx, key); lerr != nil {
				s.log.Warn().Err(lerr).Msg("failed to record login failure")
			}
		}
		return "", err
	}

	if s.limiter != nil {
		if lerr := s.limiter.Reset(ctx, key); lerr != nil {
			s.log.Warn().Err(lerr).Msg("failed to reset login failures")
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

// EnsureAdmin creates the bootstrap administrator unless an account with its
// email already exists. This is the only path that grants the Admin role.
func (s *AuthService) EnsureAdmin(ctx context.Context, seed SeedAdmin) error {
	_, err := s.repo.FindByEmail(ctx, seed.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	user, err := createAccount(ctx, s.repo, s.hasher, ports.RegisterInput{
		Name:     "Administrator",
		Email:    seed.Email,
		Password: seed.Password,
		Age:      30,
		Address:  "Admin HQ",
		IsActive: true,
	}, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin account seeded")
	return nil
}
