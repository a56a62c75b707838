package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/usermgmt/account-service/internal/core/domain"
)

const (
	// TokenLifetime is fixed; tokens are never renewed or revoked server-side.
	TokenLifetime = 2 * time.Hour
	// MinKeyLength is the shortest HS256 key accepted, in bytes.
	MinKeyLength = 32
)

// Claims is the payload of an access token.
type Claims struct {
	UserID string     `json:"nameid"`
	Email  string     `json:"email"`
	Roles  RoleClaims `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// RoleClaims encodes a single role as a plain string and several as an
// array. Both forms are accepted when parsing.
type RoleClaims []string

func (r RoleClaims) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	return json.Marshal([]string(r))
}

func (r *RoleClaims) UnmarshalJSON(data []byte) error {
	var s jwt.ClaimStrings
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	*r = RoleClaims(s)
	return nil
}

// TokenConfig holds the signing settings. All fields are required.
type TokenConfig struct {
	Key      string
	Issuer   string
	Audience string
}

// TokenService issues and validates HS256 access tokens. It keeps no state
// besides its configuration and is safe for concurrent use.
type TokenService struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Key) < MinKeyLength {
		return nil, fmt.Errorf("token service: signing key must be at least %d bytes", MinKeyLength)
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("token service: issuer and audience are required")
	}
	return &TokenService{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Issue signs a token for user carrying one role entry per role held.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  RoleClaims(slices.Clone(user.Roles)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate validates signature, issuer, audience and expiry of raw and
// returns the caller it describes. An empty raw token is an anonymous caller.
func (s *TokenService) Authenticate(raw string) (domain.Caller, error) {
	if raw == "" {
		return domain.Caller{}, nil
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return domain.Caller{}, fmt.Errorf("%w: missing user id", domain.ErrInvalidToken)
	}

	return domain.Caller{
		UserID:        claims.UserID,
		Email:         claims.Email,
		Roles:         []string(claims.Roles),
		Authenticated: true,
	}, nil
}
