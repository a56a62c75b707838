package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

// List returns non-deleted accounts matching input.
func (s *UserService) List(ctx context.Context, input ports.ListUsersInput) ([]ports.UserProfile, error) {
	users, err := s.repo.List(ctx, listFilter(input))
	if err != nil {
		return nil, err
	}

	out := make([]ports.UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, *toProfile(u))
	}
	return out, nil
}

// listFilter maps the raw query onto a store filter. Any status other than
// "active" selects inactive accounts and any sort other than "age_asc" sorts
// by age descending.
func listFilter(input ports.ListUsersInput) ports.ListUsersFilter {
	f := ports.ListUsersFilter{Search: input.Search}
	if input.Status != "" {
		active := strings.ToLower(input.Status) == "active"
		f.Active = &active
	}
	if input.Sort != "" {
		f.Sort = ports.SortAgeDesc
		if strings.ToLower(input.Sort) == "age_asc" {
			f.Sort = ports.SortAgeAsc
		}
	}
	return f
}

func (s *UserService) Get(ctx context.Context, id string) (*ports.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// Create is the admin variant of registration. New accounts get the User role.
func (s *UserService) Create(ctx context.Context, input ports.RegisterInput) (*ports.UserProfile, error) {
	user, err := createAccount(ctx, s.repo, s.hasher, input, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("account created by admin")
	return toProfile(user), nil
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*ports.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := ensureEmailAvailable(ctx, s.repo, input.Email, user.ID); err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Age = input.Age
	user.Address = input.Address
	user.Email = strings.TrimSpace(input.Email)
	user.IsActive = input.IsActive

	return s.save(ctx, user)
}

// Delete soft-deletes an account. Already deleted accounts are not found.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return err
	}

	user.IsDeleted = true
	if _, err := s.save(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("account soft-deleted")
	return nil
}

// Restore undoes a soft delete. It fails with domain.ErrUserNotDeleted when
// the account is live.
func (s *UserService) Restore(ctx context.Context, id string) (*ports.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !user.IsDeleted {
		return nil, domain.ErrUserNotDeleted
	}

	user.IsDeleted = false
	profile, err := s.save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("account restored")
	return profile, nil
}

func (s *UserService) GetSelf(ctx context.Context, userID string) (*ports.UserProfile, error) {
	return s.Get(ctx, userID)
}

// UpdateSelf changes the caller's own profile. Roles and the activity flag
// are left untouched.
func (s *UserService) UpdateSelf(ctx context.Context, userID string, input ports.UpdateProfileInput) (*ports.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if err := ensureEmailAvailable(ctx, s.repo, input.Email, user.ID); err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Age = input.Age
	user.Address = input.Address
	user.Email = strings.TrimSpace(input.Email)

	return s.save(ctx, user)
}

func (s *UserService) save(ctx context.Context, user *domain.User) (*ports.UserProfile, error) {
	user.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update account")
		return nil, err
	}
	return toProfile(updated), nil
}
