package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	order   []string // insertion order, mirrors natural store order
	nextID  int
	findErr error // if set, every lookup returns this error
	lookups int   // FindByID calls
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = slices.Clone(u.Roles)
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, id := range r.order {
		u := r.users[id]
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string, includeDeleted bool) (*domain.User, error) {
	r.lookups++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok || (u.IsDeleted && !includeDeleted) {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[created.ID] = created
	r.order = append(r.order, created.ID)
	return cloneUser(created), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	var out []*domain.User
	search := strings.ToLower(f.Search)
	for _, id := range r.order {
		u := r.users[id]
		if u.IsDeleted {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if f.Active != nil && u.IsActive != *f.Active {
			continue
		}
		out = append(out, cloneUser(u))
	}
	switch f.Sort {
	case ports.SortAgeAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Age < out[j].Age })
	case ports.SortAgeDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Age > out[j].Age })
	}
	return out, nil
}

// seed stores u directly, bypassing the service.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	r.nextID++
	u.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[u.ID] = cloneUser(u)
	r.order = append(r.order, u.ID)
	return u
}

// ---------------------------------------------------------------------------
// Stub hasher and limiter
// ---------------------------------------------------------------------------

// stubHasher is reversible on purpose; bcrypt is covered by the password package.
type stubHasher struct {
	verifyCalls int
}

func (h *stubHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (h *stubHasher) Verify(plain, digest string) bool {
	h.verifyCalls++
	return digest == "hashed:"+plain
}

type stubLimiter struct {
	failures map[string]int
	max      int
	err      error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), max: max}
}

func (l *stubLimiter) Blocked(_ context.Context, email string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.failures[email] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	delete(l.failures, email)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	discardLogger = zerolog.Nop()
	errStoreDown  = errors.New("store unavailable")
)

func seedAccount(repo *stubUserRepo, email string, active, deleted bool, roles ...string) *domain.User {
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}
	return repo.seed(&domain.User{
		Email:        email,
		Name:         "Name of " + email,
		Age:          30,
		Address:      "Street 1",
		PasswordHash: "hashed:pw123456",
		IsActive:     active,
		IsDeleted:    deleted,
		Roles:        roles,
	})
}
