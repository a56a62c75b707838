package service

import (
	"context"
	"errors"
	"testing"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

func newTestUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, &stubHasher{}, discardLogger)
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestListFilter(t *testing.T) {
	active, inactive := true, false
	cases := []struct {
		name   string
		input  ports.ListUsersInput
		active *bool
		sort   ports.SortOrder
	}{
		{"empty", ports.ListUsersInput{}, nil, ports.SortNone},
		{"active", ports.ListUsersInput{Status: "active"}, &active, ports.SortNone},
		{"active mixed case", ports.ListUsersInput{Status: "AcTiVe"}, &active, ports.SortNone},
		{"inactive", ports.ListUsersInput{Status: "inactive"}, &inactive, ports.SortNone},
		{"unknown status falls to inactive", ports.ListUsersInput{Status: "banana"}, &inactive, ports.SortNone},
		{"age_asc", ports.ListUsersInput{Sort: "AGE_ASC"}, nil, ports.SortAgeAsc},
		{"age_desc", ports.ListUsersInput{Sort: "age_desc"}, nil, ports.SortAgeDesc},
		{"unknown sort falls to desc", ports.ListUsersInput{Sort: "name"}, nil, ports.SortAgeDesc},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := listFilter(tc.input)
			switch {
			case tc.active == nil && f.Active != nil:
				t.Errorf("expected no status filter, got %v", *f.Active)
			case tc.active != nil && (f.Active == nil || *f.Active != *tc.active):
				t.Errorf("status filter = %v, want %v", f.Active, *tc.active)
			}
			if f.Sort != tc.sort {
				t.Errorf("sort = %v, want %v", f.Sort, tc.sort)
			}
		})
	}
}

func TestUserService_List_StatusAndSearch(t *testing.T) {
	repo := newStubUserRepo()
	seedAccount(repo, "a@x.com", true, false)
	seedAccount(repo, "b@y.com", false, false)
	seedAccount(repo, "deleted@x.com", true, true)
	svc := newTestUserService(repo)

	got, err := svc.List(context.Background(), ports.ListUsersInput{Status: "active"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Email != "a@x.com" {
		t.Fatalf("status=active returned %+v", got)
	}

	got, _ = svc.List(context.Background(), ports.ListUsersInput{Search: "A@X"})
	if len(got) != 1 || got[0].Email != "a@x.com" {
		t.Fatalf("search A@X returned %+v", got)
	}

	got, _ = svc.List(context.Background(), ports.ListUsersInput{})
	if len(got) != 2 {
		t.Fatalf("deleted accounts must be excluded, got %d", len(got))
	}
}

func TestUserService_List_SortByAge(t *testing.T) {
	repo := newStubUserRepo()
	for i, age := range []int{40, 20, 30} {
		u := seedAccount(repo, string(rune('a'+i))+"@x.com", true, false)
		u.Age = age
		repo.users[u.ID].Age = age
	}
	svc := newTestUserService(repo)

	asc, _ := svc.List(context.Background(), ports.ListUsersInput{Sort: "age_asc"})
	if asc[0].Age != 20 || asc[2].Age != 40 {
		t.Errorf("age_asc order wrong: %+v", asc)
	}

	desc, _ := svc.List(context.Background(), ports.ListUsersInput{Sort: "whatever"})
	if desc[0].Age != 40 || desc[2].Age != 20 {
		t.Errorf("fallback order must be descending: %+v", desc)
	}
}

// ---------------------------------------------------------------------------
// Get / Create / Update
// ---------------------------------------------------------------------------

func TestUserService_Get_ExcludesDeleted(t *testing.T) {
	repo := newStubUserRepo()
	live := seedAccount(repo, "live@x.com", true, false)
	gone := seedAccount(repo, "gone@x.com", true, true)
	svc := newTestUserService(repo)

	if p, err := svc.Get(context.Background(), live.ID); err != nil || p.Email != "live@x.com" {
		t.Fatalf("Get live: %+v, %v", p, err)
	}
	if _, err := svc.Get(context.Background(), gone.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for deleted account, got %v", err)
	}
	if _, err := svc.GetSelf(context.Background(), gone.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("GetSelf on deleted account: expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Create_AssignsUserRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	p, err := svc.Create(context.Background(), registerInput("new@x.com", "pw123456"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stored := repo.users[p.ID]
	if len(stored.Roles) != 1 || stored.Roles[0] != domain.RoleUser {
		t.Errorf("roles = %v", stored.Roles)
	}

	if _, err := svc.Create(context.Background(), registerInput("NEW@x.com", "pw123456")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Update_Admin(t *testing.T) {
	repo := newStubUserRepo()
	u := seedAccount(repo, "a@x.com", true, false)
	svc := newTestUserService(repo)

	p, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{
		Name: "Renamed", Email: "renamed@x.com", Age: 41, Address: "Elm St", IsActive: false,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Name != "Renamed" || p.Email != "renamed@x.com" || p.Age != 41 || p.Address != "Elm St" || p.IsActive {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestUserService_Update_EmailTaken(t *testing.T) {
	repo := newStubUserRepo()
	u := seedAccount(repo, "a@x.com", true, false)
	seedAccount(repo, "b@x.com", true, false)
	svc := newTestUserService(repo)

	_, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Name: "A", Email: "B@x.com", Age: 20, Address: "x", IsActive: true})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Keeping one's own email in a different case is not a conflict.
	if _, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Name: "A", Email: "A@X.com", Age: 20, Address: "x", IsActive: true}); err != nil {
		t.Fatalf("own email rejected: %v", err)
	}
}

func TestUserService_UpdateSelf_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	u := seedAccount(repo, "a@x.com", true, false, domain.RoleUser)
	svc := newTestUserService(repo)

	in := ports.UpdateProfileInput{Name: "Alice B", Email: "alice.b@x.com", Age: 33, Address: "New Road 5"}
	if _, err := svc.UpdateSelf(context.Background(), u.ID, in); err != nil {
		t.Fatalf("UpdateSelf: %v", err)
	}

	got, err := svc.GetSelf(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetSelf: %v", err)
	}
	if got.Name != in.Name || got.Email != in.Email || got.Age != in.Age || got.Address != in.Address {
		t.Errorf("profile not updated: %+v", got)
	}
	if !got.IsActive {
		t.Error("UpdateSelf must not change the activity flag")
	}
	stored := repo.users[u.ID]
	if len(stored.Roles) != 1 || stored.Roles[0] != domain.RoleUser {
		t.Errorf("UpdateSelf must not change roles: %v", stored.Roles)
	}
}

func TestUserService_UpdateSelf_Deleted(t *testing.T) {
	repo := newStubUserRepo()
	u := seedAccount(repo, "a@x.com", true, true)
	svc := newTestUserService(repo)

	_, err := svc.UpdateSelf(context.Background(), u.ID, ports.UpdateProfileInput{Name: "x", Email: "a@x.com", Age: 1, Address: "y"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete / Restore
// ---------------------------------------------------------------------------

func TestUserService_DeleteThenRestore(t *testing.T) {
	repo := newStubUserRepo()
	u := seedAccount(repo, "a@x.com", true, false)
	before := *repo.users[u.ID]
	svc := newTestUserService(repo)

	if err := svc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !repo.users[u.ID].IsDeleted {
		t.Fatal("Delete must set IsDeleted")
	}
	if err := svc.Delete(context.Background(), u.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second Delete: expected ErrUserNotFound, got %v", err)
	}

	p, err := svc.Restore(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	after := repo.users[u.ID]
	if after.IsDeleted {
		t.Fatal("Restore must clear IsDeleted")
	}
	if after.Email != before.Email || after.Name != before.Name || after.Age != before.Age ||
		after.Address != before.Address || after.IsActive != before.IsActive ||
		after.PasswordHash != before.PasswordHash || len(after.Roles) != len(before.Roles) {
		t.Errorf("restore changed other fields: before %+v after %+v", before, *after)
	}
	if p.ID != u.ID {
		t.Errorf("restore returned %q", p.ID)
	}
}

func TestUserService_Restore_NotDeleted(t *testing.T) {
	repo := newStubUserRepo()
	u := seedAccount(repo, "a@x.com", true, false)
	svc := newTestUserService(repo)

	if _, err := svc.Restore(context.Background(), u.ID); !errors.Is(err, domain.ErrUserNotDeleted) {
		t.Fatalf("expected ErrUserNotDeleted, got %v", err)
	}
	if _, err := svc.Restore(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
