package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/service"
)

func newTokenService(t *testing.T) *service.TokenService {
	t.Helper()
	svc, err := service.NewTokenService(service.TokenConfig{
		Key:      "0123456789abcdef0123456789abcdef",
		Issuer:   "account-service",
		Audience: "account-clients",
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return svc
}

func runAuthenticate(t *testing.T, header string) domain.Caller {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got domain.Caller
	called := false
	mw := Authenticate(newTokenService(t), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		got = CallerFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	return got
}

func TestAuthenticate_ValidToken(t *testing.T) {
	token, err := newTokenService(t).Issue(&domain.User{
		ID:    "u1",
		Email: "alice@example.com",
		Roles: []string{domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	caller := runAuthenticate(t, "Bearer "+token)

	if !caller.Authenticated || caller.UserID != "u1" || caller.Email != "alice@example.com" {
		t.Fatalf("unexpected caller: %+v", caller)
	}
	if !caller.HasRole(domain.RoleAdmin) {
		t.Fatalf("admin role missing: %+v", caller.Roles)
	}
}

func TestAuthenticate_FallsBackToAnonymous(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"empty bearer":   "Bearer ",
		"garbage token":  "Bearer not-a-token",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			if caller := runAuthenticate(t, header); caller.Authenticated {
				t.Fatalf("expected anonymous caller, got %+v", caller)
			}
		})
	}
}

func TestCallerFrom_EmptyContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if caller := CallerFrom(c); caller.Authenticated {
		t.Fatalf("expected anonymous caller")
	}
}
