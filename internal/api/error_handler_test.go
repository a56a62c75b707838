package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/api/handler"
	"github.com/usermgmt/account-service/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), jerr)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found."},
		{fmt.Errorf("create: %w", domain.ErrEmailTaken), http.StatusBadRequest, "This email address is already registered."},
		{domain.ErrUserNotDeleted, http.StatusBadRequest, "User is not deleted and cannot be restored."},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password. Please try again."},
		{domain.ErrAccountInactive, http.StatusUnauthorized, "Your account is inactive or deleted."},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "Authentication is required to access this resource."},
		{domain.ErrAccessInactive, http.StatusForbidden, "Access denied. Your account is inactive or deleted."},
		{domain.ErrAdminRequired, http.StatusForbidden, "Access denied. Only Admins are permitted to perform this action."},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts. Please try again later."},
		{errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred."},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
			if v, ok := body["data"]; !ok || v != nil {
				t.Fatalf("expected data null, got %v (present=%v)", v, ok)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	code, body := renderError(t, &handler.ValidationError{Fields: map[string]string{"email": "email is required"}})

	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["email"] != "email is required" {
		t.Fatalf("unexpected data: %+v", body["data"])
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusNotFound, "User with ID 42 was not found."))

	if code != http.StatusNotFound || body["message"] != "User with ID 42 was not found." {
		t.Fatalf("unexpected response %d %+v", code, body)
	}
}
