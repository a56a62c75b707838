package handler

import (
	"errors"
	"testing"
)

func TestValidPassword(t *testing.T) {
	v := NewValidator()
	type form struct {
		Password string `json:"password" validate:"password"`
	}

	cases := map[string]bool{
		"secret1":     true,
		"Admin@12345": true,
		"abc12":       false, // too short
		"abcdefg":     false, // no digit
		"ABCDEF1":     false, // no lowercase
	}
	for pw, ok := range cases {
		err := v.Validate(form{Password: pw})
		if ok && err != nil {
			t.Errorf("%q: unexpected error %v", pw, err)
		}
		if !ok {
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Fields["password"] == "" {
				t.Errorf("%q: expected password field error, got %v", pw, err)
			}
		}
	}
}

func TestValidator_UsesJSONNames(t *testing.T) {
	type form struct {
		IsActive string `json:"isActive" validate:"required"`
	}

	err := NewValidator().Validate(form{})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["isActive"] != "isActive is required" {
		t.Fatalf("unexpected fields: %+v", ve.Fields)
	}
}
