package lib

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required,max=10"`
	Email string `json:"email" validate:"required,email"`
}

func TestExtractAndValidateBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"anna","email":"anna@example.com"}`))

		body, err := ExtractAndValidateBody[samplePayload](r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body.Name != "anna" || body.Email != "anna@example.com" {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

		if _, err := ExtractAndValidateBody[samplePayload](r); err == nil {
			t.Fatal("expected error for malformed json")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"anna","email":"anna@example.com","evil":true}`))

		if _, err := ExtractAndValidateBody[samplePayload](r); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("validation failure yields field errors", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"","email":"not-an-email"}`))

		_, err := ExtractAndValidateBody[samplePayload](r)
		if err == nil {
			t.Fatal("expected validation error")
		}

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		if len(ve.Errors) != 2 {
			t.Errorf("expected 2 field errors, got %d: %+v", len(ve.Errors), ve.Errors)
		}
	})
}
