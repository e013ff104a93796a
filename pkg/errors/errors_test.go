package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsFindsTypedError(t *testing.T) {
	t.Parallel()

	base := New(CodeNotFound, "product missing")
	wrapped := fmt.Errorf("loading detail: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
}

func TestAsNilForPlainError(t *testing.T) {
	t.Parallel()

	if typed := As(stdErrors.New("boom")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
}

func TestCodeForStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   Code
	}{
		{http.StatusBadRequest, CodeValidation},
		{http.StatusUnauthorized, CodeUnauthorized},
		{http.StatusForbidden, CodeForbidden},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusConflict, CodeConflict},
		{http.StatusTooManyRequests, CodeRateLimit},
		{http.StatusBadGateway, CodeDependency},
		{http.StatusTeapot, CodeInternal},
	}
	for _, tc := range cases {
		if got := CodeForStatus(tc.status); got != tc.want {
			t.Fatalf("status %d: got %s want %s", tc.status, got, tc.want)
		}
	}
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{
		"email": "must be a valid email",
	})
	fields := err.FieldErrors()
	if fields == nil || fields["email"] != "must be a valid email" {
		t.Fatalf("unexpected field errors: %v", fields)
	}

	plain := New(CodeValidation, "validation failed").WithDetails("not a map")
	if plain.FieldErrors() != nil {
		t.Fatal("expected nil field errors for non-map details")
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	if got := PublicMessage(New(CodeConflict, "order already paid")); got != "order already paid" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := PublicMessage(New(CodeUnauthorized, "")); got != "authentication required" {
		t.Fatalf("unexpected fallback: %q", got)
	}
	if got := PublicMessage(stdErrors.New("raw")); got != "internal server error" {
		t.Fatalf("unexpected untyped fallback: %q", got)
	}
}
