package validate

import (
	"testing"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/types"
)

func TestStructFieldMap(t *testing.T) {
	t.Parallel()

	err := Struct(types.Registration{FirstName: "Ayse", Password: "short"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}

	fields := typed.FieldErrors()
	if fields["lastName"] != "is required" {
		t.Fatalf("unexpected lastName message: %q", fields["lastName"])
	}
	if fields["email"] != "is required" {
		t.Fatalf("unexpected email message: %q", fields["email"])
	}
	if fields["password"] != "must be at least 6" {
		t.Fatalf("unexpected password message: %q", fields["password"])
	}
	if _, ok := fields["firstName"]; ok {
		t.Fatal("firstName should not carry an error")
	}
}

func TestStructValid(t *testing.T) {
	t.Parallel()

	err := Struct(types.Credentials{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructBadEmail(t *testing.T) {
	t.Parallel()

	err := Struct(types.ProfileForm{FirstName: "A", LastName: "B", Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := pkgerrors.As(err).FieldErrors()
	if fields["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message: %q", fields["email"])
	}
}
