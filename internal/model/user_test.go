package model

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"uppercase_domain", "testuser@GMAIL.com", "testuser@gmail.com"},
		{"already_normalized", "testuser@gmail.com", "testuser@gmail.com"},
		{"local_part_kept", "TestUser@Example.COM", "TestUser@example.com"},
		{"surrounding_space", "  user@example.com ", "user@example.com"},
		{"no_at_sign", "not-an-email", "not-an-email"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := NormalizeEmail(test.email)
			if got != test.want {
				t.Fatalf("NormalizeEmail(%q) = %q, want %q", test.email, got, test.want)
			}
		})
	}
}

func TestNormalizeEmail_Idempotent(t *testing.T) {
	once := NormalizeEmail("Someone@EXAMPLE.org")
	twice := NormalizeEmail(once)
	if once != twice {
		t.Fatalf("normalization not idempotent: %q vs %q", once, twice)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"empty", "", ErrEmailEmpty},
		{"whitespace_only", "   ", ErrEmailEmpty},
		{"missing_at", "userexample.com", ErrEmailInvalid},
		{"missing_domain_dot", "user@localhost", ErrEmailInvalid},
		{"embedded_space", "user name@example.com", ErrEmailInvalid},
		{"valid", "user@example.com", nil},
		{"valid_subdomain", "user@mail.example.co.uk", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateEmail(test.email)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("ValidateEmail(%q) = %v, want %v", test.email, err, test.wantErr)
			}
		})
	}
}
