package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// Validation failures return before any repository access, so a
// zero-value service is enough for these tests.

func TestUserService_Register_Validation(t *testing.T) {
	svc := &UserService{}

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "empty_email",
			input:   RegisterInput{Email: "", Password: "goodpass"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "malformed_email",
			input:   RegisterInput{Email: "not-an-email", Password: "goodpass"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "password_too_short",
			input:   RegisterInput{Email: "user@example.com", Password: "pw"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "four_char_password",
			input:   RegisterInput{Email: "user@example.com", Password: "1234"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name: "name_too_long",
			input: RegisterInput{
				Email:    "user@example.com",
				Password: "goodpass",
				Name:     strings.Repeat("x", 256),
			},
			wantErr: ErrNameTooLong,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}
