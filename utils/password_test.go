package utils

import (
	"errors"
	"testing"
)

func TestValidateSignUpPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		wantErr  error
	}{
		{"valid", "secret1", "secret1", nil},
		{"exactly six chars", "abcdef", "abcdef", nil},
		{"empty password", "", "secret1", ErrPasswordRequired},
		{"empty confirm", "secret1", "", ErrConfirmRequired},
		{"mismatch", "secret1", "secret2", ErrPasswordMismatch},
		{"too short", "abc", "abc", ErrPasswordTooShort},
		{"both empty", "", "", ErrPasswordRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignUpPassword(tt.password, tt.confirm)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
