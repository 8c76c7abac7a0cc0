package utils

import "errors"

var (
	ErrPasswordRequired = errors.New("please enter a password")
	ErrConfirmRequired  = errors.New("please confirm your password")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// ValidateSignUpPassword applies the sign-up form rules: both fields
// present, matching, and at least 6 characters.
func ValidateSignUpPassword(password, confirm string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if confirm == "" {
		return ErrConfirmRequired
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}
