package models

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// MinPasswordLength is the registration / password-change floor.
const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginRequest carries the credentials for the login operation.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// RegisterRequest completes a registration started by requestPasscode: the
// passcode proves control of the email the account will be bound to.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Passcode string `json:"passcode"`
}

func (r *RegisterRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Passcode == "" {
		return fmt.Errorf("passcode is required")
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// RequestPasscodeRequest asks for a one-time recovery code by email.
type RequestPasscodeRequest struct {
	Email string `json:"email"`
}

func (r *RequestPasscodeRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ChangePasswordRequest swaps the credential's password after the passcode
// in the recovery cookie is matched.
type ChangePasswordRequest struct {
	Passcode    string `json:"passcode"`
	NewPassword string `json:"newPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	if r.Passcode == "" {
		return fmt.Errorf("passcode is required")
	}
	if utf8.RuneCountInString(r.NewPassword) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
