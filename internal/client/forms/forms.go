// Package forms validates login and registration input before it is sent
// to the server. Messages match the ones the server produces so the user
// sees the same text whichever side rejects the input.
package forms

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/talksy/internal/common"
)

// Field names used as FieldErrors keys.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldConfirm  = "confirmPassword"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 40
)

// FieldErrors maps a field name to its first validation problem.
// An empty map means the form is valid.
type FieldErrors map[string]string

// Valid reports whether no field has an error.
func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

// LoginForm is the input of the login screen.
type LoginForm struct {
	Email      string
	Password   string
	RememberMe bool
}

// Validate checks email and password.
func (f LoginForm) Validate() FieldErrors {
	fe := FieldErrors{}
	checkEmail(fe, f.Email)
	switch {
	case f.Password == "":
		fe[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(f.Password) < common.MinPasswordLength:
		fe[FieldPassword] = "Password must be at least 6 characters"
	}
	return fe
}

// RegisterForm is the input of the registration screen.
type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks every field and that both passwords match.
func (f RegisterForm) Validate() FieldErrors {
	fe := FieldErrors{}

	n := utf8.RuneCountInString(strings.TrimSpace(f.Username))
	switch {
	case n == 0:
		fe[FieldUsername] = "Username is required"
	case n < minUsernameLength || n > maxUsernameLength:
		fe[FieldUsername] = "Username must be between 3 and 40 characters"
	}

	checkEmail(fe, f.Email)

	switch {
	case f.Password == "":
		fe[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(f.Password) < common.MinPasswordLength:
		fe[FieldPassword] = "Password must be at least 6 characters"
	}

	if f.ConfirmPassword != f.Password {
		fe[FieldConfirm] = "Passwords do not match"
	}
	return fe
}

func checkEmail(fe FieldErrors, email string) {
	if email == "" {
		fe[FieldEmail] = "Email is required"
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		fe[FieldEmail] = "Email is invalid"
	}
}
