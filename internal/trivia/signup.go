package trivia

import (
	"fmt"
	"regexp"
	"unicode"
)

const (
	minUsernameLen = 5
	minPasswordLen = 8
)

var (
	ShortUsernameErr = fmt.Errorf("Username is too short.")
	WeakPasswordErr  = fmt.Errorf("Password isn't strong enough!")
	IllegalEmailErr  = fmt.Errorf("Invalid email address.")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.]+@[a-zA-Z.]+\.[a-zA-Z]{2,4}$`)

// ValidateSignup checks the signup fields before any account is created.
// The returned sentinel doubles as the message sent back to the client.
func ValidateSignup(username, password, email string) error {
	if len(username) < minUsernameLen {
		return ShortUsernameErr
	}

	if !strongPassword(password) {
		return WeakPasswordErr
	}

	if !emailPattern.MatchString(email) {
		return IllegalEmailErr
	}

	return nil
}

// A strong password carries a lowercase, an uppercase, a digit and a
// special character, and is at least eight characters long.
func strongPassword(password string) bool {
	if len(password) < minPasswordLen {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	return lower && upper && digit && special
}
