package user

import (
	"regexp"
	"strings"
)

// Registration field names used as keys in the validation error map.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPassword  = "password"
)

var (
	emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)
	hasLetter  = regexp.MustCompile(`[A-Za-z]`)
	hasDigit   = regexp.MustCompile(`\d`)
	hasSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Registration is the sign-up form submitted to the auth backend.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Validate runs the client-side pre-submit checks and returns a message per
// offending field. Multiple fields can fail at once; an empty map means the
// form may be submitted. Validation is purely local and never touches the
// network.
func (r Registration) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.FirstName) == "" {
		errs[FieldFirstName] = "First name is required."
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs[FieldLastName] = "Last name is required."
	}

	switch {
	case strings.TrimSpace(r.Email) == "":
		errs[FieldEmail] = "Email is required."
	case !emailShape.MatchString(r.Email):
		errs[FieldEmail] = "Enter a valid email."
	}

	switch {
	case r.Password == "":
		errs[FieldPassword] = "Password is required."
	case len(r.Password) < 8 ||
		!hasLetter.MatchString(r.Password) ||
		!hasDigit.MatchString(r.Password) ||
		!hasSpecial.MatchString(r.Password):
		errs[FieldPassword] = "Password must be at least 8 characters and include a letter, number, and special character."
	}

	return errs
}
