// Package user holds the display-only profile fetched from the auth backend
// and the registration form with its pre-submit validation.
package user

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Profile is the current user's identity as reported by the auth backend.
// It is fetched for display alongside an order and never edited here.
type Profile struct {
	Email     string
	FirstName string
	LastName  string
}

// FullName joins the non-empty name parts, falling back to "-" when both
// are absent.
func (p Profile) FullName() string {
	parts := make([]string, 0, 2)
	if p.FirstName != "" {
		parts = append(parts, p.FirstName)
	}
	if p.LastName != "" {
		parts = append(parts, p.LastName)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// DecodeProfile reads a profile object from d.
func DecodeProfile(d *jx.Decoder) (Profile, error) {
	var p Profile
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "email":
			p.Email, err = d.Str()
		case "firstName":
			p.FirstName, err = d.Str()
		case "lastName":
			p.LastName, err = d.Str()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	}); err != nil {
		return Profile{}, errors.Wrap(err, "decode profile")
	}
	return p, nil
}
