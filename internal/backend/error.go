package backend

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// APIError is an HTTP-level failure from a backend. Message holds the
// human-readable text derived from the error body and may be empty when the
// body carried none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the failure means the session is invalid.
// 401 and 403 are treated uniformly: clear the credential, drop in-flight
// view state, return to the login view.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsUnauthorized reports whether err (anywhere in its chain) is an APIError
// with an unauthorized/forbidden status.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// Reason derives the message to show the user for err: the backend-provided
// message when there is one, otherwise the caller's generic fallback. Network
// failures and empty error bodies both land on the fallback.
func Reason(err error, generic string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return generic
}

// errorMessage extracts the display message from a JSON error body,
// preferring "message" over "error". Non-JSON bodies yield an empty string;
// the caller substitutes its generic text.
func errorMessage(body []byte) string {
	var message, errField string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "message":
			v, err := d.Str()
			if err != nil {
				return err
			}
			message = v
		case "error":
			v, err := d.Str()
			if err != nil {
				return err
			}
			errField = v
		default:
			return d.Skip()
		}
		return nil
	}); err != nil {
		return ""
	}

	if message != "" {
		return message
	}
	return errField
}
