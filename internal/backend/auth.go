package backend

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/ordernest/storefront/internal/domain/user"
)

// AuthClient talks to the authentication backend.
type AuthClient struct {
	c *Client
}

// NewAuthClient creates an AuthClient over the shared client core.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// Login exchanges credentials for a bearer token. Backend generations have
// named the token field differently; the first non-empty of token, jwt, and
// accessToken wins.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("email")
	e.Str(email)
	e.FieldStart("password")
	e.Str(password)
	e.ObjEnd()

	body, err := a.c.post(ctx, "/api/auth/login", e.Bytes())
	if err != nil {
		return "", errors.Wrap(err, "login")
	}

	token, err := decodeLoginToken(body)
	if err != nil {
		return "", errors.Wrap(err, "decode login response")
	}
	if token == "" {
		return "", errors.New("missing token in login response")
	}
	return token, nil
}

// Register creates an account. Validation of r is the caller's concern; the
// backend's own rejection surfaces as an *APIError.
func (a *AuthClient) Register(ctx context.Context, r user.Registration) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("email")
	e.Str(r.Email)
	e.FieldStart("password")
	e.Str(r.Password)
	e.FieldStart("firstName")
	e.Str(r.FirstName)
	e.FieldStart("lastName")
	e.Str(r.LastName)
	e.ObjEnd()

	if _, err := a.c.post(ctx, "/api/auth/register", e.Bytes()); err != nil {
		return errors.Wrap(err, "register")
	}
	return nil
}

// Me fetches the current user's profile.
func (a *AuthClient) Me(ctx context.Context) (*user.Profile, error) {
	body, err := a.c.get(ctx, "/api/auth/me")
	if err != nil {
		return nil, errors.Wrap(err, "me")
	}

	p, err := user.DecodeProfile(jx.DecodeBytes(body))
	if err != nil {
		return nil, errors.Wrap(err, "decode profile")
	}
	return &p, nil
}

func decodeLoginToken(body []byte) (string, error) {
	var token, jwt, accessToken string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "token":
			token, err = d.Str()
		case "jwt":
			jwt, err = d.Str()
		case "accessToken":
			accessToken, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return "", err
	}

	switch {
	case token != "":
		return token, nil
	case jwt != "":
		return jwt, nil
	default:
		return accessToken, nil
	}
}
