package httptransport

import "net/http"

// TokenSource yields the current bearer credential. ok is false when no
// credential is stored, in which case the request goes out without an
// Authorization header and the server is responsible for rejecting it.
type TokenSource interface {
	Token() (token string, ok bool)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func() (string, bool)

func (f TokenSourceFunc) Token() (string, bool) { return f() }

// BearerAuth returns a middleware that attaches "Authorization: Bearer
// <token>" to every outgoing request for which src yields a credential. The
// token is re-read per request, so a login or logout between requests takes
// effect immediately.
func BearerAuth(src TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token, ok := src.Token()
			if !ok || token == "" {
				return next.RoundTrip(r)
			}

			// Per RoundTripper contract the request must not be mutated.
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(r)
		})
	}
}
