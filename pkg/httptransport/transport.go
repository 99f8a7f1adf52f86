// Package httptransport provides composable http.RoundTripper middleware for
// outgoing requests: bearer credential injection, request IDs, and request
// logging. It is the client-side counterpart of a server middleware stack,
// so cross-cutting request behavior is defined once and shared by every
// backend client.
package httptransport

import "net/http"

// Middleware wraps an http.RoundTripper with additional behavior.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Wrap applies middlewares to base so that the first middleware is the
// outermost: Wrap(base, a, b) runs a, then b, then base.
func Wrap(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}
