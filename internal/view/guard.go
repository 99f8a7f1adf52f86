package view

import (
	"go.uber.org/zap"

	"github.com/ordernest/storefront/internal/backend"
	"github.com/ordernest/storefront/internal/session"
)

// Guard owns the two session policies shared by every protected view: the
// synchronous route gate, and the uniform teardown on an unauthorized
// response. Defining the 401/403 policy once here keeps it out of every
// call site.
type Guard struct {
	store    *session.Store
	lg       *zap.Logger
	redirect func()
}

// NewGuard creates a Guard. redirect is invoked after the credential has
// been cleared and must take the user to the login view.
func NewGuard(store *session.Store, lg *zap.Logger, redirect func()) *Guard {
	return &Guard{store: store, lg: lg, redirect: redirect}
}

// Allow evaluates the route gate: a protected view may render only while a
// credential is present. The check is local and synchronous; token validity
// is discovered lazily when a backend call fails.
func (g *Guard) Allow() bool {
	return g.store.Authenticated()
}

// Expire applies the unauthorized policy to err. When err is a 401/403 the
// credential is cleared, the user is redirected to login, and true is
// returned so the caller discards its in-flight state instead of surfacing
// an inline error. Any other error returns false untouched.
func (g *Guard) Expire(err error) bool {
	if !backend.IsUnauthorized(err) {
		return false
	}

	if cerr := g.store.Clear(); cerr != nil {
		g.lg.Warn("Clearing credential failed", zap.Error(cerr))
	}
	g.redirect()
	return true
}
