// Package guard implements the route guards consulted before entering
// a protected view. Guards are pure decisions over current session
// state plus the attempted path; they never call the network.
package guard

import (
	"net/url"

	"github.com/elikia/elikia-client/internal/models"
)

// Session is the read-only slice of session state guards consult.
type Session interface {
	IsAuthenticated() bool
	Role() models.Role
}

// Decision is the outcome of a guard: either entry is allowed, or the
// caller must redirect to RedirectTo with the given query.
type Decision struct {
	Allowed    bool
	RedirectTo string
	Query      url.Values
}

// allow is the positive decision.
var allow = Decision{Allowed: true}

// toLogin denies entry and redirects to the login view, carrying the
// attempted path so the user lands back there after authenticating.
func toLogin(attempted string) Decision {
	return Decision{
		RedirectTo: "/login",
		Query:      url.Values{"returnUrl": {attempted}},
	}
}

// RequireAuthenticated allows entry iff a credential is stored.
func RequireAuthenticated(s Session, attempted string) Decision {
	if !s.IsAuthenticated() {
		return toLogin(attempted)
	}
	return allow
}

// RequireAdmin allows entry iff a credential is stored and the cached
// role is ADMIN. Unauthenticated users go to login with a return path,
// authenticated non-admins go home.
func RequireAdmin(s Session, attempted string) Decision {
	if !s.IsAuthenticated() {
		return toLogin(attempted)
	}
	if s.Role() != models.RoleAdmin {
		return Decision{RedirectTo: "/"}
	}
	return allow
}
