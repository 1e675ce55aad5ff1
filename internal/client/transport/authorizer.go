// Package transport provides the authorizing request-pipeline stage:
// an http.RoundTripper that attaches the session credential to
// outgoing calls and reacts to the server's unauthorized signal.
package transport

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// TokenSource is the slice of the session store the authorizer needs:
// reading the credential and clearing it on forced logout.
type TokenSource interface {
	Token() string
	Clear() error
}

// defaultPublicPaths lists the endpoints that never carry a credential.
var defaultPublicPaths = []string{"/auth/login", "/auth/register"}

// Authorizer wraps a transport. Requests to public endpoints pass
// through unmodified. Any other request is cloned with a bearer
// authorization header when a credential is present. A 401 response
// clears the stored credential (forced logout) and is then propagated
// to the caller unchanged; the authorizer never swallows errors.
type Authorizer struct {
	next   http.RoundTripper
	tokens TokenSource
	public []string
	log    *zap.Logger
}

// NewAuthorizer builds an authorizer over next. A nil next falls back
// to http.DefaultTransport.
func NewAuthorizer(next http.RoundTripper, tokens TokenSource, log *zap.Logger) *Authorizer {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Authorizer{
		next:   next,
		tokens: tokens,
		public: defaultPublicPaths,
		log:    log,
	}
}

// RoundTrip implements http.RoundTripper.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	if a.isPublic(req.URL.Path) {
		return a.next.RoundTrip(req)
	}

	// Clone before mutating; RoundTrippers must not modify the
	// caller's request.
	if token := a.tokens.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		a.log.Info("unauthorized response, clearing session",
			zap.String("path", req.URL.Path))
		if clearErr := a.tokens.Clear(); clearErr != nil {
			a.log.Warn("failed to clear session", zap.Error(clearErr))
		}
	}
	return resp, nil
}

func (a *Authorizer) isPublic(path string) bool {
	for _, p := range a.public {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
