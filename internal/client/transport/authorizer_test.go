package transport

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTokens implements TokenSource for testing.
type fakeTokens struct {
	token   string
	cleared bool
}

func (f *fakeTokens) Token() string { return f.token }
func (f *fakeTokens) Clear() error {
	f.token = ""
	f.cleared = true
	return nil
}

// rtFunc adapts a function to http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func response(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(""))}
}

func TestRoundTrip_PublicEndpointPassthrough(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	var seen *http.Request
	a := NewAuthorizer(rtFunc(func(req *http.Request) (*http.Response, error) {
		seen = req
		return response(http.StatusOK), nil
	}), tokens, zap.NewNop())

	req, _ := http.NewRequest(http.MethodPost, "http://api/auth/login", nil)
	_, err := a.RoundTrip(req)
	require.NoError(t, err)
	assert.Empty(t, seen.Header.Get("Authorization"), "public endpoints stay credential-free")
}

func TestRoundTrip_AttachesBearerOnClone(t *testing.T) {
	tokens := &fakeTokens{token: "tok-123"}
	var seen *http.Request
	a := NewAuthorizer(rtFunc(func(req *http.Request) (*http.Response, error) {
		seen = req
		return response(http.StatusOK), nil
	}), tokens, zap.NewNop())

	original, _ := http.NewRequest(http.MethodGet, "http://api/news/page", nil)
	_, err := a.RoundTrip(original)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", seen.Header.Get("Authorization"))
	assert.Empty(t, original.Header.Get("Authorization"), "the original request is never mutated")
	assert.NotSame(t, original, seen)
}

func TestRoundTrip_NoTokenNoHeader(t *testing.T) {
	tokens := &fakeTokens{}
	var seen *http.Request
	a := NewAuthorizer(rtFunc(func(req *http.Request) (*http.Response, error) {
		seen = req
		return response(http.StatusOK), nil
	}), tokens, zap.NewNop())

	req, _ := http.NewRequest(http.MethodGet, "http://api/news/public/page", nil)
	_, err := a.RoundTrip(req)
	require.NoError(t, err)
	assert.Empty(t, seen.Header.Get("Authorization"))
}

func TestRoundTrip_UnauthorizedForcesLogout(t *testing.T) {
	tokens := &fakeTokens{token: "stale"}
	a := NewAuthorizer(rtFunc(func(*http.Request) (*http.Response, error) {
		return response(http.StatusUnauthorized), nil
	}), tokens, zap.NewNop())

	req, _ := http.NewRequest(http.MethodGet, "http://api/event/page", nil)
	resp, err := a.RoundTrip(req)
	require.NoError(t, err)

	assert.True(t, tokens.cleared, "401 must clear the stored credential")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "the failure propagates unchanged")
}

func TestRoundTrip_OtherStatusesLeaveTokenAlone(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusForbidden, http.StatusInternalServerError} {
		tokens := &fakeTokens{token: "tok"}
		a := NewAuthorizer(rtFunc(func(*http.Request) (*http.Response, error) {
			return response(status), nil
		}), tokens, zap.NewNop())

		req, _ := http.NewRequest(http.MethodGet, "http://api/event/page", nil)
		_, err := a.RoundTrip(req)
		require.NoError(t, err)
		assert.False(t, tokens.cleared, "status %d must not clear the credential", status)
	}
}
