// Package api implements the typed REST client for the Elikia backend.
// Every endpoint answers with the {code,message,data} envelope; business
// rejections arrive as normal envelope values, transport failures and
// non-2xx statuses surface as errors (see APIError).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/models"
)

// maxBodySize bounds how much of a response body the client will read.
const maxBodySize = 10 << 20

// Client performs envelope-aware HTTP calls against the backend.
// Credential attachment is not its concern: the http.Client it is
// given carries the authorizing transport.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// New constructs a client for the given API base URL.
func New(base string, httpClient *http.Client, log *zap.Logger) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: httpClient,
		log:  log,
	}
}

// Login posts credentials to /auth/login.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.Envelope[models.TokenData], error) {
	return postJSON[models.TokenData](ctx, c, "/auth/login", req)
}

// Register posts a new member profile to /auth/register.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.Envelope[struct{}], error) {
	return postJSON[struct{}](ctx, c, "/auth/register", req)
}

// getJSON issues a GET for path with optional query parameters.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (models.Envelope[T], error) {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return models.Envelope[T]{}, fmt.Errorf("build request: %w", err)
	}
	return send[T](c, req)
}

// postJSON issues a POST with a JSON payload.
func postJSON[T any](ctx context.Context, c *Client, path string, payload any) (models.Envelope[T], error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Envelope[T]{}, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return models.Envelope[T]{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return send[T](c, req)
}

// sendBody issues a request with an arbitrary body and content type,
// used for the multipart create/update submissions.
func sendBody[T any](ctx context.Context, c *Client, method, path, contentType string, body io.Reader) (models.Envelope[T], error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return models.Envelope[T]{}, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return send[T](c, req)
}

// send executes the request and decodes the envelope. A 2xx response
// always yields the envelope value, success code or not; a non-2xx
// response yields an *APIError carrying whatever the body held.
func send[T any](c *Client, req *http.Request) (models.Envelope[T], error) {
	var env models.Envelope[T]

	resp, err := c.http.Do(req)
	if err != nil {
		return env, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return env, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var failure models.Envelope[json.RawMessage]
		if jsonErr := json.Unmarshal(data, &failure); jsonErr == nil && failure.Code != "" {
			apiErr.Code = failure.Code
			apiErr.Message = failure.Message
		} else {
			apiErr.Body = strings.TrimSpace(string(data))
		}
		c.log.Debug("request rejected",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode))
		return env, apiErr
	}

	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}
