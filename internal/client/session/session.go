package session

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/client/api"
	"github.com/elikia/elikia-client/internal/models"
)

// Service implements the session state machine: it authenticates
// against the backend, caches the role claim decoded from the
// credential, and answers authentication/role queries.
type Service struct {
	api   *api.Client
	store *Store
	log   *zap.Logger
}

// NewService constructs a session service over the given API client
// and credential store.
func NewService(apiClient *api.Client, store *Store, log *zap.Logger) *Service {
	return &Service{api: apiClient, store: store, log: log}
}

// Login authenticates with the backend. On success it stores the
// credential and the role decoded from it. Every outcome, including a
// transport failure, is returned as a uniform envelope so callers
// never deal with two result shapes; Data is nil on failure.
func (s *Service) Login(ctx context.Context, email, password string) models.Envelope[models.TokenData] {
	env, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return asFailure[models.TokenData](err)
	}

	if env.OK() && env.Data != nil && env.Data.Token != "" {
		role := RoleFromToken(env.Data.Token)
		if err := s.store.SetSession(env.Data.Token, role); err != nil {
			s.log.Warn("failed to persist session", zap.Error(err))
		}
		s.log.Info("logged in", zap.String("role", string(role)))
	}
	return env
}

// Register forwards a registration request to the backend. It mutates
// no local state regardless of outcome.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) models.Envelope[struct{}] {
	env, err := s.api.Register(ctx, req)
	if err != nil {
		return asFailure[struct{}](err)
	}
	return env
}

// Logout clears the credential and cached role unconditionally.
func (s *Service) Logout() {
	if err := s.store.Clear(); err != nil {
		s.log.Warn("failed to clear session", zap.Error(err))
	}
}

// IsAuthenticated reports whether a credential is currently stored.
func (s *Service) IsAuthenticated() bool {
	return s.store.HasToken()
}

// Role returns the role cached at login. It never re-derives from the
// credential.
func (s *Service) Role() models.Role {
	return s.store.Role()
}

// RoleFromToken decodes the role claim embedded in the credential
// without verifying the signature; the client only uses the role for
// UI gating, real authorization stays with the backend. Any
// malformation yields RoleNone rather than an error.
func RoleFromToken(token string) models.Role {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.RoleNone
	}
	role, ok := claims["role"].(string)
	if !ok {
		return models.RoleNone
	}
	return models.Role(role)
}

// asFailure flattens a call error into the uniform envelope shape.
func asFailure[T any](err error) models.Envelope[T] {
	if apiErr, ok := api.AsAPIError(err); ok {
		return models.Envelope[T]{Code: apiErr.Code, Message: apiErr.Message}
	}
	return models.Envelope[T]{Message: api.Normalize(err, "request failed")}
}
