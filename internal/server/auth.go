package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/models"
)

type ctxKey string

const roleKey ctxKey = "role"

// tokenTTL bounds how long an issued credential stays valid.
const tokenTTL = 12 * time.Hour

// issueToken signs an HS256 credential embedding the role claim the
// client decodes.
func issueToken(secret []byte, email string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// BearerAuth is a middleware enforcing bearer-token authentication.
//
// It rejects requests without a valid signed token with a 401
// envelope; on success it stores the role claim in the request context
// for downstream role checks.
func BearerAuth(secret []byte, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				writeEnvelope(w, http.StatusUnauthorized, "401", "Missing credentials", nil)
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil {
				log.Debug("rejected credential", zap.Error(err))
				writeEnvelope(w, http.StatusUnauthorized, "401", "Invalid credentials", nil)
				return
			}

			role, _ := claims["role"].(string)
			ctx := context.WithValue(r.Context(), roleKey, models.Role(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin is a middleware allowing only ADMIN credentials past.
// It must run after BearerAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) != models.RoleAdmin {
			writeEnvelope(w, http.StatusForbidden, "403", "Admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RoleFromContext extracts the authenticated role from the request
// context. Returns RoleNone if not present.
func RoleFromContext(ctx context.Context) models.Role {
	if role, ok := ctx.Value(roleKey).(models.Role); ok {
		return role
	}
	return models.RoleNone
}

// WithRequestLogging logs each request and its outcome status.
func WithRequestLogging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}
