// Package session owns the durable session credential: a Store that
// persists the token and its cached role across restarts, and a Service
// that authenticates against the backend and derives the role claim.
package session

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/elikia/elikia-client/internal/models"
)

// state is the on-disk shape of the session file: the credential and
// the role cached at login so it survives restarts without re-decoding.
type state struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Store persists the session credential and cached role to a single
// JSON file. Only the Service's login/logout paths write it; every
// other component only reads.
type Store struct {
	path string

	mu sync.Mutex
	st state
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the session file. A missing file yields an empty session.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.st = state{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.st)
}

// SetSession stores the credential and its role and persists them.
func (s *Store) SetSession(token string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = state{Token: token, Role: string(role)}
	return s.save()
}

// Token returns the stored credential, or "" if none.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Token
}

// Role returns the cached role. It never re-derives from the token.
func (s *Store) Role() models.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Role(s.st.Role)
}

// HasToken reports whether a credential is currently stored.
func (s *Store) HasToken() bool {
	return s.Token() != ""
}

// Clear removes the credential and role together. It is idempotent:
// clearing an already empty store succeeds and leaves no file behind.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = state{}
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// save writes the current state with owner-only permissions.
// Caller must hold s.mu.
func (s *Store) save() error {
	data, err := json.Marshal(&s.st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
