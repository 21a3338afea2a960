package auth

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Store keeps the bearer token the backend issued for this client. It is
// the only state that survives a restart; everything else is re-fetched.
// A Store with an empty path operates purely in memory.
type Store struct {
	mu     sync.RWMutex
	path   string
	token  string
	logger zerolog.Logger
}

// NewStore creates a token store backed by the file at path. If the file
// exists, its contents seed the store.
func NewStore(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger.With().Str("component", "token-store").Logger(),
	}

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	s.token = strings.TrimSpace(string(data))
	s.logger.Debug().Str("file", path).Msg("token loaded from file")

	return s, nil
}

// Save stores the token in memory and, when a path is configured, on disk.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token

	if s.path != "" {
		if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
			return fmt.Errorf("failed to write token file %s: %w", s.path, err)
		}
	}

	return nil
}

// Token returns the stored token, or "" when none is stored or the stored
// token is an expired JWT. Expiry is screened with an unverified claims
// parse; signature verification is the backend's job. Opaque non-JWT
// tokens pass through untouched.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return ""
	}

	if expired(s.token) {
		s.logger.Debug().Msg("stored token is expired, not attaching")
		return ""
	}

	return s.token
}

// Clear removes the token from memory and disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""

	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove token file %s: %w", s.path, err)
		}
	}

	return nil
}

// expired reports whether token is a JWT with an exp claim in the past.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT; treat as an opaque token with no known expiry.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
