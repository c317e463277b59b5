// ABOUTME: Session store holding the access/refresh tokens and display username
// ABOUTME: Single writer over a Storage backend; token presence means authenticated

package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/makblog/blogfront/internal/apiclient"
)

// Session is the client's record of being authenticated: two opaque
// tokens and a cosmetic username. The refresh token is stored but not
// used for automatic renewal; an expired access token surfaces as an
// ordinary request failure and the user logs in again.
type Session struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Username string `json:"username"`
}

// Storage persists one session. Load returns the zero Session when
// nothing is stored; Clear is idempotent.
type Storage interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// Authenticator exchanges credentials for tokens. *apiclient.Client
// satisfies it.
type Authenticator interface {
	Token(ctx context.Context, username, password string) (*apiclient.TokenPair, error)
}

// Store owns all reads and writes of the persisted session. Nothing
// else touches the Storage backend.
type Store struct {
	storage Storage
	api     Authenticator
	logger  *slog.Logger
}

// NewStore creates a session store over the given backend.
func NewStore(storage Storage, api Authenticator) *Store {
	return &Store{
		storage: storage,
		api:     api,
		logger:  slog.Default().With("component", "session"),
	}
}

// Authenticate sends credentials to the token endpoint. On success the
// tokens and username are persisted together and the session returned.
// On rejection nothing is stored and the *apiclient.AuthError is
// passed through.
func (s *Store) Authenticate(ctx context.Context, username, password string) (Session, error) {
	pair, err := s.api.Token(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		Access:   pair.Access,
		Refresh:  pair.Refresh,
		Username: username,
	}
	if err := s.storage.Save(sess); err != nil {
		return Session{}, fmt.Errorf("persisting session: %w", err)
	}

	s.logger.Info("session established", "username", username)
	return sess, nil
}

// Clear removes all persisted session fields. Safe to call when no
// session exists.
func (s *Store) Clear() error {
	if err := s.storage.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// CurrentToken returns the persisted access token, or "" when absent.
// It satisfies apiclient.TokenSource.
func (s *Store) CurrentToken() string {
	sess, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("failed to load session", "error", err)
		return ""
	}
	return sess.Access
}

// CurrentUser returns the persisted display username, or "" when absent.
func (s *Store) CurrentUser() string {
	sess, err := s.storage.Load()
	if err != nil {
		return ""
	}
	return sess.Username
}

// Authenticated reports whether an access token is present.
func (s *Store) Authenticated() bool {
	return s.CurrentToken() != ""
}
