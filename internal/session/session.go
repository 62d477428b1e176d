// Package session tracks authenticated identities across requests.
//
// A session is an opaque bearer token mapped server-side to a user id.
// Tokens carry 256 bits of entropy and prove nothing by themselves;
// ending a session invalidates the token immediately, which is why this
// is a server-side map rather than a self-validating token format.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/middleware"

	"github.com/google/uuid"
)

// ErrNoSession is returned when a token is absent, expired or invalid.
var ErrNoSession = errors.New("no active session")

// Record is the server-side state held for one token. The audit id is
// minted once when the session starts and is safe to write to logs; the
// bearer token never is.
type Record struct {
	UserID  uint   `json:"user_id"`
	AuditID string `json:"audit_id"`
}

// Store persists the token to record mapping. Implementations must be
// safe for concurrent use.
type Store interface {
	Save(ctx context.Context, token string, rec Record, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (Record, error)
	Delete(ctx context.Context, token string) error
}

// Manager issues, resolves and ends sessions.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager returns a Manager that stores sessions in store with the
// given time-to-live. Expiry is passive: expired entries simply stop
// resolving, no cleanup scheduler runs.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Start creates a session for the user and returns its bearer token.
// A user may hold any number of concurrent sessions.
func (m *Manager) Start(ctx context.Context, userID uint) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	rec := Record{UserID: userID, AuditID: uuid.NewString()}
	if err := m.store.Save(ctx, token, rec, m.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	middleware.Logger.InfoContext(ctx, "session started",
		slog.String("session_id", rec.AuditID),
		slog.Uint64("user_id", uint64(userID)),
	)
	return token, nil
}

// UserID resolves a token to the user id it was issued for.
// Returns ErrNoSession for unknown, expired or ended sessions.
func (m *Manager) UserID(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrNoSession
	}
	rec, err := m.store.Lookup(ctx, token)
	if err != nil {
		return 0, err
	}
	return rec.UserID, nil
}

// End terminates the session. Ending an absent or already-ended session
// is not an error.
func (m *Manager) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	rec, lookupErr := m.store.Lookup(ctx, token)
	if lookupErr != nil && !errors.Is(lookupErr, ErrNoSession) {
		return fmt.Errorf("end session: %w", lookupErr)
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if lookupErr == nil {
		middleware.Logger.InfoContext(ctx, "session ended",
			slog.String("session_id", rec.AuditID),
			slog.Uint64("user_id", uint64(rec.UserID)),
		)
	}
	return nil
}

// newToken returns a 256-bit random token in URL-safe base64.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
