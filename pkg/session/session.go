// Package session keeps editing sessions for the HTTP front-end.
//
// Each [Session] owns one editor. Editors are single-threaded, so every
// access goes through [Session.Do], which holds the session's lock for the
// duration of the callback and pushes back its expiry.
//
// # Usage
//
//	store := session.NewMemoryStore(session.DefaultTTL)
//	sess, err := store.Create(ctx, editor.WithLogger(logger))
//
//	sess, err = store.Get(ctx, id)
//	switch {
//	case errors.Is(err, session.ErrNotFound):
//	    // unknown id
//	case errors.Is(err, session.ErrExpired):
//	    // id existed but timed out
//	}
//	sess.Do(func(ed *editor.Editor) { ed.Handle(ev) })
//
// Sessions live in process memory only. Boards are not serialized, so a
// restart or a second server instance does not see them.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matzehuels/blockboard/pkg/editor"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// DefaultTTL is the default idle time after which a session expires.
const DefaultTTL = 2 * time.Hour

// Session is one editor plus its bookkeeping.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex // guards editor
	editor *editor.Editor

	expMu     sync.Mutex // guards expiresAt; never held while calling out
	expiresAt time.Time
}

// Do runs fn with exclusive access to the session's editor.
func (s *Session) Do(fn func(*editor.Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.editor)
}

// ExpiresAt returns when the session times out unless it is used again.
// It is safe to call from inside Do.
func (s *Session) ExpiresAt() time.Time {
	s.expMu.Lock()
	defer s.expMu.Unlock()
	return s.expiresAt
}

func (s *Session) touch(until time.Time) {
	s.expMu.Lock()
	s.expiresAt = until
	s.expMu.Unlock()
}

func (s *Session) expired(now time.Time) bool {
	s.expMu.Lock()
	defer s.expMu.Unlock()
	return now.After(s.expiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Create opens a new session with a fresh editor.
	Create(ctx context.Context, opts ...editor.Option) (*Session, error)

	// Get retrieves a session by ID and extends its lifetime.
	// Returns ErrNotFound for unknown ids and ErrExpired for sessions
	// that timed out; expired sessions are removed.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many it removed.
	Cleanup(ctx context.Context) (int, error)

	// Len returns the number of stored sessions.
	Len() int
}
