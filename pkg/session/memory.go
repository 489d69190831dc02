package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/blockboard/pkg/editor"
	"github.com/matzehuels/blockboard/pkg/observability"
)

// MemoryStore keeps sessions in a map guarded by a mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore creates an empty store. A non-positive ttl selects
// DefaultTTL.
func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Create(ctx context.Context, opts ...editor.Option) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		editor:    editor.New(opts...),
		expiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	observability.Session().OnSessionOpen(sess.ID)
	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.now()

	// The refresh happens under the read lock so Cleanup, which removes
	// under the write lock, never drops a session mid-refresh.
	s.mu.RLock()
	sess, ok := s.sessions[id]
	live := ok && !sess.expired(now)
	if live {
		sess.touch(now.Add(s.ttl))
	}
	s.mu.RUnlock()

	switch {
	case !ok:
		return nil, ErrNotFound
	case !live:
		s.removeExpired(id, now)
		return nil, ErrExpired
	}
	return sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.remove(id, "deleted") {
		return ErrNotFound
	}
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	now := s.now()

	s.mu.RLock()
	var stale []string
	for id, sess := range s.sessions {
		if sess.expired(now) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if s.removeExpired(id, now) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// remove deletes id and reports whether it was present.
func (s *MemoryStore) remove(id, reason string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		observability.Session().OnSessionClose(id, reason)
	}
	return ok
}

// removeExpired deletes id only if it is still expired at now.
func (s *MemoryStore) removeExpired(id string, now time.Time) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	ok = ok && sess.expired(now)
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if ok {
		observability.Session().OnSessionClose(id, "expired")
	}
	return ok
}

// RunJanitor calls Cleanup every interval until ctx is cancelled.
func RunJanitor(ctx context.Context, store Store, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Cleanup(ctx)
			if err == nil && n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

var _ Store = (*MemoryStore)(nil)
