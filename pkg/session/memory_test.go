package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/blockboard/pkg/editor"
	"github.com/matzehuels/blockboard/pkg/event"
	"github.com/matzehuels/blockboard/pkg/observability"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewMemoryStore(ttl, WithClock(clock.Now)), clock
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(time.Hour)

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := uuid.Parse(sess.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", sess.ID, err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != sess {
		t.Error("Get() returned a different session")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestGetUnknown(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(time.Hour)
	sess, _ := store.Create(ctx)

	clock.Advance(50 * time.Minute)
	if _, err := store.Get(ctx, sess.ID); err != nil {
		t.Fatalf("Get() before expiry: %v", err)
	}

	// the Get above extended the lifetime
	clock.Advance(50 * time.Minute)
	if _, err := store.Get(ctx, sess.ID); err != nil {
		t.Fatalf("Get() after touch: %v", err)
	}

	clock.Advance(61 * time.Minute)
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrExpired) {
		t.Fatalf("Get() error = %v, want ErrExpired", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired sessions should be removed, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(time.Hour)
	sess, _ := store.Create(ctx)

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := store.Delete(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(time.Hour)
	old, _ := store.Create(ctx)
	clock.Advance(30 * time.Minute)
	fresh, _ := store.Create(ctx)
	clock.Advance(45 * time.Minute)

	n, err := store.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Cleanup() = %d, %v, want 1, nil", n, err)
	}
	if _, err := store.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("old session still present: %v", err)
	}
	if _, err := store.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session gone: %v", err)
	}
}

func TestCleanup_SkipsRefreshedSession(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(time.Hour)
	sess, _ := store.Create(ctx)
	clock.Advance(2 * time.Hour)
	now := clock.Now()

	// refreshed between the sweep's scan and its removal
	sess.touch(now.Add(time.Hour))
	if store.removeExpired(sess.ID, now) {
		t.Fatal("removeExpired() removed a refreshed session")
	}
	if _, err := store.Get(ctx, sess.ID); err != nil {
		t.Errorf("Get() error = %v, want nil", err)
	}
}

func TestExpiresAt_InsideDo(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess, _ := store.Create(context.Background())

	done := make(chan time.Time)
	go func() {
		var at time.Time
		sess.Do(func(*editor.Editor) { at = sess.ExpiresAt() })
		done <- at
	}()
	select {
	case at := <-done:
		if !at.Equal(sess.CreatedAt.Add(time.Hour)) {
			t.Errorf("ExpiresAt() = %v, want %v", at, sess.CreatedAt.Add(time.Hour))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ExpiresAt() blocked inside Do")
	}
}

func TestCancelledContext(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Create(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Create() error = %v, want context.Canceled", err)
	}
}

func TestDoSerializesAccess(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess, _ := store.Create(context.Background())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.Do(func(ed *editor.Editor) {
				ed.Handle(event.KeyDown{Key: event.KeyNew})
			})
		}()
	}
	wg.Wait()

	sess.Do(func(ed *editor.Editor) {
		if n := ed.Board().Len(); n != 20 {
			t.Errorf("Len() = %d, want 20", n)
		}
	})
}

type sessionEvents struct {
	observability.NoopSessionHooks
	mu     sync.Mutex
	opened int
	closed map[string]int
}

func (h *sessionEvents) OnSessionOpen(string) {
	h.mu.Lock()
	h.opened++
	h.mu.Unlock()
}

func (h *sessionEvents) OnSessionClose(_ string, reason string) {
	h.mu.Lock()
	h.closed[reason]++
	h.mu.Unlock()
}

func TestHooks(t *testing.T) {
	h := &sessionEvents{closed: map[string]int{}}
	observability.SetSessionHooks(h)
	defer observability.Reset()

	ctx := context.Background()
	store, clock := newTestStore(time.Minute)
	a, _ := store.Create(ctx)
	store.Create(ctx)
	store.Delete(ctx, a.ID)
	clock.Advance(2 * time.Minute)
	store.Cleanup(ctx)

	if h.opened != 2 || h.closed["deleted"] != 1 || h.closed["expired"] != 1 {
		t.Errorf("opened = %d, closed = %v", h.opened, h.closed)
	}
}

func TestRunJanitor(t *testing.T) {
	store, clock := newTestStore(time.Minute)
	store.Create(context.Background())
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, store, time.Millisecond, func(n int) { swept <- n })
		close(done)
	}()

	select {
	case n := <-swept:
		if n != 1 {
			t.Errorf("swept %d, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not run")
	}
	cancel()
	<-done
}
