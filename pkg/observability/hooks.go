// Package observability provides hooks for metrics and logging of editor
// activity.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about processed input, state transitions, graph changes
// and HTTP sessions.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the editor core stays
// free of any metrics framework. The Prometheus implementation lives in
// pkg/metrics.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditorHooks(metrics.NewEditorHooks(reg))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Editor().OnTransition("basic", "predrag")
//
// Hooks are called synchronously on the goroutine handling the event and
// must not block.
package observability

import "sync"

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from the editor core.
type EditorHooks interface {
	// OnEvent records an input event of the given kind and whether it
	// required a redraw.
	OnEvent(kind string, redraw bool)

	// OnTransition records a block state machine transition.
	OnTransition(from, to string)

	// OnGraphChange records the graph size after a structural change.
	OnGraphChange(vertices, edges int)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from the HTTP session store.
type SessionHooks interface {
	// OnSessionOpen records a new session.
	OnSessionOpen(id string)

	// OnSessionClose records a session ending. Reason is "deleted" or
	// "expired".
	OnSessionClose(id, reason string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnEvent(string, bool)        {}
func (NoopEditorHooks) OnTransition(string, string) {}
func (NoopEditorHooks) OnGraphChange(int, int)      {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionOpen(string)          {}
func (NoopSessionHooks) OnSessionClose(string, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editorHooks  EditorHooks  = NoopEditorHooks{}
	sessionHooks SessionHooks = NoopSessionHooks{}
	hooksMu      sync.RWMutex
)

// SetEditorHooks registers custom editor hooks.
// This should be called once at application startup before any editor is created.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup before the server starts.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	sessionHooks = NoopSessionHooks{}
}
