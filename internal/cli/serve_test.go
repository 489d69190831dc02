package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockboard/pkg/errors"
	"github.com/matzehuels/blockboard/pkg/httputil"
	"github.com/matzehuels/blockboard/pkg/metrics"
	"github.com/matzehuels/blockboard/pkg/session"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestServer(t *testing.T) (*httptest.Server, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	store := session.NewMemoryStore(time.Hour, session.WithClock(clock.Now))
	srv := newServer(store, metrics.NewRegistry(), defaultConfig(), log.New(io.Discard))
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts, clock
}

// testClient fails a request that hangs instead of stalling the run.
var testClient = &http.Client{Timeout: 5 * time.Second}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := testClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func createSession(t *testing.T, ts *httptest.Server) summary {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/sessions", `{"width": 800, "height": 600}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /sessions status = %d, want 201", resp.StatusCode)
	}
	return decode[summary](t, resp)
}

func TestServe_CreateSession(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/sessions", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	sum := decode[summary](t, resp)
	if resp.Header.Get("Location") != "/sessions/"+sum.ID {
		t.Errorf("Location = %q", resp.Header.Get("Location"))
	}
	if sum.State != "basic" || sum.Blocks != 0 || sum.Selected == nil || sum.Scale != 1 {
		t.Errorf("summary = %+v", sum)
	}
	// default viewport from config
	if sum.ViewBox != "0 0 1280 800" {
		t.Errorf("ViewBox = %q, want %q", sum.ViewBox, "0 0 1280 800")
	}
	if want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC); !sum.Expires.Equal(want) {
		t.Errorf("Expires = %v, want %v", sum.Expires, want)
	}

	// the session stays usable after the summary was built under its lock
	again := do(t, http.MethodGet, ts.URL+"/sessions/"+sum.ID, "")
	if again.StatusCode != http.StatusOK {
		t.Errorf("GET status = %d, want 200", again.StatusCode)
	}
}

func TestServe_CreateSessionInvalid(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, body := range []string{`{"width": -1}`, `{"depth": 3}`, `{`} {
		resp := do(t, http.MethodPost, ts.URL+"/sessions", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("POST %s status = %d, want 400", body, resp.StatusCode)
			continue
		}
		if got := decode[httputil.ErrorBody](t, resp); got.Error.Code != errors.ErrCodeInvalidInput {
			t.Errorf("POST %s code = %s, want INVALID_INPUT", body, got.Error.Code)
		}
	}
}

func TestServe_Events(t *testing.T) {
	ts, _ := newTestServer(t)
	sess := createSession(t, ts)
	url := ts.URL + "/sessions/" + sess.ID + "/events"

	resp := do(t, http.MethodPost, url, `[
		{"type": "cursor_move", "x": 100, "y": 100},
		{"type": "key_down", "key": "n"},
		{"type": "cursor_move", "x": 400, "y": 100},
		{"type": "key_down", "key": "n"}
	]`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	sum := decode[summary](t, resp)
	if !sum.Redraw || sum.Blocks != 2 || len(sum.Selected) != 1 || sum.Selected[0] != 2 {
		t.Fatalf("summary = %+v", sum)
	}

	// draw an arrow 2 -> 1, one event per request
	for _, ev := range []string{
		`{"type": "key_down", "key": "a"}`,
		`{"type": "block_mouse_over", "block": 1}`,
		`{"type": "block_mouse_down", "block": 1}`,
		`{"type": "mouse_up"}`,
	} {
		resp := do(t, http.MethodPost, url, ev)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("POST %s status = %d", ev, resp.StatusCode)
		}
		sum = decode[summary](t, resp)
	}
	if sum.Arrows != 1 || sum.State != "basic" {
		t.Errorf("summary = %+v, want one arrow in basic", sum)
	}

	// an ignored input reports no redraw
	resp = do(t, http.MethodPost, url, `{"type": "block_mouse_leave"}`)
	if sum := decode[summary](t, resp); sum.Redraw {
		t.Error("block_mouse_leave in basic reported a redraw")
	}
}

func TestServe_EventsInvalid(t *testing.T) {
	ts, _ := newTestServer(t)
	sess := createSession(t, ts)
	url := ts.URL + "/sessions/" + sess.ID + "/events"

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type": "teleport"}`},
		{"missing key", `{"type": "key_down"}`},
		{"zero block", `{"type": "block_mouse_down"}`},
		{"unknown field", `{"type": "mouse_up", "pressure": 1}`},
		{"bad batch element", `[{"type": "key_down", "key": "n"}, {"type": "nope"}]`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, url, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if got := decode[httputil.ErrorBody](t, resp); got.Error.Code != errors.ErrCodeInvalidEvent {
				t.Errorf("code = %s, want INVALID_EVENT", got.Error.Code)
			}
		})
	}

	// a rejected batch applies nothing
	resp := do(t, http.MethodGet, ts.URL+"/sessions/"+sess.ID, "")
	if sum := decode[summary](t, resp); sum.Blocks != 0 {
		t.Errorf("Blocks = %d after rejected batch, want 0", sum.Blocks)
	}
}

func TestServe_BoardSVG(t *testing.T) {
	ts, _ := newTestServer(t)
	sess := createSession(t, ts)
	do(t, http.MethodPost, ts.URL+"/sessions/"+sess.ID+"/events",
		`[{"type": "cursor_move", "x": 100, "y": 100}, {"type": "key_down", "key": "n"}]`)

	resp := do(t, http.MethodGet, ts.URL+"/sessions/"+sess.ID+"/board.svg", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{`viewBox="0 0 800 600"`, `id="block-1" class="block selected"`, `class="grid"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	resp = do(t, http.MethodGet, ts.URL+"/sessions/"+sess.ID+"/board.svg?grid=0", "")
	body, _ = io.ReadAll(resp.Body)
	if strings.Contains(string(body), `class="grid"`) {
		t.Error("grid drawn with grid=0")
	}
}

func TestServe_SessionErrors(t *testing.T) {
	ts, clock := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/sessions/missing/board.svg", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", resp.StatusCode)
	}
	if got := decode[httputil.ErrorBody](t, resp); got.Error.Code != errors.ErrCodeSessionNotFound {
		t.Errorf("code = %s, want SESSION_NOT_FOUND", got.Error.Code)
	}

	sess := createSession(t, ts)
	clock.Advance(2 * time.Hour)
	resp = do(t, http.MethodPost, ts.URL+"/sessions/"+sess.ID+"/events", `{"type": "mouse_up"}`)
	if resp.StatusCode != http.StatusGone {
		t.Errorf("expired session status = %d, want 410", resp.StatusCode)
	}
}

func TestServe_DeleteSession(t *testing.T) {
	ts, _ := newTestServer(t)
	sess := createSession(t, ts)

	if resp := do(t, http.MethodDelete, ts.URL+"/sessions/"+sess.ID, ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", resp.StatusCode)
	}
	if resp := do(t, http.MethodGet, ts.URL+"/sessions/"+sess.ID, ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d, want 404", resp.StatusCode)
	}
	if resp := do(t, http.MethodDelete, ts.URL+"/sessions/"+sess.ID, ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", resp.StatusCode)
	}
}

func TestServe_HealthAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t)
	createSession(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	health := decode[map[string]any](t, resp)
	if health["status"] != "ok" || health["sessions"] != float64(1) {
		t.Errorf("healthz = %v", health)
	}

	resp = do(t, http.MethodGet, ts.URL+"/metrics", "")
	body, _ := io.ReadAll(resp.Body)
	var found bool
	for _, line := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(line, `blockboard_http_requests_total{method="POST",route="/sessions`) &&
			strings.HasSuffix(line, `status="201"} 1`) {
			found = true
		}
	}
	if !found {
		t.Errorf("metrics missing the session create request:\n%s", body)
	}
}

func TestDecodeEvents_Single(t *testing.T) {
	evs, err := decodeEvents([]byte("  {\"type\": \"mouse_wheel\", \"delta_y\": 1}\n"))
	if err != nil || len(evs) != 1 || evs[0].Kind() != "mouse_wheel" {
		t.Errorf("decodeEvents() = %v, %v", evs, err)
	}
}
