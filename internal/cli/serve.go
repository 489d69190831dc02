package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockboard/pkg/buildinfo"
	"github.com/matzehuels/blockboard/pkg/editor"
	"github.com/matzehuels/blockboard/pkg/errors"
	"github.com/matzehuels/blockboard/pkg/event"
	"github.com/matzehuels/blockboard/pkg/graph"
	"github.com/matzehuels/blockboard/pkg/httputil"
	"github.com/matzehuels/blockboard/pkg/metrics"
	"github.com/matzehuels/blockboard/pkg/observability"
	"github.com/matzehuels/blockboard/pkg/render/svg"
	"github.com/matzehuels/blockboard/pkg/session"
)

const shutdownTimeout = 5 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve editing sessions over HTTP",
		Long: `Serve exposes editor sessions over HTTP.

  POST   /sessions                 open a session; optional {"width", "height"}
  GET    /sessions/{id}            session summary
  POST   /sessions/{id}/events     apply one JSON event or an array of events
  GET    /sessions/{id}/board.svg  render the visible board
  DELETE /sessions/{id}            close a session
  GET    /metrics                  Prometheus metrics
  GET    /healthz                  liveness and build info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("session-ttl") {
				cfg.Serve.SessionTTL = ttl
			}
			if err := errors.ValidateStruct(errors.ErrCodeInvalidConfig, cfg); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&ttl, "session-ttl", session.DefaultTTL, "idle time before a session expires")

	return cmd
}

func runServe(ctx context.Context, cfg Config) error {
	logger := loggerFromContext(ctx)

	reg := metrics.NewRegistry()
	observability.SetEditorHooks(reg)
	observability.SetSessionHooks(reg)
	defer observability.Reset()

	store := session.NewMemoryStore(cfg.Serve.SessionTTL)
	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           newServer(store, reg, cfg, logger).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go session.RunJanitor(ctx, store, max(cfg.Serve.SessionTTL/4, time.Second), func(n int) {
		logger.Info("expired sessions", "count", n)
	})

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Serve.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", cfg.Serve.Addr)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "sessions", store.Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}

// =============================================================================
// HTTP handlers
// =============================================================================

type server struct {
	store   session.Store
	metrics *metrics.Registry
	cfg     Config
	logger  *log.Logger
}

func newServer(store session.Store, reg *metrics.Registry, cfg Config, logger *log.Logger) *server {
	return &server{store: store, metrics: reg, cfg: cfg, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Instrument(s.metrics, s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSummary)
			r.Delete("/", s.handleDelete)
			r.Post("/events", s.handleEvents)
			r.Get("/board.svg", s.handleBoardSVG)
		})
	})
	return r
}

// createRequest is the optional body of POST /sessions.
type createRequest struct {
	Width  float64 `json:"width" validate:"omitempty,gt=0"`
	Height float64 `json:"height" validate:"omitempty,gt=0"`
}

// summary describes a session after a request.
type summary struct {
	ID       string           `json:"id"`
	State    string           `json:"state"`
	Redraw   bool             `json:"redraw"`
	Blocks   int              `json:"blocks"`
	Arrows   int              `json:"arrows"`
	Selected []graph.VertexID `json:"selected"`
	Scale    float64          `json:"scale"`
	ViewBox  string           `json:"view_box"`
	Expires  time.Time        `json:"expires_at"`
}

func summarize(sess *session.Session, ed *editor.Editor, redraw bool) summary {
	sel := ed.Board().SelectedIDs()
	if sel == nil {
		sel = []graph.VertexID{}
	}
	return summary{
		ID:       sess.ID,
		State:    ed.State().Name(),
		Redraw:   redraw,
		Blocks:   ed.Board().Len(),
		Arrows:   ed.Board().EdgeCount(),
		Selected: sel,
		Scale:    ed.Viewbox().Scale(),
		ViewBox:  ed.Viewbox().String(),
		Expires:  sess.ExpiresAt(),
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"build":    buildinfo.Get(),
		"sessions": s.store.Len(),
	})
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req := createRequest{Width: s.cfg.Viewport.Width, Height: s.cfg.Viewport.Height}
	if err := httputil.DecodeJSON(w, r, s.cfg.Serve.MaxBodyBytes, true, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := errors.ValidateStruct(errors.ErrCodeInvalidInput, req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Width == 0 {
		req.Width = s.cfg.Viewport.Width
	}
	if req.Height == 0 {
		req.Height = s.cfg.Viewport.Height
	}

	sess, err := s.store.Create(r.Context(),
		editor.WithLogger(s.logger),
		editor.WithViewport(req.Width, req.Height),
	)
	if err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeInternal, err, "create session"))
		return
	}
	s.logger.Debug("session opened", "id", sess.ID)

	var out summary
	sess.Do(func(ed *editor.Editor) { out = summarize(sess, ed, false) })
	w.Header().Set("Location", "/sessions/"+sess.ID)
	httputil.WriteJSON(w, http.StatusCreated, out)
}

// session looks up the {id} path parameter and writes the error response
// itself when the lookup fails.
func (s *server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	switch {
	case err == nil:
		return sess, true
	case stderrors.Is(err, session.ErrNotFound):
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s not found", id))
	case stderrors.Is(err, session.ErrExpired):
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeSessionExpired, err, "session %s expired", id))
	default:
		httputil.WriteError(w, err)
	}
	return nil, false
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var out summary
	sess.Do(func(ed *editor.Editor) { out = summarize(sess, ed, false) })
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if stderrors.Is(err, session.ErrNotFound) {
			err = errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s not found", id)
		}
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents applies a single event object or an array of them. The
// batch is validated in full before any event is applied.
func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	body, err := httputil.ReadBody(w, r, s.cfg.Serve.MaxBodyBytes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := decodeEvents(body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var out summary
	sess.Do(func(ed *editor.Editor) {
		redraw := false
		for _, ev := range events {
			if ed.Handle(ev) {
				redraw = true
			}
		}
		out = summarize(sess, ed, redraw)
	})
	httputil.WriteJSON(w, http.StatusOK, out)
}

func decodeEvents(body []byte) ([]event.Event, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		ev, err := event.Decode(trimmed)
		if err != nil {
			return nil, err
		}
		return []event.Event{ev}, nil
	}
	return event.DecodeBatch(trimmed)
}

func (s *server) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	grid := s.cfg.Render.Grid
	switch r.URL.Query().Get("grid") {
	case "0", "false":
		grid = false
	case "1", "true":
		grid = true
	}

	var doc []byte
	sess.Do(func(ed *editor.Editor) {
		opts := []svg.Option{svg.WithPixelSize(ed.Viewbox().Size())}
		if grid {
			opts = append(opts, svg.WithGrid())
		}
		doc = svg.Render(ed.Scene(), ed.Viewbox().Rect(), opts...)
	})
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(doc)
}
