package httputil

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Recorder receives one observation per completed request.
// *metrics.Registry satisfies it.
type Recorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Instrument returns middleware that records and logs each request. The
// route is the matched chi pattern, so ids in the path do not explode
// label cardinality; unmatched requests are recorded as "unmatched".
func Instrument(rec Recorder, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			elapsed := time.Since(start)
			if rec != nil {
				rec.RecordHTTPRequest(r.Method, route, status, elapsed)
			}
			logger.Debug("request", "method", r.Method, "route", route, "status", status,
				"duration", elapsed.Round(time.Microsecond), "request_id", middleware.GetReqID(r.Context()))
		})
	}
}
