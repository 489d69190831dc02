package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tallies the editor events of one replay or editing session
// and reports them as a single structured line when the run ends.
type progress struct {
	logger  *log.Logger
	start   time.Time
	events  int
	redraws int
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// observe counts one handled event.
func (p *progress) observe(redraw bool) {
	p.events++
	if redraw {
		p.redraws++
	}
}

// done logs msg with the tallies, e.g.
// "replayed events=42 redraws=17 elapsed=3ms".
func (p *progress) done(msg string) {
	p.logger.Info(msg,
		"events", p.events,
		"redraws", p.redraws,
		"elapsed", time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
