// Package cli implements the chord2svg command-line interface.
//
// Commands lay out chords given on the command line or in a batch file,
// render them to disk, serve them over HTTP, and manage the artifact
// cache. The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: Render every chord of a JSON or YAML batch file
//   - layout: Print the computed coordinates of one chord
//   - clusters: Draw the accidental clusters of one chord as a graph
//   - pick: Choose a clef interactively and write the rendering
//   - serve: Run the HTTP render API
//   - table: Print pitch table rows
//   - cache: Clear or locate the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes collision passes and cache traffic. The HTTP server attaches a
// request-scoped logger to each request context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 4 chords (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
