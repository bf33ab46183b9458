package normalmap

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record and reports every level as disabled.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the logger MakeNormals reports to. Never nil.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes pipeline diagnostics to l. Passing nil silences them
// again, which is also the initial state. It may be called while
// conversions are running on other goroutines.
//
// Everything is logged at [slog.LevelDebug], one record per stage:
//
//	normalmap: luminance      width, height, min, max
//	normalmap: low-pass       min_detail (only when MinDetail > 0)
//	normalmap: high-pass      max_detail (only when MaxDetail > 0)
//	normalmap: pyramid level  level, width, height
//	normalmap: done           width, height, depth, levels, workers
//
// The logger only observes; output images do not depend on it.
//
//	normalmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
