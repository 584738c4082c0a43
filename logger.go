package pixfilter

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false, so callers skip
// building the record at all.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var silent = slog.New(nopHandler{})

// current holds the logger shared by pixfilter and its sub-packages.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger sets the logger used by pixfilter and its sub-packages.
// Nothing is logged by default; nil restores that.
//
// Levels:
//   - [slog.LevelDebug]: one record per filter pass with its rectangles
//   - [slog.LevelWarn]: input a filter ignored (unsupported pixel format
//     pairings) and capture device errors
//
// SetLogger may be called while filters run on other goroutines.
//
//	pixfilter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set with SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}
