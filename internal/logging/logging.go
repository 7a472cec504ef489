package logging

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Setup installs a text logger writing to w and returns it. Debug enables
// debug level and source locations.
func Setup(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339))
			}
			return a
		},
	})

	l := slog.New(h)
	mu.Lock()
	global = l
	mu.Unlock()
	return l
}

// L returns the logger installed by Setup, or a discarding one.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
