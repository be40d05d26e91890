package testhelpers

import (
	"io"
	"log/slog"

	"github.com/harrysikes/shredai/internal/logging"
)

// NewLogger returns a debug-level logger writing to the given sink, usually a
// testhelpers.Writer so that log output surfaces only on test failure.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	}))
	return slog.New(handler)
}
