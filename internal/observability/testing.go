package observability

import (
	"io"
	"log/slog"
)

// NewTestLogger returns a logger that discards all output, for use in tests.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
