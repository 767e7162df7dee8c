// package shared defines shared helpers
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// loggerPrefix tags every log line so game output and diagnostics stay
// distinguishable when the TUI and the callback server write interleaved.
const loggerPrefix = "enunanota"

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer],
// with timestamps enabled and the application prefix set.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, Prefix: loggerPrefix}
	return log.NewWithOptions(w, opts)
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateID generates a new v4 [uuid.UUID] as a string. Used as the
// primary key for score rows.
func GenerateID() string {
	return uuid.New().String()
}
