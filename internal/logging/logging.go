// ABOUTME: Structured leveled logger shared by the pipeline stages.
// ABOUTME: Wraps charmbracelet/log with the tool's prefix and verbosity switch.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New returns a logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "nutrition",
		ReportTimestamp: verbose,
	})
}

// Discard returns a logger that drops everything, for tests and library
// callers that do not supply one.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// WithRun tags every line of l with a fresh run ID and returns both, so
// all log lines of one invocation can be correlated.
func WithRun(l *log.Logger) (*log.Logger, string) {
	id := uuid.NewString()
	return l.With("run", id), id
}
