package session

import (
	"fmt"
	"io"
	"os"
)

// Logger receives diagnostics for failures the store swallows by contract,
// such as a best-effort cleanup of an expired entry. Implementations must be
// safe for concurrent use.
type Logger interface {
	// Errorf logs a formatted error message
	Errorf(format string, args ...interface{})
}

// StdLogger writes diagnostics to an io.Writer, one message per line,
// prefixed with the package name.
type StdLogger struct {
	writer io.Writer
}

// Errorf implements Logger.Errorf by writing a formatted error message to the writer
func (l *StdLogger) Errorf(format string, args ...interface{}) {
	if l.writer != nil {
		fmt.Fprintf(l.writer, "session: "+format+"\n", args...)
	}
}

// NewStdLogger creates a new StdLogger with the specified writer
// If writer is nil, os.Stderr is used as the default
func NewStdLogger(writer io.Writer) *StdLogger {
	if writer == nil {
		writer = os.Stderr
	}
	return &StdLogger{
		writer: writer,
	}
}

// DefaultLogger is the default logger instance that writes to os.Stderr
var DefaultLogger Logger = NewStdLogger(os.Stderr)
