package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/tablelog/core"
)

// ErrorReporter receives handler failures. A log call never returns an
// error; the reporter is the only place a failed write shows up.
type ErrorReporter interface {
	Report(err error, entry *core.Entry)
}

// ErrorReporterFunc adapts a plain function to ErrorReporter
type ErrorReporterFunc func(err error, entry *core.Entry)

// Report calls f(err, entry)
func (f ErrorReporterFunc) Report(err error, entry *core.Entry) {
	f(err, entry)
}

var (
	// StderrReporter writes a "--- Logging error ---" block to stderr
	StderrReporter ErrorReporter = NewWriterReporter(os.Stderr)
	// DiscardReporter ignores handler failures
	DiscardReporter ErrorReporter = ErrorReporterFunc(func(error, *core.Entry) {})
)

type writerReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterReporter returns a reporter that writes a short block per
// failure to w.
func NewWriterReporter(w io.Writer) ErrorReporter {
	return &writerReporter{w: w}
}

func (r *writerReporter) Report(err error, entry *core.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "--- Logging error ---\n%v\n", err)
	if entry.Caller.Defined {
		fmt.Fprintf(r.w, "Call site: %s:%d\n", entry.Caller.File, entry.Caller.Line)
	}
	fmt.Fprintf(r.w, "Logger: %s, level: %s\nMessage: %q\n", entry.LoggerName, entry.Level, entry.Message)
}
