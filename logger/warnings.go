package logger

import (
	"io"
	"log"
	"strings"
	"sync"
)

// WarningsName is the logger name of records captured from the standard
// library log package
const WarningsName = "warnings"

// capture is the process-wide redirect of the standard log package
var capture struct {
	mu     sync.Mutex
	owner  *Logger
	target *Logger
	writer io.Writer
	flags  int
	prefix string
}

// warningWriter turns each line written by the standard log package into
// a WARNING record
type warningWriter struct {
	target *Logger
}

func (w *warningWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	w.target.Warning(msg)
	return len(p), nil
}

// CaptureWarnings redirects the standard library log package into WARNING
// records named "warnings" on l's handlers (enable = true), or restores
// the previous output, flags and prefix (enable = false). Only one logger
// captures at a time; the latest call wins.
func (l *Logger) CaptureWarnings(enable bool) {
	capture.mu.Lock()
	defer capture.mu.Unlock()

	if !enable {
		restoreWarnings()
		return
	}

	if capture.owner == nil {
		capture.writer = log.Writer()
		capture.flags = log.Flags()
		capture.prefix = log.Prefix()
	}

	st := *l.state.Load()
	st.name = WarningsName
	capture.owner = l
	capture.target = l.derive(&st, nil)

	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(&warningWriter{target: capture.target})
}

// CapturingWarnings reports whether l currently receives the standard log
// package's output
func (l *Logger) CapturingWarnings() bool {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	return capture.owner == l
}

// releaseWarnings undoes the redirect if l owns it
func releaseWarnings(l *Logger) {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	if capture.owner == l {
		restoreWarnings()
	}
}

func restoreWarnings() {
	if capture.owner == nil {
		return
	}
	log.SetOutput(capture.writer)
	log.SetFlags(capture.flags)
	log.SetPrefix(capture.prefix)
	capture.owner = nil
	capture.target = nil
	capture.writer = nil
}
