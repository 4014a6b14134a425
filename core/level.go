package core

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Level represents the severity of a log entry. Higher is more severe.
type Level int

const (
	// TraceLevel sits below debug for very chatty diagnostics
	TraceLevel Level = 5
	// DebugLevel for detailed debugging information
	DebugLevel Level = 10
	// InfoLevel for general informational messages (default)
	InfoLevel Level = 20
	// SuccessLevel marks a completed operation
	SuccessLevel Level = 25
	// WarningLevel for warning messages
	WarningLevel Level = 30
	// ErrorLevel for error messages
	ErrorLevel Level = 40
	// CriticalLevel for failures the program cannot recover from
	CriticalLevel Level = 50
)

var (
	levelMu    sync.RWMutex
	levelNames = map[Level]string{
		TraceLevel:    "TRACE",
		DebugLevel:    "DEBUG",
		InfoLevel:     "INFO",
		SuccessLevel:  "SUCCESS",
		WarningLevel:  "WARNING",
		ErrorLevel:    "ERROR",
		CriticalLevel: "CRITICAL",
	}
	nameLevels = map[string]Level{
		"TRACE":    TraceLevel,
		"DEBUG":    DebugLevel,
		"INFO":     InfoLevel,
		"SUCCESS":  SuccessLevel,
		"WARNING":  WarningLevel,
		"WARN":     WarningLevel,
		"ERROR":    ErrorLevel,
		"CRITICAL": CriticalLevel,
		"FATAL":    CriticalLevel,
	}
)

// AddLevelName registers a name for a level. Registering an existing level
// replaces its display name; the old name keeps parsing.
func AddLevelName(level Level, name string) {
	levelMu.Lock()
	defer levelMu.Unlock()
	levelNames[level] = name
	nameLevels[strings.ToUpper(name)] = level
}

// String returns the registered name of the level
func (l Level) String() string {
	levelMu.RLock()
	name, ok := levelNames[l]
	levelMu.RUnlock()
	if ok {
		return name
	}
	return "Level " + strconv.Itoa(int(l))
}

// ParseLevel converts a level name or number to a Level
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid level %q: must not be negative", s)
		}
		return Level(n), nil
	}

	levelMu.RLock()
	level, ok := nameLevels[strings.ToUpper(s)]
	levelMu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}
