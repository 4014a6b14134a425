package logger

import (
	"github.com/philipp01105/tablelog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel    = core.TraceLevel
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	SuccessLevel  = core.SuccessLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a level name or number to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}

// AddLevelName registers a display name for a custom level
func AddLevelName(level Level, name string) {
	core.AddLevelName(level, name)
}
