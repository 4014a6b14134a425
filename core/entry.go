package core

import (
	"sync"
	"time"
)

// Entry represents a log record with all its metadata
type Entry struct {
	Time       time.Time
	Level      Level
	LoggerName string
	Message    string
	Fields     []Field
	Caller     CallerInfo
	Exc        *ExcInfo
	// Stack is only set when the caller asked for stack info
	Stack string
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetEntry retrieves an Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Fields = e.Fields[:0]
	e.Caller = CallerInfo{}
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.LoggerName = ""
	e.Caller = CallerInfo{}
	e.Exc = nil
	e.Stack = ""
	entryPool.Put(e)
}
