package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/style"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// DefaultTimeFormat is the strftime pattern of the time column
const DefaultTimeFormat = "[%Y-%m-%d %X]"

// DefaultWidth is the row width used when Config.Width is unset
const DefaultWidth = 180

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller adds the path and line number columns
	IncludeCaller bool
	// TimeFormat is a strftime pattern (empty for DefaultTimeFormat)
	TimeFormat string
	// Width is the total width of a text row (0 for DefaultWidth)
	Width int
	// OmitRepeatedTimes blanks a time column equal to the previous row's
	OmitRepeatedTimes bool
	// Painter styles text output; nil means no styling
	Painter style.Painter
	// MaxFields bounds the extra fields printed per record (0 = all)
	MaxFields int
	// MaxString truncates long field values to this display width (0 = no limit)
	MaxString int
}

func (c Config) withDefaults() Config {
	if c.TimeFormat == "" {
		c.TimeFormat = DefaultTimeFormat
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Painter == nil {
		c.Painter = style.Plain
	}
	return c
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
