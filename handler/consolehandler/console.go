package consolehandler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/formatter"
	"github.com/philipp01105/tablelog/handler"
	"github.com/philipp01105/tablelog/style"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Level is the minimum level written
	Level core.Level
	// Formatter to use (default: TextFormatter styled for ColorSystem)
	Formatter formatter.Formatter
	// ColorSystem of the destination; Auto inspects Writer
	ColorSystem style.ColorSystem
	// Styles overrides entries of style.DefaultStyles
	Styles map[string]string
	// Keywords are highlighted in messages
	Keywords []string
	// Width of a row (default: formatter.DefaultWidth)
	Width int
	// TimeFormat is a strftime pattern (default: formatter.DefaultTimeFormat)
	TimeFormat string
	// IncludeCaller adds the path and line number columns
	IncludeCaller bool
	// MaxFields and MaxString bound the extra fields printed per record
	MaxFields int
	MaxString int
}

// ConsoleHandler writes rendered rows to a terminal or any io.Writer.
// Formatting and writing happen under one lock, so rows never interleave
// and time suppression follows write order.
type ConsoleHandler struct {
	*handler.Base

	mu              sync.Mutex
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	system          style.ColorSystem
	buf             bytes.Buffer
	closed          bool
}

// NewConsoleHandler creates a new console handler. It fails when a style
// override cannot be parsed.
func NewConsoleHandler(cfg ConsoleConfig) (*ConsoleHandler, error) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	system := cfg.ColorSystem.Resolve(cfg.Writer)

	writer := cfg.Writer
	if f, ok := writer.(*os.File); ok {
		writer = style.ConsoleWriter(f, system)
	}

	if cfg.Formatter == nil {
		theme, err := style.NewTheme(system, cfg.Styles, cfg.Keywords)
		if err != nil {
			return nil, fmt.Errorf("consolehandler: %w", err)
		}
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{
			IncludeCaller:     cfg.IncludeCaller,
			TimeFormat:        cfg.TimeFormat,
			Width:             cfg.Width,
			OmitRepeatedTimes: true,
			Painter:           theme,
			MaxFields:         cfg.MaxFields,
			MaxString:         cfg.MaxString,
		})
	}

	h := &ConsoleHandler{
		Base:      handler.NewBase(cfg.Level),
		writer:    writer,
		formatter: cfg.Formatter,
		system:    system,
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.buf.Grow(256)
	return h, nil
}

// ColorSystem returns the color system the handler resolved to
func (h *ConsoleHandler) ColorSystem() style.ColorSystem {
	return h.system
}

// Handle writes the entry if it passes the level and filters
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if !h.Accept(entry) {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return fmt.Errorf("consolehandler: %w", os.ErrClosed)
	}

	var data []byte
	if h.bufferFormatter != nil {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		data = h.buf.Bytes()
	} else {
		var err error
		if data, err = h.formatter.Format(entry); err != nil {
			h.Counters().IncrementFailed()
			return fmt.Errorf("consolehandler: format: %w", err)
		}
	}

	if _, err := h.writer.Write(data); err != nil {
		h.Counters().IncrementFailed()
		return fmt.Errorf("consolehandler: write: %w", err)
	}
	h.Counters().IncrementProcessed()
	return nil
}

// CanRecycleEntry returns true because the handler processes entries immediately.
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return true
}

// Close stops the handler. The writer itself is left open.
func (h *ConsoleHandler) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}
