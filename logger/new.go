package logger

import (
	"fmt"
	"os"

	"github.com/philipp01105/tablelog/config"
	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/formatter"
	"github.com/philipp01105/tablelog/handler"
	"github.com/philipp01105/tablelog/handler/consolehandler"
	"github.com/philipp01105/tablelog/handler/filehandler"
)

// New builds the standard logger described by cfg: a console handler at
// the logger level, <log dir>/debug/debug.log at DEBUG and
// <log dir>/error/error.log at ERROR, both rotated at
// cfg.MaxLogFileSize. A nil cfg uses config.Default. When
// cfg.CaptureWarnings is set the standard log package is redirected into
// the new logger.
func New(cfg *config.Config) (*Logger, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	limits := cfg.Traceback.Locals
	console, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:        os.Stdout,
		Level:         cfg.EffectiveLevel(),
		ColorSystem:   cfg.ColorSystemValue(),
		Styles:        cfg.Styles,
		Keywords:      cfg.Keywords,
		Width:         cfg.Width,
		TimeFormat:    cfg.TimeFormat,
		IncludeCaller: true,
		MaxFields:     limits.MaxLength,
		MaxString:     limits.MaxString,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	handlers := []handler.Handler{console}
	closeAll := func() {
		for _, h := range handlers {
			h.Close()
		}
	}

	files := []struct {
		name  string
		level core.Level
	}{
		{cfg.DebugLogFile(), core.DebugLevel},
		{cfg.ErrorLogFile(), core.ErrorLevel},
	}
	for _, f := range files {
		fh, err := filehandler.NewFileHandler(filehandler.FileConfig{
			Filename:   f.name,
			Level:      f.level,
			Formatter:  fileFormatter(cfg),
			MaxSize:    int64(cfg.MaxLogFileSize),
			MaxBackups: cfg.MaxBackups,
		})
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("logger: %w", err)
		}
		handlers = append(handlers, fh)
	}

	b := NewBuilder().
		WithName(cfg.Name).
		WithLevel(cfg.EffectiveLevel()).
		WithCaller(true).
		WithTraceback(cfg.Traceback.MaxFrames, limits.MaxDepth)
	for _, h := range handlers {
		b.WithHandler(h)
	}
	l := b.Build()

	if cfg.CaptureWarnings {
		l.CaptureWarnings(true)
	}
	return l, nil
}

// fileFormatter returns a fresh formatter for one log file, so time
// suppression in one file does not depend on another.
func fileFormatter(cfg *config.Config) formatter.Formatter {
	fc := formatter.Config{
		IncludeCaller:     true,
		TimeFormat:        cfg.TimeFormat,
		Width:             cfg.Width,
		OmitRepeatedTimes: true,
		MaxFields:         cfg.Traceback.Locals.MaxLength,
		MaxString:         cfg.Traceback.Locals.MaxString,
	}
	if cfg.FileFormat == "json" {
		return formatter.NewJSONFormatter(fc)
	}
	return formatter.NewTextFormatter(fc)
}
