package sloghandler

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/handler"
)

// Options configures a Handler
type Options struct {
	// Level is the minimum level passed on (default: TRACE, everything)
	Level core.Level
	// Name is stored as the logger name of every entry
	Name string
	// AddSource resolves the caller from the record's program counter
	AddSource bool
}

// Handler is an adapter that implements slog.Handler using a handler.Handler.
// This allows log/slog to write through the console and file handlers.
type Handler struct {
	handler handler.Handler
	opts    Options
	attrs   []core.Field
	group   string
}

// New creates a new slog.Handler adapter wrapping h.
func New(h handler.Handler, opts Options) *Handler {
	return &Handler{handler: h, opts: opts}
}

// Enabled reports whether the handler handles records at the given level.
func (s *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return LevelFromSlog(level) >= s.opts.Level
}

// Handle converts the record to a core.Entry and passes it to the wrapped handler.
func (s *Handler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()

	entry.Time = record.Time
	entry.Level = LevelFromSlog(record.Level)
	entry.LoggerName = s.opts.Name
	entry.Message = record.Message

	if s.opts.AddSource && record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		entry.Caller = core.CallerInfo{
			File:      frame.File,
			ShortFile: filepath.Base(frame.File),
			Line:      frame.Line,
			Function:  frame.Function,
			Defined:   frame.File != "",
		}
	}

	entry.Fields = append(entry.Fields, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = appendAttr(entry.Fields, s.group, a)
		return true
	})

	err := s.handler.Handle(entry)
	if handler.CanRecycle(s.handler) {
		core.PutEntry(entry)
	}
	return err
}

// WithAttrs returns a new Handler with additional attributes.
func (s *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &Handler{
		handler: s.handler,
		opts:    s.opts,
		attrs:   newAttrs,
		group:   s.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (s *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	return &Handler{
		handler: s.handler,
		opts:    s.opts,
		attrs:   s.attrs[:len(s.attrs):len(s.attrs)],
		group:   joinKey(s.group, name),
	}
}

// LevelFromSlog converts a slog.Level to a core.Level. Levels between
// the named slog levels map to the next lower core level.
func LevelFromSlog(level slog.Level) core.Level {
	switch {
	case level > slog.LevelError:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level > slog.LevelInfo:
		return core.SuccessLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

// appendAttr converts a slog.Attr to fields, flattening groups into
// dotted keys.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}
	key := joinKey(group, a.Key)

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(fields, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(fields, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(fields, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		// an inline group (empty key) adds its members at the current level
		if a.Key == "" {
			key = group
		}
		for _, member := range a.Value.Group() {
			fields = appendAttr(fields, key, member)
		}
		return fields
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(fields, core.Field{Key: key, Type: core.ErrorType, Str: err.Error(), Any: err})
		}
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
