package zaphandler

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/handler"
)

// Core implements zapcore.Core on top of a handler.Handler, so a
// *zap.Logger can write through the console and file handlers.
type Core struct {
	zapcore.LevelEnabler

	handler handler.Handler
	fields  []core.Field
}

// NewCore creates a zapcore.Core that passes entries enabled by enab to h
func NewCore(h handler.Handler, enab zapcore.LevelEnabler) *Core {
	return &Core{LevelEnabler: enab, handler: h}
}

// With adds structured context to the Core.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := &Core{
		LevelEnabler: c.LevelEnabler,
		handler:      c.handler,
		fields:       make([]core.Field, len(c.fields), len(c.fields)+len(fields)),
	}
	copy(clone.fields, c.fields)
	for _, f := range fields {
		clone.fields = appendField(clone.fields, f)
	}
	return clone
}

// Check adds the core to the checked entry if the level is enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the zap entry and passes it to the handler.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()

	entry.Time = ent.Time
	entry.Level = LevelFromZap(ent.Level)
	entry.LoggerName = ent.LoggerName
	entry.Message = ent.Message
	entry.Stack = ent.Stack
	if ent.Caller.Defined {
		entry.Caller = core.CallerInfo{
			File:      ent.Caller.File,
			ShortFile: filepath.Base(ent.Caller.File),
			Line:      ent.Caller.Line,
			Function:  ent.Caller.Function,
			Defined:   true,
		}
	}

	entry.Fields = append(entry.Fields, c.fields...)
	for _, f := range fields {
		entry.Fields = appendField(entry.Fields, f)
	}
	err := c.handler.Handle(entry)
	if handler.CanRecycle(c.handler) {
		core.PutEntry(entry)
	}
	return err
}

// Sync is a no-op: handlers write synchronously.
func (c *Core) Sync() error {
	return nil
}

// LevelFromZap converts a zapcore.Level to a core.Level. DPanic, Panic
// and Fatal all map to CRITICAL.
func LevelFromZap(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return core.CriticalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarningLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendField converts a zap field. Types without a direct counterpart
// are encoded with a MapObjectEncoder and carried as AnyType.
func appendField(fields []core.Field, f zapcore.Field) []core.Field {
	switch f.Type {
	case zapcore.SkipType:
		return fields
	case zapcore.StringType:
		return append(fields, core.Field{Key: f.Key, Type: core.StringType, Str: f.String})
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return append(fields, core.Field{Key: f.Key, Type: core.Int64Type, Int64: f.Integer})
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type, zapcore.UintptrType:
		return append(fields, core.Field{Key: f.Key, Type: core.AnyType, Any: uint64(f.Integer)})
	case zapcore.BoolType:
		return append(fields, core.Field{Key: f.Key, Type: core.BoolType, Int64: f.Integer})
	case zapcore.DurationType:
		return append(fields, core.Field{Key: f.Key, Type: core.DurationType, Int64: f.Integer})
	case zapcore.TimeType:
		return append(fields, core.Field{Key: f.Key, Type: core.TimeType, Int64: f.Integer})
	case zapcore.TimeFullType:
		if t, ok := f.Interface.(time.Time); ok {
			return append(fields, core.Field{Key: f.Key, Type: core.TimeType, Int64: t.UnixNano()})
		}
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			return append(fields, core.Field{Key: f.Key, Type: core.ErrorType, Str: err.Error(), Any: err})
		}
	case zapcore.StringerType:
		if s, ok := f.Interface.(fmt.Stringer); ok {
			return append(fields, core.Field{Key: f.Key, Type: core.StringType, Str: s.String()})
		}
	}

	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	return append(fields, core.Field{Key: f.Key, Type: core.AnyType, Any: enc.Fields[f.Key]})
}
