package logger

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/tablelog/config"
	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/handler"
	"github.com/philipp01105/tablelog/handler/sloghandler"
	"github.com/philipp01105/tablelog/handler/zaphandler"
)

// state is the part of a Logger that can be swapped while other
// goroutines are logging. It is never modified after it is stored.
type state struct {
	name  string
	level core.Level
}

// Logger writes records to a set of handlers. Name and level can change
// at runtime; everything else is fixed at construction and shared with
// child loggers created by With and Named.
type Logger struct {
	state atomic.Pointer[state]

	handlers      *handler.MultiHandler
	fields        []core.Field
	includeCaller bool
	maxFrames     int
	maxDepth      int
	reporter      ErrorReporter
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name          string
	handlers      []handler.Handler
	level         core.Level
	fields        []core.Field
	includeCaller bool
	maxFrames     int
	maxDepth      int
	reporter      ErrorReporter
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:     core.InfoLevel, // Default level
		maxFrames: 20,
		reporter:  StderrReporter,
	}
}

// WithName sets the logger name stored on every record
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithHandler adds a handler. Every record that passes the logger level
// is offered to each handler in the order they were added.
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handlers = append(b.handlers, h)
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithTraceback bounds exception info: maxFrames stack frames (0 = all)
// and maxDepth wrapped errors (0 = all).
func (b *Builder) WithTraceback(maxFrames, maxDepth int) *Builder {
	b.maxFrames = maxFrames
	b.maxDepth = maxDepth
	return b
}

// WithErrorReporter sets where handler failures are reported
func (b *Builder) WithErrorReporter(r ErrorReporter) *Builder {
	b.reporter = r
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	reporter := b.reporter
	if reporter == nil {
		reporter = DiscardReporter
	}
	l := &Logger{
		handlers:      handler.NewMultiHandler(b.handlers...),
		fields:        append([]core.Field(nil), b.fields...),
		includeCaller: b.includeCaller,
		maxFrames:     b.maxFrames,
		maxDepth:      b.maxDepth,
		reporter:      reporter,
	}
	l.state.Store(&state{name: b.name, level: b.level})
	return l
}

// derive returns a logger sharing l's handlers with the given state
func (l *Logger) derive(st *state, fields []core.Field) *Logger {
	child := &Logger{
		handlers:      l.handlers,
		fields:        fields,
		includeCaller: l.includeCaller,
		maxFrames:     l.maxFrames,
		maxDepth:      l.maxDepth,
		reporter:      l.reporter,
	}
	child.state.Store(st)
	return child
}

// With creates a new Logger with additional fields. The child starts
// with the parent's current name and level.
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	st := *l.state.Load()
	return l.derive(&st, newFields)
}

// Named returns a child logger called "<name>.<child>" that writes to the
// same handlers.
func (l *Logger) Named(child string) *Logger {
	st := *l.state.Load()
	if st.name != "" {
		st.name += "." + child
	} else {
		st.name = child
	}
	return l.derive(&st, l.fields)
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.state.Load().name
}

// Level returns the minimum level
func (l *Logger) Level() core.Level {
	return l.state.Load().level
}

// Enabled reports whether a record at level would be passed to handlers
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.Level()
}

// SetLevel changes the minimum level
func (l *Logger) SetLevel(level core.Level) {
	for {
		old := l.state.Load()
		if l.state.CompareAndSwap(old, &state{name: old.name, level: level}) {
			return
		}
	}
}

// Scoped runs fn with the name and level taken from cfg, then restores
// the previous name and level, also when fn panics. Concurrent log calls
// see either the old or the new pair, never a mix. The restore overwrites
// any SetLevel made while fn runs, from fn or from another goroutine.
func (l *Logger) Scoped(cfg *config.Config, fn func()) {
	prev := l.state.Swap(&state{name: cfg.Name, level: cfg.EffectiveLevel()})
	defer l.state.Store(prev)
	fn()
}

// AddHandler registers another handler
func (l *Logger) AddHandler(h handler.Handler) {
	l.handlers.Add(h)
}

// AddFilter adds f to every currently registered handler
func (l *Logger) AddFilter(f core.Filter) {
	l.handlers.AddFilter(f)
}

// Handlers returns the registered handlers
func (l *Logger) Handlers() []handler.Handler {
	return l.handlers.Handlers()
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	l.log(level, msg, fields)
}

// Logf logs a formatted message at the specified level
func (l *Logger) Logf(level core.Level, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}
	l.log(level, fmt.Sprintf(format, args...), nil)
}

// log builds the entry and hands it to the handlers. Option fields
// (ExcInfo, StackInfo, StackLevel) steer this call and are not stored.
// The level check and the logger name come from a single state load.
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	st := l.state.Load()
	// Level check optimization - exit early BEFORE any allocations
	if level < st.level {
		return
	}

	entry := core.GetEntry()
	entry.Time = time.Now()
	entry.Level = level
	entry.LoggerName = st.name
	entry.Message = msg

	// Add logger's default fields
	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}

	var (
		excErr     error
		withStack  bool
		stackLevel = 1
	)
	for _, f := range fields {
		switch f.Type {
		case core.ExcInfoType:
			excErr, _ = f.Any.(error)
		case core.StackInfoType:
			withStack = true
		case core.StackLevelType:
			stackLevel = int(f.Int64)
		default:
			entry.Fields = append(entry.Fields, f)
		}
	}

	if l.includeCaller || withStack || stackLevel > 1 {
		entry.Caller, entry.Stack = core.FindCaller(0, isInternalFrame, stackLevel, withStack)
	}
	if excErr != nil {
		frames := core.CaptureFrames(0, isInternalFrame, l.maxFrames)
		entry.Exc = core.NewExcInfo(excErr, frames, l.maxDepth)
	}

	if err := l.handlers.Handle(entry); err != nil {
		l.reporter.Report(err, entry)
	}
	if l.handlers.CanRecycleEntry() {
		core.PutEntry(entry)
	}
}

// CanRecycleEntry reports whether every registered handler is done with
// an entry when Handle returns
func (l *Logger) CanRecycleEntry() bool {
	return l.handlers.CanRecycleEntry()
}

// Handle passes an entry built elsewhere (the slog and zap bridges) to
// the handlers if it clears the logger level. It lets a Logger serve as
// a handler.Handler.
func (l *Logger) Handle(entry *core.Entry) error {
	st := l.state.Load()
	if entry.Level < st.level {
		return nil
	}
	if entry.LoggerName == "" {
		entry.LoggerName = st.name
	}
	if len(l.fields) > 0 {
		entry.Fields = append(l.fields[:len(l.fields):len(l.fields)], entry.Fields...)
	}
	return l.handlers.Handle(entry)
}

// Slog returns a *slog.Logger that writes through l
func (l *Logger) Slog() *slog.Logger {
	return slog.New(sloghandler.New(l, sloghandler.Options{AddSource: true}))
}

// Zap returns a *zap.Logger that writes through l
func (l *Logger) Zap(opts ...zap.Option) *zap.Logger {
	enab := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return l.Enabled(zaphandler.LevelFromZap(lvl))
	})
	return zap.New(zaphandler.NewCore(l, enab), append([]zap.Option{zap.AddCaller()}, opts...)...)
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	l.log(core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.log(core.InfoLevel, msg, fields)
}

// Success logs a completed operation
func (l *Logger) Success(msg string, fields ...core.Field) {
	l.log(core.SuccessLevel, msg, fields)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields ...core.Field) {
	l.log(core.WarningLevel, msg, fields)
}

// Warn is an alias for Warning
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.log(core.WarningLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.log(core.ErrorLevel, msg, fields)
}

// Critical logs a failure the program cannot recover from. It does not
// exit.
func (l *Logger) Critical(msg string, fields ...core.Field) {
	l.log(core.CriticalLevel, msg, fields)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	if core.TraceLevel < l.Level() {
		return
	}
	l.log(core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.Level() {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.Level() {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Successf logs a completed operation with formatting
func (l *Logger) Successf(format string, args ...interface{}) {
	if core.SuccessLevel < l.Level() {
		return
	}
	l.log(core.SuccessLevel, fmt.Sprintf(format, args...), nil)
}

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...interface{}) {
	if core.WarningLevel < l.Level() {
		return
	}
	l.log(core.WarningLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf is an alias for Warningf
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarningLevel < l.Level() {
		return
	}
	l.log(core.WarningLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.Level() {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) {
	if core.CriticalLevel < l.Level() {
		return
	}
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil)
}

// Close closes the logger's handlers and stops warning capture if this
// logger installed it.
func (l *Logger) Close() error {
	releaseWarnings(l)
	return l.handlers.Close()
}
