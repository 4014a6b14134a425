package logger

import (
	"fmt"

	"github.com/philipp01105/tablelog/core"
)

// PanicError wraps a recovered panic value that is not an error
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Exception logs msg at ERROR with err attached as exception info. A nil
// err logs the message without exception info; an empty msg is allowed.
func (l *Logger) Exception(err error, msg string, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, msg, append(fields[:len(fields):len(fields)], ExcInfo(err)))
}

// Exceptionf is Exception with a formatted message
func (l *Logger) Exceptionf(err error, format string, args ...interface{}) {
	if core.ErrorLevel < l.Level() {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), []core.Field{ExcInfo(err)})
}

// Recover logs a panic in progress as an exception and panics again with
// the same value. Use it directly with defer:
//
//	defer log.Recover("worker crashed")
func (l *Logger) Recover(msg string) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = &PanicError{Value: r}
	}
	l.log(core.ErrorLevel, msg, []core.Field{ExcInfo(err)})
	panic(r)
}
