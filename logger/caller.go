package logger

import (
	"reflect"
	"runtime"
	"strings"
)

var (
	// loggerPkg is this package's import path
	loggerPkg = reflect.TypeOf((*Logger)(nil)).Elem().PkgPath()
	// handlerPkg covers handler and its subpackages
	handlerPkg = strings.TrimSuffix(loggerPkg, "logger") + "handler"
)

// isInternalFrame reports whether f belongs to the logging machinery:
// this package, the handler packages, or the standard library log
// package when warnings are captured. Test files of these packages count
// as application code.
func isInternalFrame(f runtime.Frame) bool {
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	fn := f.Function
	switch {
	case strings.HasPrefix(fn, loggerPkg+"."):
		return true
	case strings.HasPrefix(fn, handlerPkg+".") || strings.HasPrefix(fn, handlerPkg+"/"):
		return true
	case strings.HasPrefix(fn, "log."):
		return true
	}
	return false
}
