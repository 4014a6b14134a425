package core

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Frame is one resolved call stack frame
type Frame struct {
	Function string
	File     string
	Line     int
}

// String renders the frame as two lines, function then file:line
func (f Frame) String() string {
	return f.Function + "\n\t" + f.File + ":" + strconv.Itoa(f.Line)
}

// FrameFilter reports whether a frame belongs to the logging machinery
// and must be skipped when resolving the call site.
type FrameFilter func(f runtime.Frame) bool

// maxCallerDepth bounds the number of program counters inspected per call
const maxCallerDepth = 64

// FindCaller walks the stack starting at the caller of FindCaller (plus
// skip frames), skips every frame matched by internal, then skips stackLevel-1
// further frames. When stackLevel walks off the stack the first
// application frame is used. With withStack set it also returns the stack
// from the outermost frame down to the resolved one.
func FindCaller(skip int, internal FrameFilter, stackLevel int, withStack bool) (CallerInfo, string) {
	frames := callerFrames(skip+1, maxCallerDepth)

	first := -1
	for i, f := range frames {
		if internal == nil || !internal(f) {
			first = i
			break
		}
	}
	if first < 0 {
		return CallerInfo{File: "(unknown file)", Function: "(unknown function)"}, ""
	}

	idx := first
	if stackLevel > 1 && first+stackLevel-1 < len(frames) {
		idx = first + stackLevel - 1
	}

	f := frames[idx]
	info := CallerInfo{
		File:      f.File,
		ShortFile: filepath.Base(f.File),
		Line:      f.Line,
		Function:  f.Function,
		Defined:   true,
	}
	if !withStack {
		return info, ""
	}
	return info, FormatStack(toFrames(frames[idx:]))
}

// CaptureFrames returns up to max frames of application code above the
// caller of CaptureFrames, innermost first. max <= 0 means no bound.
func CaptureFrames(skip int, internal FrameFilter, max int) []Frame {
	raw := callerFrames(skip+1, maxCallerDepth)
	start := 0
	for start < len(raw) && internal != nil && internal(raw[start]) {
		start++
	}
	raw = raw[start:]
	if max > 0 && len(raw) > max {
		raw = raw[:max]
	}
	return toFrames(raw)
}

// FormatStack renders frames (innermost first) outermost first
func FormatStack(frames []Frame) string {
	var sb strings.Builder
	sb.WriteString("Stack (most recent call last):")
	for i := len(frames) - 1; i >= 0; i-- {
		sb.WriteString("\n  ")
		sb.WriteString(frames[i].Function)
		sb.WriteString("\n      ")
		sb.WriteString(frames[i].File)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(frames[i].Line))
	}
	return sb.String()
}

func callerFrames(skip, depth int) []runtime.Frame {
	pcs := make([]uintptr, depth)
	// +2 skips runtime.Callers and callerFrames itself
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	it := runtime.CallersFrames(pcs[:n])
	out := make([]runtime.Frame, 0, n)
	for {
		f, more := it.Next()
		// runtime.goexit and friends are never application code
		if !strings.HasPrefix(f.Function, "runtime.") {
			out = append(out, f)
		}
		if !more {
			break
		}
	}
	return out
}

func toFrames(raw []runtime.Frame) []Frame {
	out := make([]Frame, len(raw))
	for i, f := range raw {
		out[i] = Frame{Function: f.Function, File: f.File, Line: f.Line}
	}
	return out
}
