package core

import (
	"errors"
	"fmt"
)

// ExcInfo describes an error attached to a record
type ExcInfo struct {
	// Type is the dynamic Go type of the error, e.g. "*errors.errorString"
	Type    string
	Message string
	Err     error
	// Causes holds "type: message" for each wrapped error, outermost first
	Causes []string
	// Frames is the stack at the point the error was logged, innermost first
	Frames []Frame
}

// NewExcInfo builds exception info for err. A nil err yields nil, meaning
// the record carries no exception info. maxDepth bounds the unwrap chain
// (0 = unbounded).
func NewExcInfo(err error, frames []Frame, maxDepth int) *ExcInfo {
	if err == nil {
		return nil
	}

	info := &ExcInfo{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Err:     err,
		Frames:  frames,
	}

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		if maxDepth > 0 && len(info.Causes) >= maxDepth {
			info.Causes = append(info.Causes, "...")
			break
		}
		info.Causes = append(info.Causes, fmt.Sprintf("%T: %s", cause, cause.Error()))
	}
	return info
}

// Is reports whether the attached error matches target
func (e *ExcInfo) Is(target error) bool {
	if e == nil {
		return false
	}
	return errors.Is(e.Err, target)
}
