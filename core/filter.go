package core

import (
	"reflect"
	"strings"
	"sync"
	"unsafe"
)

// Filter decides whether a record may be emitted
type Filter interface {
	Filter(e *Entry) bool
}

// FilterFunc adapts a plain function to Filter
type FilterFunc func(e *Entry) bool

// Filter calls f(e)
func (f FilterFunc) Filter(e *Entry) bool {
	return f(e)
}

// LogFilter is an ordered AND-chain of filters. A record passes only if
// every registered filter accepts it; an empty chain accepts everything.
type LogFilter struct {
	mu      sync.RWMutex
	filters []Filter
}

// NewLogFilter creates a chain holding the given filters
func NewLogFilter(filters ...Filter) *LogFilter {
	lf := &LogFilter{}
	for _, f := range filters {
		lf.AddFilter(f)
	}
	return lf
}

// AddFilter appends f unless the same filter is already registered
func (lf *LogFilter) AddFilter(f Filter) *LogFilter {
	if f == nil {
		return lf
	}
	lf.mu.Lock()
	defer lf.mu.Unlock()
	for _, existing := range lf.filters {
		if sameFilter(existing, f) {
			return lf
		}
	}
	lf.filters = append(lf.filters, f)
	return lf
}

// Accept reports whether every filter accepts e
func (lf *LogFilter) Accept(e *Entry) bool {
	lf.mu.RLock()
	defer lf.mu.RUnlock()
	for _, f := range lf.filters {
		if !f.Filter(e) {
			return false
		}
	}
	return true
}

// Len returns the number of registered filters
func (lf *LogFilter) Len() int {
	lf.mu.RLock()
	defer lf.mu.RUnlock()
	return len(lf.filters)
}

// Filter lets a LogFilter be nested inside another chain
func (lf *LogFilter) Filter(e *Entry) bool {
	return lf.Accept(e)
}

// sameFilter reports whether b is a filter already registered as a.
// Comparable filters are compared with ==. A FilterFunc matches only the
// same function value: the same top-level function, or the very same
// closure or method value. Other function types never match.
func sameFilter(a, b Filter) bool {
	if fa, ok := a.(FilterFunc); ok {
		fb, ok := b.(FilterFunc)
		return ok && funcValue(fa) == funcValue(fb)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// funcValue returns the closure pointer behind f. Closures capturing
// different values and method values on different receivers each get
// their own.
func funcValue(f FilterFunc) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&f))
}

// RootFilter accepts records whose logger name starts with an allowed
// root component (the part before the first dot).
type RootFilter struct {
	roots map[string]struct{}
}

// AllowRoots creates a RootFilter for the given root names
func AllowRoots(roots ...string) *RootFilter {
	rf := &RootFilter{roots: make(map[string]struct{}, len(roots))}
	for _, r := range roots {
		rf.roots[r] = struct{}{}
	}
	return rf
}

// Filter implements Filter
func (rf *RootFilter) Filter(e *Entry) bool {
	root := e.LoggerName
	if i := strings.IndexByte(root, '.'); i >= 0 {
		root = root[:i]
	}
	_, ok := rf.roots[root]
	return ok
}
