package handler

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/philipp01105/tablelog/core"
)

// MultiHandler sends log entries to multiple handlers. Handlers may be
// added while other goroutines are logging.
type MultiHandler struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: append([]Handler(nil), handlers...)}
}

// Add registers another handler
func (h *MultiHandler) Add(child Handler) {
	h.mu.Lock()
	h.handlers = append(h.handlers, child)
	h.mu.Unlock()
}

// Handlers returns a copy of the registered handlers
func (h *MultiHandler) Handlers() []Handler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Handler(nil), h.handlers...)
}

// AddFilter adds f to every registered handler that has a filter chain
func (h *MultiHandler) AddFilter(f core.Filter) {
	for _, child := range h.Handlers() {
		if fh, ok := child.(Filterable); ok {
			fh.AddFilter(f)
		}
	}
}

// Handle sends the entry to every handler, in registration order. A
// failing handler does not stop the others; all errors are returned
// combined.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	h.mu.RLock()
	handlers := h.handlers
	h.mu.RUnlock()

	var err error
	for _, child := range handlers {
		err = multierr.Append(err, child.Handle(entry))
	}
	return err
}

// CanRecycleEntry reports whether every child releases the entry when
// Handle returns
func (h *MultiHandler) CanRecycleEntry() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, child := range h.handlers {
		if !CanRecycle(child) {
			return false
		}
	}
	return true
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, child := range h.Handlers() {
		err = multierr.Append(err, child.Close())
	}
	return err
}
