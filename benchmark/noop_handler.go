package benchmark

import (
	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/handler"
)

// noopHandler measures the logger without any formatting or I/O
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message)
	return nil
}

func (h *noopHandler) CanRecycleEntry() bool {
	return true
}

func (h *noopHandler) Close() error {
	return nil
}
