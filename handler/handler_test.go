package handler

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/multierr"

	"github.com/philipp01105/tablelog/core"
)

// recordingHandler remembers the messages it accepted
type recordingHandler struct {
	*Base
	mu       sync.Mutex
	messages []string
	err      error
	closed   bool
}

func newRecordingHandler(level core.Level) *recordingHandler {
	return &recordingHandler{Base: NewBase(level)}
}

func (h *recordingHandler) Handle(entry *core.Entry) error {
	if !h.Accept(entry) {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		h.Counters().IncrementFailed()
		return h.err
	}
	h.messages = append(h.messages, entry.Message)
	h.Counters().IncrementProcessed()
	return nil
}

func (h *recordingHandler) Close() error {
	h.closed = true
	return nil
}

func (h *recordingHandler) got() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return strings.Join(h.messages, ",")
}

func newEntry(level core.Level, name, msg string) *core.Entry {
	return &core.Entry{Level: level, LoggerName: name, Message: msg}
}

func TestBase_Accept(t *testing.T) {
	tests := []struct {
		name    string
		level   core.Level
		entry   *core.Entry
		filters []core.Filter
		want    bool
	}{
		{"at threshold", core.InfoLevel, newEntry(core.InfoLevel, "", "m"), nil, true},
		{"below threshold", core.InfoLevel, newEntry(core.DebugLevel, "", "m"), nil, false},
		{"above threshold", core.InfoLevel, newEntry(core.CriticalLevel, "", "m"), nil, true},
		{"custom level between", core.SuccessLevel, newEntry(core.Level(27), "", "m"), nil, true},
		{"root allowed", core.DebugLevel, newEntry(core.InfoLevel, "app.db", "m"), []core.Filter{core.AllowRoots("app")}, true},
		{"root rejected", core.DebugLevel, newEntry(core.InfoLevel, "lib", "m"), []core.Filter{core.AllowRoots("app")}, false},
		{
			"every filter must accept", core.DebugLevel, newEntry(core.InfoLevel, "app", "m"),
			[]core.Filter{
				core.AllowRoots("app"),
				core.FilterFunc(func(e *core.Entry) bool { return e.Message != "m" }),
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBase(tt.level)
			for _, f := range tt.filters {
				b.AddFilter(f)
			}
			if got := b.Accept(tt.entry); got != tt.want {
				t.Errorf("Accept() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBase_Counters(t *testing.T) {
	b := NewBase(core.InfoLevel)
	b.AddFilter(core.AllowRoots("app"))

	b.Accept(newEntry(core.DebugLevel, "app", "below"))
	b.Accept(newEntry(core.InfoLevel, "lib", "filtered"))
	b.Accept(newEntry(core.InfoLevel, "lib", "filtered"))

	snap := b.Stats()
	if snap.FilteredTotal != 2 {
		t.Errorf("FilteredTotal = %d, want 2", snap.FilteredTotal)
	}
	if snap.ProcessedTotal != 0 || snap.FailedTotal != 0 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestBase_SetLevel(t *testing.T) {
	b := NewBase(core.ErrorLevel)
	if b.Level() != core.ErrorLevel {
		t.Fatalf("Level() = %v", b.Level())
	}
	b.SetLevel(core.TraceLevel)
	if !b.Accept(newEntry(core.TraceLevel, "", "m")) {
		t.Error("Expected TRACE to pass after SetLevel")
	}
}

func TestStats(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.IncrementProcessed()
				s.IncrementFiltered()
				s.IncrementFailed()
			}
		}()
	}
	wg.Wait()

	snap := s.GetSnapshot()
	if snap.ProcessedTotal != 1000 || snap.FilteredTotal != 1000 || snap.FailedTotal != 1000 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	s.Reset()
	if s.GetSnapshot() != (Snapshot{}) {
		t.Errorf("Expected zero snapshot after Reset, got %+v", s.GetSnapshot())
	}
}

func TestMultiHandler(t *testing.T) {
	h1 := newRecordingHandler(core.DebugLevel)
	h2 := newRecordingHandler(core.ErrorLevel)

	multi := NewMultiHandler(h1, h2)

	_ = multi.Handle(newEntry(core.InfoLevel, "", "info"))
	_ = multi.Handle(newEntry(core.ErrorLevel, "", "error"))

	if h1.got() != "info,error" {
		t.Errorf("handler 1 got %q", h1.got())
	}
	if h2.got() != "error" {
		t.Errorf("handler 2 got %q", h2.got())
	}

	if err := multi.Close(); err != nil {
		t.Fatal(err)
	}
	if !h1.closed || !h2.closed {
		t.Error("Expected Close to reach every handler")
	}
}

func TestMultiHandler_Add(t *testing.T) {
	multi := NewMultiHandler()
	h := newRecordingHandler(core.DebugLevel)
	multi.Add(h)

	_ = multi.Handle(newEntry(core.InfoLevel, "", "late"))
	if h.got() != "late" {
		t.Errorf("got %q", h.got())
	}
	if len(multi.Handlers()) != 1 {
		t.Errorf("Handlers() = %d, want 1", len(multi.Handlers()))
	}
}

func TestMultiHandler_AddFilter(t *testing.T) {
	h1 := newRecordingHandler(core.DebugLevel)
	h2 := newRecordingHandler(core.DebugLevel)
	multi := NewMultiHandler(h1, h2)

	multi.AddFilter(core.AllowRoots("app"))

	_ = multi.Handle(newEntry(core.InfoLevel, "lib", "dropped"))
	_ = multi.Handle(newEntry(core.InfoLevel, "app", "kept"))

	for i, h := range []*recordingHandler{h1, h2} {
		if h.got() != "kept" {
			t.Errorf("handler %d got %q", i, h.got())
		}
	}
}

func TestMultiHandler_Errors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	h1 := newRecordingHandler(core.DebugLevel)
	h1.err = errA
	h2 := newRecordingHandler(core.DebugLevel)
	h3 := newRecordingHandler(core.DebugLevel)
	h3.err = errB

	multi := NewMultiHandler(h1, h2, h3)
	err := multi.Handle(newEntry(core.InfoLevel, "", "m"))

	if h2.got() != "m" {
		t.Error("Expected a failing handler not to stop the others")
	}
	errs := multierr.Errors(err)
	if len(errs) != 2 || !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Expected both errors, got %v", err)
	}
}

func TestMultiHandler_ConcurrentAdd(t *testing.T) {
	multi := NewMultiHandler()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			multi.Add(newRecordingHandler(core.DebugLevel))
		}()
		go func() {
			defer wg.Done()
			_ = multi.Handle(newEntry(core.InfoLevel, "", "m"))
		}()
	}
	wg.Wait()

	if len(multi.Handlers()) != 4 {
		t.Errorf("Handlers() = %d, want 4", len(multi.Handlers()))
	}
}

// releasingHandler is a recordingHandler that never keeps entries
type releasingHandler struct {
	*recordingHandler
}

func (releasingHandler) CanRecycleEntry() bool { return true }

func TestMultiHandler_CanRecycleEntry(t *testing.T) {
	multi := NewMultiHandler(releasingHandler{newRecordingHandler(core.DebugLevel)})
	if !multi.CanRecycleEntry() {
		t.Fatal("CanRecycleEntry() = false with only releasing children")
	}
	if !CanRecycle(multi) {
		t.Error("CanRecycle(multi) = false")
	}

	// A handler that does not say otherwise may keep the entry
	multi.Add(newRecordingHandler(core.DebugLevel))
	if multi.CanRecycleEntry() {
		t.Error("CanRecycleEntry() = true after adding a retaining child")
	}
	if CanRecycle(newRecordingHandler(core.DebugLevel)) {
		t.Error("CanRecycle() = true for a handler without CanRecycleEntry")
	}
}
