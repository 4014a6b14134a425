package handler_test

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/formatter"
	"github.com/philipp01105/tablelog/handler"
	"github.com/philipp01105/tablelog/handler/consolehandler"
	"github.com/philipp01105/tablelog/handler/filehandler"
)

// slowWriter simulates slow disk I/O
type slowWriter struct {
	delay time.Duration
	mu    sync.Mutex
}

func (w *slowWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	time.Sleep(w.delay)
	return len(p), nil
}

// newStandardHandlers mirrors the logger's default wiring: a console
// handler plus a debug and an error file.
func newStandardHandlers(tb testing.TB, console io.Writer) *handler.MultiHandler {
	tb.Helper()
	dir := tb.TempDir()

	c, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{Writer: console, IncludeCaller: true})
	if err != nil {
		tb.Fatal(err)
	}
	debug, err := filehandler.NewFileHandler(filehandler.FileConfig{
		Filename: filepath.Join(dir, "debug", "debug.log"),
		Level:    core.DebugLevel,
		MaxSize:  1000000,
	})
	if err != nil {
		tb.Fatal(err)
	}
	errs, err := filehandler.NewFileHandler(filehandler.FileConfig{
		Filename: filepath.Join(dir, "error", "error.log"),
		Level:    core.ErrorLevel,
		MaxSize:  1000000,
	})
	if err != nil {
		tb.Fatal(err)
	}
	return handler.NewMultiHandler(c, debug, errs)
}

// BenchmarkMultiGoroutineContention tests the fan-out under concurrent load
func BenchmarkMultiGoroutineContention(b *testing.B) {
	h := newStandardHandlers(b, io.Discard)
	defer h.Close()

	entry := core.GetEntry()
	entry.Level = core.InfoLevel
	entry.Message = "concurrent log"

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = h.Handle(entry)
		}
	})
}

// BenchmarkSlowDiskSimulation shows that a slow writer throttles callers
// instead of losing records
func BenchmarkSlowDiskSimulation(b *testing.B) {
	h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer: &slowWriter{delay: 10 * time.Microsecond},
	})
	if err != nil {
		b.Fatal(err)
	}
	defer h.Close()

	entry := core.GetEntry()
	entry.Level = core.InfoLevel
	entry.Message = "slow disk test"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Handle(entry)
	}
	b.StopTimer()

	b.ReportMetric(float64(h.Stats().ProcessedTotal), "processed")
}

// BenchmarkHighThroughput tests maximum throughput
func BenchmarkHighThroughput(b *testing.B) {
	h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    io.Discard,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	if err != nil {
		b.Fatal(err)
	}
	defer h.Close()

	entry := core.GetEntry()
	entry.Level = core.InfoLevel
	entry.Message = "high throughput test"

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = h.Handle(entry)
		}
	})
	b.StopTimer()

	b.ReportMetric(float64(h.Stats().ProcessedTotal), "processed")
}

// TestConcurrentStats verifies no record is lost under concurrency
func TestConcurrentStats(t *testing.T) {
	h := newStandardHandlers(t, io.Discard)

	const numGoroutines = 10
	const logsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < logsPerGoroutine; j++ {
				entry := core.GetEntry()
				entry.Level = core.ErrorLevel
				entry.Message = "concurrent"
				if err := h.Handle(entry); err != nil {
					t.Error(err)
				}
				core.PutEntry(entry)
			}
		}()
	}
	wg.Wait()

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	for _, child := range h.Handlers() {
		stats := child.(handler.StatsProvider).Stats()
		if stats.ProcessedTotal != numGoroutines*logsPerGoroutine {
			t.Errorf("%T processed %d, want %d", child, stats.ProcessedTotal, numGoroutines*logsPerGoroutine)
		}
	}
}
