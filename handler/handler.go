package handler

import (
	"sync/atomic"

	"github.com/philipp01105/tablelog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry. The entry is only valid until Handle
	// returns.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// Filterable is implemented by handlers that carry a filter chain
type Filterable interface {
	AddFilter(f core.Filter)
}

// Recycler is implemented by handlers that are done with an entry once
// Handle returns
type Recycler interface {
	CanRecycleEntry() bool
}

// CanRecycle reports whether the entry passed to h may go back to the
// pool after Handle returns. Handlers that do not implement Recycler are
// assumed to keep it.
func CanRecycle(h Handler) bool {
	r, ok := h.(Recycler)
	return ok && r.CanRecycleEntry()
}

// StatsProvider is implemented by handlers that count what they did
type StatsProvider interface {
	Stats() Snapshot
}

// Base holds the state every built-in handler shares: a minimum level,
// a filter chain and counters. Handlers embed a *Base and call Accept
// before doing any work.
type Base struct {
	level  atomic.Int64
	filter *core.LogFilter
	stats  *Stats
}

// NewBase creates a Base with the given minimum level and no filters
func NewBase(level core.Level) *Base {
	b := &Base{
		filter: core.NewLogFilter(),
		stats:  NewStats(),
	}
	b.level.Store(int64(level))
	return b
}

// Level returns the minimum level
func (b *Base) Level() core.Level {
	return core.Level(b.level.Load())
}

// SetLevel changes the minimum level
func (b *Base) SetLevel(level core.Level) {
	b.level.Store(int64(level))
}

// AddFilter appends f to the filter chain
func (b *Base) AddFilter(f core.Filter) {
	b.filter.AddFilter(f)
}

// Filter returns the filter chain
func (b *Base) Filter() *core.LogFilter {
	return b.filter
}

// Accept reports whether the entry passes the level threshold and every
// filter. Filter rejections are counted.
func (b *Base) Accept(entry *core.Entry) bool {
	if entry.Level < b.Level() {
		return false
	}
	if !b.filter.Accept(entry) {
		b.stats.IncrementFiltered()
		return false
	}
	return true
}

// Counters exposes the live counters to the embedding handler
func (b *Base) Counters() *Stats {
	return b.stats
}

// Stats returns a snapshot of the current statistics
func (b *Base) Stats() Snapshot {
	return b.stats.GetSnapshot()
}
