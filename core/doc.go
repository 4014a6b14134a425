// Package core defines the shared types used across tablelog.
//
// It provides the Level type with the two extra severities TRACE (5) and
// SUCCESS (25) next to the standard DEBUG..CRITICAL ladder, the Entry type
// that represents a single log record, the Field type for key-value pairs
// and per-call options, and LogFilter, the AND-chain of record predicates
// attached to every handler.
//
// Entry objects are pooled via sync.Pool. The logger gets an Entry with
// GetEntry and returns it with PutEntry after the handlers returned, but
// only when every handler reports through CanRecycleEntry that it keeps
// no reference. A handler that does not say so may hold on to the Entry.
//
// FindCaller resolves the application call site by walking the runtime
// stack and skipping frames that a FrameFilter marks as logging
// internals. ExcInfo captures the error, its unwrap chain and the stack
// of a call to Logger.Exception.
package core
