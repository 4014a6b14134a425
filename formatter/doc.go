// Package formatter defines how log entries are serialized into bytes.
//
// Render lays a record out as one table row: time, level, message, and
// optionally the source path and line number. A time equal to the one
// printed on the previous row can be replaced by blanks of the same
// width, so bursts of records within one second read as a block. Time
// strings use strftime patterns (github.com/lestrrat-go/strftime) and
// widths are measured in terminal cells (github.com/mattn/go-runewidth),
// so wide runes fold correctly.
//
// TextFormatter converts an Entry into a Row (message, extra fields,
// exception and stack) and renders it with its own Render. Give every
// handler its own TextFormatter; sharing one would make suppression
// depend on another handler's output. JSONFormatter writes one object
// per line and keeps no state.
//
// Both formatters implement Formatter, WriterFormatter and
// BufferFormatter and use a pooled bytes.Buffer internally. Buffers
// larger than 64 KiB are not returned to the pool.
package formatter
