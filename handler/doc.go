// Package handler provides the Handler interface and the pieces the
// built-in handlers share.
//
// Handlers are synchronous: Handle formats and writes the entry before
// it returns, and a record is never dropped for lack of queue space.
// Every built-in handler embeds a *Base, which holds its minimum level,
// its filter chain (core.LogFilter) and its Stats.
//
// Built-in handlers:
//
//   - consolehandler writes table rows to a terminal or any io.Writer,
//     styled for the detected color system.
//   - filehandler appends to a file and rotates it by size.
//   - MultiHandler fans out a single entry to multiple child handlers
//     and combines their errors with go.uber.org/multierr.
//   - sloghandler and zaphandler let log/slog and zap loggers write
//     through these handlers.
//
// Stats counts processed, filtered and failed entries per handler and
// can be queried at runtime for monitoring.
package handler
