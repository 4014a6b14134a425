// Package filehandler appends formatted log entries to a file and
// rotates it by size.
//
// A write that would push the file past MaxSize first renames the active
// file to <file>.<timestamp> and starts a fresh one. A file that is
// still empty always takes the write, so a single record larger than
// MaxSize is written whole instead of being dropped. Rotated names sort
// chronologically; a numeric suffix resolves collisions within one
// millisecond. MaxBackups bounds how many rotated files are kept.
//
// Formatting and writing happen under the handler mutex, so records from
// concurrent goroutines never interleave.
package filehandler
