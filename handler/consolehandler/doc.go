// Package consolehandler writes log entries to a terminal or any
// io.Writer (default: os.Stdout).
//
// Rows are rendered by a formatter.TextFormatter styled with a
// style.Theme. The color system is detected from the writer unless
// configured: anything that is not a terminal gets plain text, and the
// legacy Windows console goes through go-colorable.
//
// Each ConsoleHandler owns its formatter, so repeated-time suppression
// depends only on what this handler printed.
package consolehandler
