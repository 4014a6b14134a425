// Package sloghandler provides an adapter from handler.Handler to
// log/slog.Handler, so code written against the standard library's
// structured logging can write through the table console and rotating
// file handlers.
//
// Attributes become extra fields; groups are flattened into dotted keys.
package sloghandler
