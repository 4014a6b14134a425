package sloghandler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/formatter"
	"github.com/philipp01105/tablelog/handler/consolehandler"
)

func newConsole(t *testing.T, buf *bytes.Buffer) *consolehandler.ConsoleHandler {
	t.Helper()
	h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{IncludeCaller: true}),
	})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestHandler_Enabled(t *testing.T) {
	sh := New(newConsole(t, &bytes.Buffer{}), Options{Level: core.InfoLevel})

	if sh.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug should not be enabled when level is Info")
	}
	if !sh.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info should be enabled when level is Info")
	}
	if !sh.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("Warn should be enabled when level is Info")
	}
	if !sh.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error should be enabled when level is Info")
	}
}

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(newConsole(t, &buf), Options{Name: "bridge", AddSource: true}))

	logger.Info("test message", "key", "value", "count", 42)

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("Expected 'key=value' in output, got: %s", output)
	}
	if !strings.Contains(output, "count=42") {
		t.Errorf("Expected 'count=42' in output, got: %s", output)
	}
	if !strings.Contains(output, "slog_test.go") {
		t.Errorf("Expected the caller's file in output, got: %s", output)
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(newConsole(t, &buf), Options{})).With("request_id", "req-123")

	logger.Info("test message")

	if !strings.Contains(buf.String(), "request_id=req-123") {
		t.Errorf("Expected 'request_id=req-123' in output, got: %s", buf.String())
	}
}

func TestHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(newConsole(t, &buf), Options{})).WithGroup("http")

	logger.Info("served", slog.Group("req", "method", "GET", "path", "/"), "status", 200)

	output := buf.String()
	for _, want := range []string{"http.req.method=GET", "http.req.path=/", "http.status=200"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestHandler_Errors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(newConsole(t, &buf), Options{}))

	logger.Error("request failed", "err", errors.New("connection reset"))

	if !strings.Contains(buf.String(), "err=connection reset") {
		t.Errorf("Expected the error text in output, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "ERROR") {
		t.Errorf("Expected ERROR level in output, got: %s", buf.String())
	}
}

func TestLevelFromSlog(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want core.Level
	}{
		{slog.LevelDebug - 4, core.TraceLevel},
		{slog.LevelDebug, core.DebugLevel},
		{slog.LevelInfo, core.InfoLevel},
		{slog.LevelInfo + 2, core.SuccessLevel},
		{slog.LevelWarn, core.WarningLevel},
		{slog.LevelError, core.ErrorLevel},
		{slog.LevelError + 4, core.CriticalLevel},
	}
	for _, tt := range tests {
		if got := LevelFromSlog(tt.in); got != tt.want {
			t.Errorf("LevelFromSlog(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
