package formatter

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/style"
)

// TextFormatter formats log entries as table rows. It owns a Render, so
// timestamp suppression is tracked per formatter.
type TextFormatter struct {
	Config

	mu     sync.Mutex
	render *Render
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	cfg = cfg.withDefaults()
	r := NewRender(cfg.TimeFormat, cfg.OmitRepeatedTimes)
	r.ShowPath = cfg.IncludeCaller
	return &TextFormatter{Config: cfg, render: r}
}

// Render exposes the underlying Render
func (f *TextFormatter) Render() *Render {
	return f.render
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()

	f.FormatEntry(entry, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEntry formats an entry into the given buffer (implements BufferFormatter)
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	row := f.Row(entry)

	f.mu.Lock()
	f.render.Render(buf, f.Width, row, f.Painter)
	f.mu.Unlock()
}

// Row converts an entry into the cells of one table row
func (f *TextFormatter) Row(entry *core.Entry) Row {
	level := entry.Level.String()
	row := Row{
		Time:       entry.Time,
		Level:      level,
		LevelStyle: style.LevelStyle(level),
		Fragments:  make([]Fragment, 0, 4),
	}
	if entry.Caller.Defined {
		row.Path = entry.Caller.ShortFile
		row.LineNo = entry.Caller.Line
		row.LinkPath = entry.Caller.File
	}

	row.Fragments = append(row.Fragments, Fragment{Text: entry.Message, Style: style.LogMessage, Highlight: true})
	if extra := f.extra(entry.Fields); extra != "" {
		row.Fragments = append(row.Fragments, Fragment{Text: extra, Style: style.LogExtra})
	}
	if entry.Exc != nil {
		row.Fragments = append(row.Fragments, excFragments(entry.Exc)...)
	}
	if entry.Stack != "" {
		title, frames, _ := strings.Cut(entry.Stack, "\n")
		row.Fragments = append(row.Fragments, Fragment{Text: title, Style: style.StackHeader})
		if frames != "" {
			row.Fragments = append(row.Fragments, Fragment{Text: frames, Style: style.ExcFrame})
		}
	}
	return row
}

// extra renders data fields as "key=value" pairs
func (f *TextFormatter) extra(fields []core.Field) string {
	var sb strings.Builder
	shown := 0
	for _, field := range fields {
		if field.IsOption() {
			continue
		}
		if f.MaxFields > 0 && shown == f.MaxFields {
			sb.WriteString(" ...")
			break
		}
		if shown > 0 {
			sb.WriteByte(' ')
		}
		value := field.StringValue()
		if f.MaxString > 0 {
			value = runewidth.Truncate(value, f.MaxString, "...")
		}
		sb.WriteString(field.Key)
		sb.WriteByte('=')
		sb.WriteString(value)
		shown++
	}
	return sb.String()
}

func excFragments(exc *core.ExcInfo) []Fragment {
	var frags []Fragment
	if len(exc.Frames) > 0 {
		frags = append(frags,
			Fragment{Text: "Traceback (most recent call last):", Style: style.StackHeader},
			Fragment{Text: formatFrames(exc.Frames), Style: style.ExcFrame},
		)
	}
	frags = append(frags, Fragment{Text: exc.Type + ": " + exc.Message, Style: style.ExcType})
	for _, cause := range exc.Causes {
		frags = append(frags, Fragment{Text: "  caused by " + cause, Style: style.ExcFrame})
	}
	return frags
}

// formatFrames lists frames (innermost first) outermost first
func formatFrames(frames []core.Frame) string {
	var sb strings.Builder
	for i := len(frames) - 1; i >= 0; i-- {
		if i != len(frames)-1 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  ")
		sb.WriteString(frames[i].Function)
		sb.WriteString("\n      ")
		sb.WriteString(frames[i].File)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(frames[i].Line))
	}
	return sb.String()
}
