package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/tablelog/style"
)

var renderTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func render(r *Render, width int, row Row, p style.Painter) []string {
	var buf bytes.Buffer
	r.Render(&buf, width, row, p)
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRender_OmitRepeatedTimes(t *testing.T) {
	tests := []struct {
		name  string
		omit  bool
		times []time.Time
		want  []string
	}{
		{
			name:  "same second suppressed",
			omit:  true,
			times: []time.Time{renderTime, renderTime.Add(300 * time.Millisecond)},
			want:  []string{"[2026-03-01 09:30:00] INFO     msg", "                      INFO     msg"},
		},
		{
			name:  "suppression off",
			omit:  false,
			times: []time.Time{renderTime, renderTime},
			want:  []string{"[2026-03-01 09:30:00] INFO     msg", "[2026-03-01 09:30:00] INFO     msg"},
		},
		{
			name:  "new second printed",
			omit:  true,
			times: []time.Time{renderTime, renderTime.Add(time.Second), renderTime.Add(time.Second)},
			want: []string{
				"[2026-03-01 09:30:00] INFO     msg",
				"[2026-03-01 09:30:01] INFO     msg",
				"                      INFO     msg",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRender("", tt.omit)
			r.ShowPath = false
			for i, at := range tt.times {
				row := Row{Time: at, Level: "INFO", Fragments: []Fragment{{Text: "msg"}}}
				got := render(r, 180, row, nil)
				if len(got) != 1 || got[0] != tt.want[i] {
					t.Errorf("row %d = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestRender_LastTime(t *testing.T) {
	r := NewRender("%H:%M", true)
	if r.LastTime() != "" {
		t.Fatalf("LastTime() = %q before any row", r.LastTime())
	}
	render(r, 80, Row{Time: renderTime, Level: "INFO"}, nil)
	if r.LastTime() != "09:30" {
		t.Errorf("LastTime() = %q, want 09:30", r.LastTime())
	}

	// a per-row format override is what gets compared
	render(r, 80, Row{Time: renderTime, TimeFormat: "%H", Level: "INFO"}, nil)
	if r.LastTime() != "09" {
		t.Errorf("LastTime() = %q, want 09", r.LastTime())
	}
}

func TestRender_FoldsMessage(t *testing.T) {
	r := NewRender("", false)
	r.ShowPath = false

	row := Row{Time: renderTime, Level: "WARNING", Fragments: []Fragment{
		{Text: "abcdefghijklmnopqrstuvwxy"},
		{Text: "k=v"},
	}}
	got := render(r, 40, row, nil)

	indent := strings.Repeat(" ", 31)
	want := []string{
		"[2026-03-01 09:30:00] WARNING  abcdefghij",
		indent + "klmnopqrst",
		indent + "uvwxy",
		indent + "k=v",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestRender_WideRunes(t *testing.T) {
	r := NewRender("", false)
	r.ShowTime = false
	r.ShowPath = false

	// each rune is two cells wide; the message column is 10 cells
	row := Row{Level: "INFO", Fragments: []Fragment{{Text: "日本語のログです"}}}
	got := render(r, 19, row, nil)
	if len(got) != 2 || got[0] != "INFO     日本語のロ" || got[1] != "         グです" {
		t.Errorf("got %q", got)
	}
}

func TestRender_PathColumns(t *testing.T) {
	r := NewRender("", false)
	row := Row{
		Time:      renderTime,
		Level:     "INFO",
		Fragments: []Fragment{{Text: "hello"}},
		Path:      "main.go",
		LineNo:    7,
	}
	got := render(r, 60, row, nil)
	want := "[2026-03-01 09:30:00] INFO     hello            main.go 7   "
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(got[0]) != 60 {
		t.Errorf("row width = %d, want 60", len(got[0]))
	}
}

func TestRender_Links(t *testing.T) {
	theme, err := style.NewTheme(style.Standard, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	r := NewRender("", false)
	row := Row{
		Time:      renderTime,
		Level:     "INFO",
		Fragments: []Fragment{{Text: "hello"}},
		Path:      "main.go",
		LineNo:    7,
		LinkPath:  "/app/main.go",
	}
	out := strings.Join(render(r, 120, row, theme), "\n")
	if !strings.Contains(out, "\x1b]8;;file:///app/main.go\x1b\\") {
		t.Errorf("Expected a link to the file, got %q", out)
	}
	if !strings.Contains(out, "\x1b]8;;file:///app/main.go#7\x1b\\") {
		t.Errorf("Expected a link to the line, got %q", out)
	}

	plain := strings.Join(render(r, 120, row, nil), "\n")
	if strings.Contains(plain, "\x1b") {
		t.Errorf("Expected no escape sequences without a painter, got %q", plain)
	}
}

func TestRender_EmptyMessage(t *testing.T) {
	r := NewRender("", false)
	r.ShowPath = false
	got := render(r, 80, Row{Time: renderTime, Level: "ERROR"}, nil)
	if len(got) != 1 || got[0] != "[2026-03-01 09:30:00] ERROR" {
		t.Errorf("got %q", got)
	}
}
