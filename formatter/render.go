package formatter

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/mattn/go-runewidth"

	"github.com/philipp01105/tablelog/style"
)

const (
	// DefaultLevelWidth is the width of the level column
	DefaultLevelWidth = 8
	minLineNoWidth    = 4
	minMessageWidth   = 10
)

// Fragment is one block of the message column
type Fragment struct {
	Text  string
	Style string
	// Highlight applies keyword highlighting
	Highlight bool
}

// Row is everything needed to lay out one record
type Row struct {
	Fragments []Fragment
	Time      time.Time
	// TimeFormat overrides Render.TimeFormat for this row
	TimeFormat string
	Level      string
	LevelStyle string
	Path       string
	LineNo     int
	// LinkPath turns path and line number into file:// hyperlinks
	LinkPath string
}

// Render lays out rows as a table: time, level, message, path and line
// number, separated by single spaces. Message lines are folded at the
// remaining width and continue under the message column.
//
// When OmitRepeatedTimes is set a time string equal to the one printed on
// the previous row is replaced by blanks of the same width. That previous
// string is the only state, so each handler needs its own Render and must
// not render from two goroutines at once.
type Render struct {
	ShowTime          bool
	ShowLevel         bool
	ShowPath          bool
	OmitRepeatedTimes bool
	TimeFormat        string
	LevelWidth        int

	lastTime string
	formats  map[string]*strftime.Strftime
}

// NewRender returns a Render showing every column
func NewRender(timeFormat string, omitRepeatedTimes bool) *Render {
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	return &Render{
		ShowTime:          true,
		ShowLevel:         true,
		ShowPath:          true,
		OmitRepeatedTimes: omitRepeatedTimes,
		TimeFormat:        timeFormat,
		LevelWidth:        DefaultLevelWidth,
	}
}

// LastTime returns the time string of the most recent row that showed one
func (r *Render) LastTime() string {
	return r.lastTime
}

// Render appends the laid out row to buf, one "\n" terminated line per
// display line.
func (r *Render) Render(buf *bytes.Buffer, width int, row Row, p style.Painter) {
	if p == nil {
		p = style.Plain
	}

	var prefix strings.Builder
	indent := 0

	if r.ShowTime {
		ts := r.formatTime(row)
		w := runewidth.StringWidth(ts)
		if r.OmitRepeatedTimes && ts == r.lastTime {
			prefix.WriteString(strings.Repeat(" ", w))
		} else {
			prefix.WriteString(p.Paint(style.LogTime, ts))
			r.lastTime = ts
		}
		prefix.WriteByte(' ')
		indent += w + 1
	}

	if r.ShowLevel {
		levelWidth := max(r.LevelWidth, runewidth.StringWidth(row.Level))
		prefix.WriteString(p.Paint(row.LevelStyle, runewidth.FillRight(row.Level, levelWidth)))
		prefix.WriteByte(' ')
		indent += levelWidth + 1
	}

	var path, lineNo string
	pathWidth, lineNoWidth := 0, 0
	if r.ShowPath && row.Path != "" {
		pathWidth = runewidth.StringWidth(row.Path)
		path = p.Paint(style.LogPath, row.Path)
		if row.LinkPath != "" {
			path = p.Link(path, "file://"+row.LinkPath)
		}
	}
	if r.ShowPath && row.LineNo > 0 {
		n := strconv.Itoa(row.LineNo)
		lineNoWidth = max(minLineNoWidth, len(n))
		lineNo = p.Paint(style.LogLineNo, n)
		if row.LinkPath != "" {
			lineNo = p.Link(lineNo, "file://"+row.LinkPath+"#"+n)
		}
		lineNo += strings.Repeat(" ", lineNoWidth-len(n))
	}

	msgWidth := width - indent
	if pathWidth > 0 {
		msgWidth -= pathWidth + 1
	}
	if lineNoWidth > 0 {
		msgWidth -= lineNoWidth + 1
	}
	msgWidth = max(msgWidth, minMessageWidth)

	lines := foldFragments(row.Fragments, msgWidth, p)
	hasRight := pathWidth > 0 || lineNoWidth > 0

	// first line carries every column
	if !hasRight && lines[0].width == 0 {
		buf.WriteString(strings.TrimRight(prefix.String(), " "))
	} else {
		buf.WriteString(prefix.String())
	}
	buf.WriteString(lines[0].text)
	if hasRight {
		buf.WriteString(strings.Repeat(" ", msgWidth-lines[0].width))
		if path != "" {
			buf.WriteByte(' ')
			buf.WriteString(path)
		}
		if lineNo != "" {
			buf.WriteByte(' ')
			buf.WriteString(lineNo)
		}
	}
	buf.WriteByte('\n')

	pad := strings.Repeat(" ", indent)
	for _, l := range lines[1:] {
		buf.WriteString(pad)
		buf.WriteString(l.text)
		buf.WriteByte('\n')
	}
}

func (r *Render) formatTime(row Row) string {
	pattern := row.TimeFormat
	if pattern == "" {
		pattern = r.TimeFormat
	}
	f, ok := r.formats[pattern]
	if !ok {
		var err error
		f, err = strftime.New(pattern)
		if err != nil {
			return row.Time.Format(time.DateTime)
		}
		if r.formats == nil {
			r.formats = make(map[string]*strftime.Strftime)
		}
		r.formats[pattern] = f
	}
	return f.FormatString(row.Time)
}

type line struct {
	text  string
	width int
}

// foldFragments splits every fragment into lines no wider than width.
// The result always holds at least one line.
func foldFragments(fragments []Fragment, width int, p style.Painter) []line {
	var out []line
	for _, frag := range fragments {
		for _, raw := range strings.Split(frag.Text, "\n") {
			for _, piece := range fold(raw, width) {
				text := piece
				if frag.Highlight {
					text = p.Highlight(text)
				}
				out = append(out, line{
					text:  p.Paint(frag.Style, text),
					width: runewidth.StringWidth(piece),
				})
			}
		}
	}
	if len(out) == 0 {
		out = append(out, line{})
	}
	return out
}

// fold cuts s into pieces of at most width display cells
func fold(s string, width int) []string {
	if runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var pieces []string
	start, w := 0, 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && i > start {
			pieces = append(pieces, s[start:i])
			start, w = i, 0
		}
		w += rw
	}
	return append(pieces, s[start:])
}
