package style

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Style is a set of text attributes plus optional colors
type Style struct {
	Fg, Bg *Color
	Attrs  []color.Attribute
}

var attrWords = map[string]color.Attribute{
	"bold":      color.Bold,
	"b":         color.Bold,
	"dim":       color.Faint,
	"d":         color.Faint,
	"italic":    color.Italic,
	"i":         color.Italic,
	"underline": color.Underline,
	"u":         color.Underline,
	"blink":     color.BlinkSlow,
	"reverse":   color.ReverseVideo,
	"r":         color.ReverseVideo,
	"strike":    color.CrossedOut,
	"s":         color.CrossedOut,
}

// ParseStyle parses definitions such as "bold red", "dim" or
// "italic #ff8800 on black". An empty string or "none" is the null style.
// Unknown words are parsed as colors, so a typo surfaces as a
// *ColorParseError.
func ParseStyle(def string) (Style, error) {
	var st Style
	words := strings.Fields(strings.ToLower(def))
	if len(words) == 0 || (len(words) == 1 && words[0] == "none") {
		return st, nil
	}

	for i := 0; i < len(words); i++ {
		w := words[i]
		if w == "on" {
			if i+1 >= len(words) {
				return Style{}, fmt.Errorf("style %q: expected a color after 'on'", def)
			}
			i++
			c, err := ParseColor(words[i])
			if err != nil {
				return Style{}, fmt.Errorf("style %q: %w", def, err)
			}
			st.Bg = &c
			continue
		}
		if a, ok := attrWords[w]; ok {
			st.Attrs = append(st.Attrs, a)
			continue
		}
		c, err := ParseColor(w)
		if err != nil {
			return Style{}, fmt.Errorf("style %q: %w", def, err)
		}
		st.Fg = &c
	}
	return st, nil
}

// MustParseStyle is like ParseStyle but panics on error
func MustParseStyle(def string) Style {
	st, err := ParseStyle(def)
	if err != nil {
		panic(err)
	}
	return st
}

// IsNull reports whether the style changes nothing
func (s Style) IsNull() bool {
	return s.Fg == nil && s.Bg == nil && len(s.Attrs) == 0
}

// Params returns the SGR parameters for the style on the given system
func (s Style) Params(system ColorSystem) []color.Attribute {
	params := append([]color.Attribute(nil), s.Attrs...)
	if s.Fg != nil {
		for _, p := range s.Fg.Downgrade(system).Codes(true) {
			params = append(params, color.Attribute(p))
		}
	}
	if s.Bg != nil {
		for _, p := range s.Bg.Downgrade(system).Codes(false) {
			params = append(params, color.Attribute(p))
		}
	}
	return params
}

// Render wraps text in the escape sequences of the style
func (s Style) Render(text string, system ColorSystem) string {
	if system == NoColor || system == Auto || s.IsNull() || text == "" {
		return text
	}
	c := color.New(s.Params(system)...)
	// Color output is decided per destination, not by the global NoColor
	c.EnableColor()
	return c.Sprint(text)
}
