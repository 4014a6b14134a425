package style

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Style names used by the renderer
const (
	LogTime     = "log.time"
	LogMessage  = "log.message"
	LogPath     = "log.path"
	LogLineNo   = "log.line_no"
	LogExtra    = "log.extra"
	LogKeyword  = "log.keyword"
	ExcType     = "traceback.exc_type"
	ExcFrame    = "traceback.frame"
	StackHeader = "traceback.title"
)

// LevelStyle returns the style name for a level name, e.g. "logging.level.info"
func LevelStyle(levelName string) string {
	return "logging.level." + strings.ToLower(levelName)
}

// DefaultStyles are the built in style definitions
var DefaultStyles = map[string]string{
	"log.time":               "cyan dim",
	"log.message":            "",
	"log.path":               "dim",
	"log.line_no":            "dim",
	"log.extra":              "dim",
	"log.keyword":            "bold yellow",
	"traceback.exc_type":     "bold red",
	"traceback.frame":        "dim",
	"traceback.title":        "bold",
	"logging.level.trace":    "dim",
	"logging.level.debug":    "green",
	"logging.level.info":     "blue",
	"logging.level.success":  "bold green",
	"logging.level.warning":  "red",
	"logging.level.error":    "bold red",
	"logging.level.critical": "bold reverse red",
}

// Painter applies named styles, keyword highlighting and hyperlinks
type Painter interface {
	Paint(name, text string) string
	Highlight(text string) string
	Link(text, target string) string
}

// Theme is a Painter bound to one color system
type Theme struct {
	system   ColorSystem
	styles   map[string]Style
	keywords *regexp.Regexp
	links    bool
}

// Plain is a Painter that never styles anything
var Plain Painter = &Theme{system: NoColor}

// NewTheme builds a theme from DefaultStyles merged with overrides.
// Style definitions are parsed eagerly so a bad override fails here.
func NewTheme(system ColorSystem, overrides map[string]string, keywords []string) (*Theme, error) {
	t := &Theme{
		system:   system,
		styles:   make(map[string]Style, len(DefaultStyles)+len(overrides)),
		keywords: keywordPattern(keywords),
		links:    system != NoColor,
	}
	for _, defs := range []map[string]string{DefaultStyles, overrides} {
		for name, def := range defs {
			st, err := ParseStyle(def)
			if err != nil {
				return nil, fmt.Errorf("theme style %s: %w", name, err)
			}
			t.styles[name] = st
		}
	}
	return t, nil
}

// ValidateStyles parses each definition and returns the first error
func ValidateStyles(defs map[string]string) error {
	for name, def := range defs {
		if _, err := ParseStyle(def); err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
	}
	return nil
}

// System returns the color system of the theme
func (t *Theme) System() ColorSystem {
	return t.system
}

// Paint renders text with the named style
func (t *Theme) Paint(name, text string) string {
	if t.system == NoColor {
		return text
	}
	st, ok := t.styles[name]
	if !ok {
		return text
	}
	return st.Render(text, t.system)
}

// Highlight styles every occurrence of the configured keywords
func (t *Theme) Highlight(text string) string {
	if t.system == NoColor || t.keywords == nil {
		return text
	}
	return t.keywords.ReplaceAllStringFunc(text, func(kw string) string {
		return t.Paint(LogKeyword, kw)
	})
}

// keywordPattern matches any keyword, longest first so that overlapping
// keywords prefer the longer match.
func keywordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			quoted = append(quoted, regexp.QuoteMeta(kw))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// Link wraps text in an OSC 8 hyperlink to target
func (t *Theme) Link(text, target string) string {
	if !t.links || target == "" || text == "" {
		return text
	}
	return "\x1b]8;;" + target + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
