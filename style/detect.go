package style

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

type fdWriter interface {
	Fd() uintptr
}

// DetectColorSystem inspects w and the environment to pick a color system.
// Anything that is not a terminal gets NoColor.
func DetectColorSystem(w io.Writer) ColorSystem {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return NoColor
	}

	f, ok := w.(fdWriter)
	if !ok {
		return NoColor
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return NoColor
	}

	if runtime.GOOS == "windows" {
		// Windows Terminal speaks truecolor, the legacy console does not
		if os.Getenv("WT_SESSION") != "" {
			return TrueColor
		}
		return Windows
	}

	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return TrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case term == "dumb":
		return NoColor
	case strings.Contains(term, "256"):
		return EightBit
	default:
		return Standard
	}
}

// Resolve turns Auto into a concrete system for w
func (cs ColorSystem) Resolve(w io.Writer) ColorSystem {
	if cs == Auto {
		return DetectColorSystem(w)
	}
	return cs
}

// ConsoleWriter prepares f for styled output. The windows color system
// goes through go-colorable, which translates escape sequences for the
// legacy console; NoColor strips any stray sequences.
func ConsoleWriter(f *os.File, system ColorSystem) io.Writer {
	switch system {
	case Windows:
		return colorable.NewColorable(f)
	case NoColor:
		return colorable.NewNonColorable(f)
	default:
		return f
	}
}
