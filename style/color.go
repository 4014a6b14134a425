package style

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ColorSystem is the set of colors a destination can display
type ColorSystem int

const (
	// Auto resolves to a concrete system by inspecting the destination
	Auto ColorSystem = iota - 1
	// NoColor disables styling entirely
	NoColor
	// Standard is the 16 color ANSI palette
	Standard
	// EightBit is the 256 color palette
	EightBit
	// TrueColor is 24 bit RGB
	TrueColor
	// Windows is the legacy Windows console palette
	Windows
)

var colorSystemNames = map[string]ColorSystem{
	"auto":      Auto,
	"none":      NoColor,
	"standard":  Standard,
	"256":       EightBit,
	"truecolor": TrueColor,
	"windows":   Windows,
}

// ParseColorSystem converts a config literal to a ColorSystem
func ParseColorSystem(s string) (ColorSystem, error) {
	cs, ok := colorSystemNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return NoColor, fmt.Errorf("invalid color system %q: must be one of auto, standard, 256, truecolor, windows", s)
	}
	return cs, nil
}

// String returns the config literal of the color system
func (cs ColorSystem) String() string {
	for name, v := range colorSystemNames {
		if v == cs {
			return name
		}
	}
	return "unknown"
}

// ColorType says how a Color stores its value
type ColorType int

const (
	DefaultColor ColorType = iota
	StandardColor
	EightBitColor
	TrueColorColor
	WindowsColor
)

// ColorParseError is returned when a color definition cannot be parsed
type ColorParseError struct {
	Color  string
	Reason string
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("%q is not a valid color: %s", e.Color, e.Reason)
}

// RGB is a 24 bit color triplet
type RGB struct {
	R, G, B uint8
}

// Color is a parsed terminal color
type Color struct {
	Name   string
	Type   ColorType
	Number int
	RGB    RGB
}

var ansiColorNames = map[string]int{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"bright_black":   8,
	"grey":           8,
	"gray":           8,
	"bright_red":     9,
	"bright_green":   10,
	"bright_yellow":  11,
	"bright_blue":    12,
	"bright_magenta": 13,
	"bright_cyan":    14,
	"bright_white":   15,
}

var reColor = regexp.MustCompile(`^#([0-9a-f]{6})$|^color\((\d{1,3})\)$|^rgb\(([\d\s,]+)\)$`)

// ParseColor parses a color name, "#rrggbb", "color(n)" or "rgb(r,g,b)"
func ParseColor(s string) (Color, error) {
	original := s
	s = strings.ToLower(strings.TrimSpace(s))

	if s == "default" {
		return Color{Name: s, Type: DefaultColor}, nil
	}

	if n, ok := ansiColorNames[s]; ok {
		return Color{Name: s, Type: StandardColor, Number: n}, nil
	}

	m := reColor.FindStringSubmatch(s)
	if m == nil {
		return Color{}, &ColorParseError{Color: original, Reason: "unknown color"}
	}

	switch {
	case m[1] != "":
		v, _ := strconv.ParseUint(m[1], 16, 32)
		rgb := RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
		return Color{Name: s, Type: TrueColorColor, RGB: rgb}, nil
	case m[2] != "":
		n, _ := strconv.Atoi(m[2])
		if n > 255 {
			return Color{}, &ColorParseError{Color: original, Reason: "color number must be <= 255"}
		}
		return colorFromNumber(s, n), nil
	default:
		parts := strings.Split(m[3], ",")
		if len(parts) != 3 {
			return Color{}, &ColorParseError{Color: original, Reason: "expected three components"}
		}
		var c [3]uint8
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v > 255 {
				return Color{}, &ColorParseError{Color: original, Reason: "color components must be <= 255"}
			}
			c[i] = uint8(v)
		}
		return Color{Name: s, Type: TrueColorColor, RGB: RGB{c[0], c[1], c[2]}}, nil
	}
}

func colorFromNumber(name string, n int) Color {
	if n < 16 {
		return Color{Name: name, Type: StandardColor, Number: n}
	}
	return Color{Name: name, Type: EightBitColor, Number: n}
}

// Codes returns the SGR parameters selecting this color
func (c Color) Codes(foreground bool) []int {
	switch c.Type {
	case StandardColor, WindowsColor:
		fore, back := 30, 40
		n := c.Number
		if n >= 8 {
			fore, back = 90, 100
			n -= 8
		}
		if foreground {
			return []int{fore + n}
		}
		return []int{back + n}
	case EightBitColor:
		if foreground {
			return []int{38, 5, c.Number}
		}
		return []int{48, 5, c.Number}
	case TrueColorColor:
		if foreground {
			return []int{38, 2, int(c.RGB.R), int(c.RGB.G), int(c.RGB.B)}
		}
		return []int{48, 2, int(c.RGB.R), int(c.RGB.G), int(c.RGB.B)}
	default:
		if foreground {
			return []int{39}
		}
		return []int{49}
	}
}

// Downgrade converts the color to one the given system can display
func (c Color) Downgrade(system ColorSystem) Color {
	if c.Type == DefaultColor {
		return c
	}

	switch system {
	case EightBit:
		if c.Type != TrueColorColor {
			return c
		}
		return Color{Name: c.Name, Type: EightBitColor, Number: rgbToEightBit(c.RGB)}
	case Standard:
		if c.Type == StandardColor {
			return c
		}
		return Color{Name: c.Name, Type: StandardColor, Number: standardPalette.match(c.triplet())}
	case Windows:
		if c.Type == WindowsColor {
			return c
		}
		if c.Type == StandardColor || (c.Type == EightBitColor && c.Number < 16) {
			return Color{Name: c.Name, Type: WindowsColor, Number: c.Number}
		}
		return Color{Name: c.Name, Type: WindowsColor, Number: windowsPalette.match(c.triplet())}
	}
	return c
}

func (c Color) triplet() RGB {
	switch c.Type {
	case TrueColorColor:
		return c.RGB
	case EightBitColor:
		return eightBitRGB(c.Number)
	case WindowsColor:
		return windowsPalette[c.Number]
	default:
		return standardPalette[c.Number]
	}
}

type palette []RGB

var standardPalette = palette{
	{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

var windowsPalette = palette{
	{12, 12, 12}, {197, 15, 31}, {19, 161, 14}, {193, 156, 0},
	{0, 55, 218}, {136, 23, 152}, {58, 150, 221}, {204, 204, 204},
	{118, 118, 118}, {231, 72, 86}, {22, 198, 12}, {249, 241, 165},
	{59, 120, 255}, {180, 0, 158}, {97, 214, 214}, {242, 242, 242},
}

// match returns the index of the perceptually closest palette entry
// (weighted "redmean" distance).
func (p palette) match(c RGB) int {
	best, bestDist := 0, math.MaxFloat64
	for i, e := range p {
		redMean := (float64(c.R) + float64(e.R)) / 2
		dr := float64(c.R) - float64(e.R)
		dg := float64(c.G) - float64(e.G)
		db := float64(c.B) - float64(e.B)
		d := (2+redMean/256)*dr*dr + 4*dg*dg + (2+(255-redMean)/256)*db*db
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

func eightBitRGB(n int) RGB {
	switch {
	case n < 16:
		return standardPalette[n]
	case n < 232:
		n -= 16
		return RGB{cubeLevels[n/36], cubeLevels[(n/6)%6], cubeLevels[n%6]}
	default:
		g := uint8(8 + 10*(n-232))
		return RGB{g, g, g}
	}
}

func rgbToEightBit(c RGB) int {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	maxc, minc := math.Max(r, math.Max(g, b)), math.Min(r, math.Min(g, b))
	l := (maxc + minc) / 2
	var s float64
	if maxc != minc {
		if l <= 0.5 {
			s = (maxc - minc) / (maxc + minc)
		} else {
			s = (maxc - minc) / (2 - maxc - minc)
		}
	}

	// Under 15% saturation is treated as grayscale
	if s < 0.15 {
		gray := int(math.RoundToEven(l * 25))
		switch gray {
		case 0:
			return 16
		case 25:
			return 231
		default:
			return 231 + gray
		}
	}

	six := func(v uint8) int {
		if v < 95 {
			return int(math.RoundToEven(float64(v) / 95))
		}
		return int(math.RoundToEven(1 + (float64(v)-95)/40))
	}
	return 16 + 36*six(c.R) + 6*six(c.G) + six(c.B)
}
