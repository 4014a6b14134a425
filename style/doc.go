// Package style turns named styles into terminal escape sequences.
//
// A ColorSystem describes what a destination can display (none, the 16
// color standard palette, 256 colors, truecolor or the legacy Windows
// console). Colors are parsed from names, "#rrggbb", "color(n)" or
// "rgb(r,g,b)"; an unparsable definition yields a *ColorParseError that
// carries the offending literal. Colors richer than the destination are
// downgraded to the nearest palette entry before rendering.
//
// A Theme maps style names such as "log.time" or "logging.level.error"
// to parsed styles and implements Painter, which the formatter uses to
// color table cells, highlight keywords and emit OSC 8 hyperlinks.
// Escape sequences are produced with github.com/fatih/color; terminal
// detection uses github.com/mattn/go-isatty.
package style
