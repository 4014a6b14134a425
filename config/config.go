package config

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/philipp01105/tablelog/core"
)

// Config holds every logger setting. Field names in TOML files and in
// LOGGER_* environment variables are the snake_case keys in the tags.
type Config struct {
	Name  string      `toml:"name" env:"NAME" validate:"required"`
	Level *core.Level `toml:"level" env:"LEVEL"`
	Debug bool        `toml:"debug" env:"DEBUG"`

	ColorSystem string   `toml:"color_system" env:"COLOR_SYSTEM" validate:"oneof=auto standard 256 truecolor windows"`
	Width       int      `toml:"width" env:"WIDTH" validate:"gt=0"`
	Keywords    []string `toml:"keywords" env:"KEYWORDS"`
	TimeFormat  string   `toml:"time_format" env:"TIME_FORMAT" validate:"required"`

	CaptureWarnings bool `toml:"capture_warnings" env:"CAPTURE_WARNINGS"`

	LogPath        string   `toml:"log_path" env:"LOG_PATH" validate:"required"`
	ProjectRoot    string   `toml:"project_root" env:"PROJECT_ROOT"`
	MaxLogFileSize ByteSize `toml:"max_log_file_size" env:"MAX_LOG_FILE_SIZE" validate:"lte=9223372036854775807"`
	MaxBackups     int      `toml:"max_backups" env:"MAX_BACKUPS" validate:"gte=0"`
	FileFormat     string   `toml:"file_format" env:"FILE_FORMAT" validate:"oneof=text json"`

	// Styles overrides entries of style.DefaultStyles
	Styles map[string]string `toml:"styles" env:"STYLES"`

	Traceback Traceback `toml:"traceback" envPrefix:"TRACEBACK_"`
}

// Traceback bounds what is rendered for exceptions
type Traceback struct {
	MaxFrames int    `toml:"max_frames" env:"MAX_FRAMES" validate:"gte=0"`
	Locals    Locals `toml:"locals" envPrefix:"LOCALS_"`
}

// Locals bounds the error chain and extra fields printed with an exception.
// MaxDepth 0 means unbounded.
type Locals struct {
	MaxDepth  int `toml:"max_depth" env:"MAX_DEPTH" validate:"gte=0"`
	MaxLength int `toml:"max_length" env:"MAX_LENGTH" validate:"gte=0"`
	MaxString int `toml:"max_string" env:"MAX_STRING" validate:"gte=0"`
}

// Default returns the built in configuration
func Default() *Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return &Config{
		Name:            "tablelog",
		ColorSystem:     "auto",
		Width:           180,
		TimeFormat:      "[%Y-%m-%d %X]",
		CaptureWarnings: true,
		LogPath:         "./logs",
		ProjectRoot:     root,
		MaxLogFileSize:  1000000,
		FileFormat:      "text",
		Traceback: Traceback{
			MaxFrames: 20,
			Locals: Locals{
				MaxLength: 10,
				MaxString: 80,
			},
		},
	}
}

// Clone returns a deep copy of c
func (c *Config) Clone() *Config {
	cp := *c
	if c.Level != nil {
		lvl := *c.Level
		cp.Level = &lvl
	}
	cp.Keywords = slices.Clone(c.Keywords)
	cp.Styles = maps.Clone(c.Styles)
	return &cp
}

// EffectiveLevel is the configured level, or DEBUG when debug is set,
// or INFO.
func (c *Config) EffectiveLevel() core.Level {
	switch {
	case c.Level != nil:
		return *c.Level
	case c.Debug:
		return core.DebugLevel
	default:
		return core.InfoLevel
	}
}

// LogDir is the directory holding the debug and error logs
func (c *Config) LogDir() string {
	if filepath.IsAbs(c.LogPath) {
		return filepath.Clean(c.LogPath)
	}
	return filepath.Join(c.ProjectRoot, c.LogPath)
}

// DebugLogFile is <log dir>/debug/debug.log
func (c *Config) DebugLogFile() string {
	return filepath.Join(c.LogDir(), "debug", "debug.log")
}

// ErrorLogFile is <log dir>/error/error.log
func (c *Config) ErrorLogFile() string {
	return filepath.Join(c.LogDir(), "error", "error.log")
}

// ByteSize is a size in bytes that also accepts strings such as "1M",
// "512KiB" or "1.5 MB".
type ByteSize uint64

// UnmarshalText implements encoding.TextUnmarshaler
func (b *ByteSize) UnmarshalText(text []byte) error {
	n, err := humanize.ParseBytes(string(text))
	if err != nil {
		return err
	}
	*b = ByteSize(n)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(b), 10)), nil
}

// String returns the size in human readable form, e.g. "1.0 MB"
func (b ByteSize) String() string {
	return humanize.Bytes(uint64(b))
}
