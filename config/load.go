package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "LOGGER_"

type loadOptions struct {
	file    string
	envFile string
	environ []string
}

// Option customises Load
type Option func(*loadOptions)

// WithFile reads settings from a TOML file. The file must exist.
func WithFile(path string) Option {
	return func(o *loadOptions) { o.file = path }
}

// WithEnvFile reads variables from a dotenv file instead of ".env".
// A missing file is ignored; an empty path disables the dotenv layer.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// WithEnviron replaces the process environment, in os.Environ form
func WithEnviron(environ []string) Option {
	return func(o *loadOptions) { o.environ = environ }
}

// Load builds a Config from defaults, an optional TOML file, the dotenv
// file and the environment, in that order of precedence, then validates it.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{envFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()
	if o.file != "" {
		if err := decodeFile(o.file, cfg); err != nil {
			return nil, err
		}
	}

	environ, err := o.environment()
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile is Load(WithFile(path))
func LoadFile(path string) (*Config, error) {
	return Load(WithFile(path))
}

func decodeFile(path string, cfg *Config) error {
	path = filepath.Clean(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("config: parse %s at line %d, column %d: %w", path, row, col, err)
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return fmt.Errorf("config: %s: unknown keys:\n%s", path, serr.String())
		}
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// environment merges the dotenv file under the process environment.
// Keys are upper-cased so LOGGER_ variables match in any case.
func (o *loadOptions) environment() (map[string]string, error) {
	merged := make(map[string]string)

	if o.envFile != "" {
		dotenv, err := godotenv.Read(o.envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", o.envFile, err)
		default:
			for k, v := range dotenv {
				merged[strings.ToUpper(k)] = v
			}
		}
	}

	environ := o.environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		merged[strings.ToUpper(k)] = v
	}
	return merged, nil
}
