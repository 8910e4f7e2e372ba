package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MDWRITER_"

// Load resolves defaults, the file at path and the environment.
// A missing file is not an error. An empty path skips the file layer.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := LoadFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// LoadFile decodes the file at path over cfg. Fields absent from the file
// keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Decode(path, data, cfg)
}

// Decode parses data as TOML or YAML according to the extension of name.
func Decode(name string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			perr := &ParseError{Path: name, Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return perr
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: name, Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return nil
}

// envSetter applies one environment value.
type envSetter func(cfg *Config, value string) error

// envMapping maps environment variables (without prefix) to settings.
var envMapping = map[string]envSetter{
	"LOG_LEVEL":      func(c *Config, v string) error { c.Log.Level = v; return nil },
	"LOG_FILE":       func(c *Config, v string) error { c.Log.File = v; return nil },
	"SESSION_PATH":   func(c *Config, v string) error { c.Session.Path = v; return nil },
	"SESSION":        boolSetter(func(c *Config, b bool) { c.Session.Disabled = !b }),
	"EXPORT_DIR":     func(c *Config, v string) error { c.Export.Dir = v; return nil },
	"THEME":          func(c *Config, v string) error { c.UI.Theme = strings.ToLower(v); return nil },
	"CODE_STYLE":     func(c *Config, v string) error { c.UI.CodeStyle = v; return nil },
	"PREVIEW":        boolSetter(func(c *Config, b bool) { c.UI.PreviewVisible = b }),
	"AUTO_DIRECTION": boolSetter(func(c *Config, b bool) { c.UI.AutoDirection = b }),
	"WRAP": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.UI.Wrap = n
		return nil
	},
}

func boolSetter(set func(*Config, bool)) envSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		set(c, b)
		return nil
	}
}

// EnvVars returns the supported environment variable names, for help text.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, EnvPrefix+name)
	}
	return names
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for name, set := range envMapping {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(cfg, value); err != nil {
			return fmt.Errorf("environment %s%s=%q: %w", EnvPrefix, name, value, err)
		}
	}
	return nil
}
