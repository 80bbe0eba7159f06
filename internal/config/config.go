// Package config loads abacus settings from an optional TOML file.
//
// Precedence is flags, then file, then defaults. This package handles the
// file and the defaults; the CLI overlays flags it sees as changed.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/roach88/abacus/internal/format"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "ABACUS_CONFIG"

// Defaults
const (
	DefaultLocale        = "pl"
	DefaultCurrencyStyle = "symbol"
	DefaultFormat        = "text"
)

// Config holds the complete application configuration.
type Config struct {
	// Locale is a BCP 47 tag.
	Locale string `toml:"locale"`

	// Currency is an ISO 4217 code. Empty derives it from Locale.
	Currency string `toml:"currency"`

	// CurrencyStyle is "symbol" or "code".
	CurrencyStyle string `toml:"currency_style"`

	// Format is the CLI output format, "text" or "json".
	Format string `toml:"format"`

	// Forms is a CUE catalog replacing the built-in forms.
	Forms string `toml:"forms"`

	Display DisplayConfig `toml:"display"`

	// Path is the file the config was read from, if any.
	Path string `toml:"-"`
}

// DisplayConfig holds result panel settings.
type DisplayConfig struct {
	ClearAfter Duration `toml:"clear_after"`
}

// Duration wraps time.Duration for TOML parsing.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML file. Keys the Config does not know are rejected.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads path, or the file named by $ABACUS_CONFIG when path is
// empty. With neither set it returns the defaults.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.CurrencyStyle == "" {
		c.CurrencyStyle = DefaultCurrencyStyle
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Display.ClearAfter.Duration == 0 {
		c.Display.ClearAfter.Duration = 2 * time.Second
	}
}

// Validate checks enumerated fields and that the locale and currency parse.
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q: must be text or json", c.Format)
	}
	if _, err := c.currencyStyle(); err != nil {
		return err
	}
	if c.Display.ClearAfter.Duration < 0 {
		return fmt.Errorf("invalid display.clear_after %s: must not be negative", c.Display.ClearAfter.Duration)
	}
	_, err := c.NewLocale()
	return err
}

// NewLocale builds the presenter described by Locale, Currency and
// CurrencyStyle.
func (c *Config) NewLocale() (*format.Locale, error) {
	style, err := c.currencyStyle()
	if err != nil {
		return nil, err
	}
	return format.Parse(c.Locale, c.Currency, format.WithCurrencyStyle(style))
}

func (c *Config) currencyStyle() (format.CurrencyStyle, error) {
	switch c.CurrencyStyle {
	case "symbol", "":
		return format.CurrencySymbol, nil
	case "code":
		return format.CurrencyCode, nil
	default:
		return 0, fmt.Errorf("invalid currency_style %q: must be symbol or code", c.CurrencyStyle)
	}
}
