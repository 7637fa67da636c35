// Package config loads keyclick's configuration from a YAML file with
// .env and environment variable overrides. A missing file is not an
// error; every knob has a default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/keyclick/keyclick/internal/logging"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "KEYCLICK_CONFIG"

// BrowserConfig controls the browser content supplement.
type BrowserConfig struct {
	// Supplement enables querying page content from scripted browsers.
	Supplement bool `yaml:"supplement" env:"KEYCLICK_BROWSER_SUPPLEMENT"`
}

// Config is the full runtime configuration.
type Config struct {
	// HintChars is the hint alphabet in assignment order. The default
	// excludes the four action-switch keys.
	HintChars string `yaml:"hint_chars" env:"KEYCLICK_HINT_CHARS"`
	// SettleDelayMs is how long the walker helper sleeps before
	// reading the tree, letting the UI settle after activation.
	SettleDelayMs int `yaml:"settle_delay_ms" env:"KEYCLICK_SETTLE_DELAY_MS"`
	// CacheTTLMs bounds reuse of a native walk result. 0 disables.
	CacheTTLMs int `yaml:"cache_ttl_ms" env:"KEYCLICK_CACHE_TTL_MS"`
	// MaxDepth bounds tree recursion.
	MaxDepth int `yaml:"max_depth" env:"KEYCLICK_MAX_DEPTH"`
	// MaxElements bounds the number of collected elements.
	MaxElements int `yaml:"max_elements" env:"KEYCLICK_MAX_ELEMENTS"`
	// HelperTimeoutMs kills a hung walker subprocess.
	HelperTimeoutMs int `yaml:"helper_timeout_ms" env:"KEYCLICK_HELPER_TIMEOUT_MS"`
	// HelperPath names a standalone walker build. Empty re-executes
	// the current binary with the hidden helper subcommand.
	HelperPath string `yaml:"helper_path" env:"KEYCLICK_HELPER_PATH"`
	// WatchIntervalMs is the frontmost-app polling interval.
	WatchIntervalMs int `yaml:"watch_interval_ms" env:"KEYCLICK_WATCH_INTERVAL_MS"`

	Browser BrowserConfig  `yaml:"browser"`
	Logging logging.Config `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HintChars:       "asfghjklqwetyuiopzxvbm",
		SettleDelayMs:   10,
		CacheTTLMs:      500,
		MaxDepth:        10,
		MaxElements:     500,
		HelperTimeoutMs: 3000,
		HelperPath:      "",
		WatchIntervalMs: 300,
		Browser:         BrowserConfig{Supplement: true},
		Logging:         logging.Config{Level: logging.DefaultLevel, Format: logging.DefaultFormat},
	}
}

// DefaultPath is where the config file lives unless overridden.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(home, ".config", "keyclick", "config.yml")
}

// ResolvePath picks the config file location: an explicit path wins,
// then the KEYCLICK_CONFIG environment variable, then the default.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults. .env is loaded first; env overrides always win.
func Load(path string) (*Config, error) {
	// Ignore a missing .env; a present but broken one is an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.HintChars == "" {
		return fmt.Errorf("hint_chars must not be empty")
	}
	seen := make(map[rune]bool)
	for _, r := range strings.ToUpper(c.HintChars) {
		if seen[r] {
			return fmt.Errorf("hint_chars contains duplicate character %q", r)
		}
		seen[r] = true
	}
	if c.SettleDelayMs < 0 {
		return fmt.Errorf("settle_delay_ms must not be negative")
	}
	if c.CacheTTLMs < 0 {
		return fmt.Errorf("cache_ttl_ms must not be negative")
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive")
	}
	if c.MaxElements <= 0 {
		return fmt.Errorf("max_elements must be positive")
	}
	if c.HelperTimeoutMs <= 0 {
		return fmt.Errorf("helper_timeout_ms must be positive")
	}
	if c.WatchIntervalMs <= 0 {
		return fmt.Errorf("watch_interval_ms must be positive")
	}
	return nil
}

// SettleDelay returns the helper settle delay.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// CacheTTL returns the result cache ttl.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMs) * time.Millisecond
}

// HelperTimeout returns the walker subprocess timeout.
func (c *Config) HelperTimeout() time.Duration {
	return time.Duration(c.HelperTimeoutMs) * time.Millisecond
}

// WatchInterval returns the focus polling interval.
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.WatchIntervalMs) * time.Millisecond
}

// applyEnvOverrides walks the struct and applies env-tagged variables.
func applyEnvOverrides(cfg *Config) {
	applyEnvToStruct(reflect.ValueOf(cfg).Elem())
}

func applyEnvToStruct(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			applyEnvToStruct(field)
			continue
		}
		envTag := t.Field(i).Tag.Get("env")
		if envTag == "" {
			continue
		}
		envVal := os.Getenv(envTag)
		if envVal == "" {
			continue
		}
		setFieldFromString(field, envVal)
	}
}

func setFieldFromString(field reflect.Value, val string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Bool:
		field.SetBool(parseBool(val))
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			field.SetFloat(f)
		}
	}
}

// parseBool accepts "true", "1" and "yes", case-insensitively.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}
