// Package config provides persistent preferences for the imsakiyah CLI.
//
// Preferences are stored as JSON at ~/.config/imsakiyah/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	configDirName  = "imsakiyah"
	configFileName = "config.json"
)

const (
	// DefaultYear and DefaultMonth select the imsakiyah schedule shown when
	// nothing else is configured.
	DefaultYear  = 2026
	DefaultMonth = time.March

	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"theme",
	"provinsi", "kota",
	"notifikasi",
	"tahun", "bulan",
	"notifier",
	"format",
	"cache_dir",
}

// Config holds all user preferences.
// Zero values mean "not set" (use defaults).
type Config struct {
	Theme      string `json:"theme,omitempty" yaml:"theme,omitempty"`           // "dark" or "light"
	Provinsi   string `json:"provinsi,omitempty" yaml:"provinsi,omitempty"`     // last selected province
	Kota       string `json:"kota,omitempty" yaml:"kota,omitempty"`             // last selected city
	Notifikasi string `json:"notifikasi,omitempty" yaml:"notifikasi,omitempty"` // "granted", "denied" or unset
	Tahun      int    `json:"tahun,omitempty" yaml:"tahun,omitempty"`
	Bulan      int    `json:"bulan,omitempty" yaml:"bulan,omitempty"`
	Notifier   string `json:"notifier,omitempty" yaml:"notifier,omitempty"` // comma-separated: desktop,console,mqtt
	Format     string `json:"format,omitempty" yaml:"format,omitempty"`     // status-line format for `berikutnya`
	CacheDir   string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Theme:    ThemeLight,
		Tahun:    DefaultYear,
		Bulan:    int(DefaultMonth),
		Notifier: "desktop",
		Format:   "name-and-time",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file, forgetting every preference including the
// notification permission.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// ClearPreferences forgets the theme, the selected province and city, and
// the notification permission. Schedule and backend settings are kept.
func (c *Config) ClearPreferences() {
	c.Theme = ""
	c.Provinsi = ""
	c.Kota = ""
	c.Notifikasi = ""
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "theme":
		theme, ok := ParseTheme(value)
		if !ok {
			return fmt.Errorf("invalid theme %q: must be \"dark\" or \"light\"", value)
		}
		c.Theme = theme
	case "provinsi":
		c.Provinsi = strings.TrimSpace(value)
	case "kota":
		c.Kota = strings.TrimSpace(value)
	case "notifikasi":
		switch value {
		case "granted", "denied", "":
			c.Notifikasi = value
		default:
			return fmt.Errorf("invalid notifikasi %q: must be \"granted\", \"denied\" or empty", value)
		}
	case "tahun":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid tahun %q: must be an integer", value)
		}
		if v < 2000 || v > 2100 {
			return fmt.Errorf("invalid tahun %q: must be between 2000 and 2100", value)
		}
		c.Tahun = v
	case "bulan":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid bulan %q: must be an integer", value)
		}
		if v < 1 || v > 12 {
			return fmt.Errorf("invalid bulan %q: must be between 1 and 12", value)
		}
		c.Bulan = v
	case "notifier":
		for _, n := range strings.Split(value, ",") {
			n = strings.TrimSpace(n)
			if !isValidNotifier(n) {
				return fmt.Errorf("invalid notifier %q in notifier list; valid: desktop, console, mqtt", n)
			}
		}
		c.Notifier = value
	case "format":
		if !isValidFormat(value) {
			return fmt.Errorf("invalid format %q: must be a built-in format or a Go template", value)
		}
		c.Format = value
	case "cache_dir":
		c.CacheDir = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "theme":
		return c.Theme, nil
	case "provinsi":
		return c.Provinsi, nil
	case "kota":
		return c.Kota, nil
	case "notifikasi":
		return c.Notifikasi, nil
	case "tahun":
		if c.Tahun == 0 {
			return "", nil
		}
		return strconv.Itoa(c.Tahun), nil
	case "bulan":
		if c.Bulan == 0 {
			return "", nil
		}
		return strconv.Itoa(c.Bulan), nil
	case "notifier":
		return c.Notifier, nil
	case "format":
		return c.Format, nil
	case "cache_dir":
		return c.CacheDir, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// ParseTheme accepts dark/light in English or Indonesian (gelap/terang).
func ParseTheme(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "gelap":
		return ThemeDark, true
	case "light", "terang":
		return ThemeLight, true
	default:
		return "", false
	}
}

var validNotifiers = map[string]bool{"desktop": true, "console": true, "mqtt": true}

func isValidNotifier(name string) bool {
	return validNotifiers[name]
}

var validFormats = map[string]bool{
	"time-remaining":      true,
	"next-prayer-time":    true,
	"name-and-time":       true,
	"name-and-remaining":  true,
	"short-name-and-time": true,
	"full":                true,
}

func isValidFormat(f string) bool {
	return validFormats[f] || strings.Contains(f, "{{")
}

// Notifiers returns the configured notifier names, in order, without blanks.
func (c *Config) Notifiers() []string {
	var names []string
	for _, n := range strings.Split(c.Notifier, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
