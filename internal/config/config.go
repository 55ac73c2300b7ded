// ABOUTME: Wander configuration management
// ABOUTME: JSON config file with viper defaults and WANDER_* environment overrides

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/wander/internal/places"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides: WANDER_FIELD_OF_VIEW -> field_of_view.
const EnvPrefix = "WANDER"

// Config stores wander configuration.
type Config struct {
	// FieldOfView is the horizontal camera field of view in degrees.
	FieldOfView float64 `json:"field_of_view" mapstructure:"field_of_view"`

	// WaypointRadius is how close, in meters, a route step must be to count as passed.
	WaypointRadius float64 `json:"waypoint_radius" mapstructure:"waypoint_radius"`

	// PlacesFile is the YAML destination catalog. Supports ~ expansion.
	// Defaults to $XDG_CONFIG_HOME/wander/places.yaml.
	PlacesFile string `json:"places_file,omitempty" mapstructure:"places_file"`

	LogLevel string `json:"log_level" mapstructure:"log_level"`

	// ReplaySpeed multiplies track playback. 0 plays without waiting.
	ReplaySpeed float64 `json:"replay_speed" mapstructure:"replay_speed"`

	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FieldOfView:    50,
		WaypointRadius: 15,
		LogLevel:       "info",
		ReplaySpeed:    1,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("field_of_view", d.FieldOfView)
	v.SetDefault("waypoint_radius", d.WaypointRadius)
	v.SetDefault("places_file", "")
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("replay_speed", d.ReplaySpeed)
}

// configDir returns the XDG config root.
func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return dir
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return filepath.Join(configDir(), "wander", "config.json")
}

// GetPlacesFile returns the catalog path with ~ expanded.
func (c *Config) GetPlacesFile() string {
	if c.PlacesFile == "" {
		return filepath.Join(configDir(), "wander", "places.yaml")
	}
	return ExpandPath(c.PlacesFile)
}

// Path returns the file this config was loaded from or will be saved to.
func (c *Config) Path() string {
	if c.path == "" {
		return GetConfigPath()
	}
	return c.path
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// LogLevels lists the accepted log_level values.
const LogLevels = "debug, info, warn, error, fatal"

// Load reads config from the default path.
func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile reads config from path, creating it with defaults on first run.
// Environment variables override values from the file.
func LoadFile(path string) (*Config, error) {
	path = ExpandPath(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.path = path
		if saveErr := cfg.Save(); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	var errs []string

	if c.FieldOfView <= 0 || c.FieldOfView > 360 {
		errs = append(errs, fmt.Sprintf("field_of_view must be in (0, 360], got %g", c.FieldOfView))
	}
	if c.WaypointRadius < 0 {
		errs = append(errs, fmt.Sprintf("waypoint_radius cannot be negative, got %g", c.WaypointRadius))
	}
	if c.ReplaySpeed < 0 {
		errs = append(errs, fmt.Sprintf("replay_speed cannot be negative, got %g", c.ReplaySpeed))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error", "fatal":
	default:
		errs = append(errs, fmt.Sprintf("log_level %q is not one of %s", c.LogLevel, LogLevels))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// OpenCatalog loads the configured places file.
func (c *Config) OpenCatalog() (*places.Catalog, error) {
	return places.Load(c.GetPlacesFile())
}

// Save writes config to disk.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(c.Path(), data)
}

// atomicWrite writes data to a temp file beside path and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}
