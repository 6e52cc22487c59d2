package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/plate"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// envPrefix makes "log.level" resolve to PLATEMAPPER_LOG_LEVEL.
const envPrefix = "PLATEMAPPER"

// DeviceType represents the type of MIDI device
type DeviceType string

const (
	DeviceTypeClassic  DeviceType = "classic"  // Launchpad S
	DeviceTypeColorful DeviceType = "colorful" // Launchpad Mini Mk3
)

// DeviceConfig holds configuration for a single Launchpad
type DeviceConfig struct {
	ID      string     `json:"id" mapstructure:"id"`
	Name    string     `json:"name" mapstructure:"name"`
	InPort  string     `json:"in_port" mapstructure:"in_port"`
	OutPort string     `json:"out_port" mapstructure:"out_port"`
	Type    DeviceType `json:"type" mapstructure:"type"`
}

// NewDeviceConfig creates a new device config with a generated ID
func NewDeviceConfig() DeviceConfig {
	return DeviceConfig{
		ID:   uuid.New().String(),
		Name: "New Device",
		Type: DeviceTypeClassic,
	}
}

// Config holds application configuration
type Config struct {
	DefaultFormat string         `json:"default_format" mapstructure:"default_format"`
	DefaultColor  string         `json:"default_color" mapstructure:"default_color"`
	LibraryPath   string         `json:"library_path" mapstructure:"library_path"`
	Log           logging.Config `json:"log" mapstructure:"log"`
	Devices       []DeviceConfig `json:"devices" mapstructure:"devices"`

	path string
	// stored holds defaults plus file values with no environment applied.
	// loaded is the effective config as Load returned it.
	stored *Config
	loaded *Config
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "platemapper"), nil
}

// DefaultPath returns the full path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// defaultLibraryPath puts the layout database next to the config file.
func defaultLibraryPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "layouts.db")
}

func newViper(configPath string, env bool) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	if env {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	v.SetDefault("default_format", plate.DefaultFormat().Name)
	v.SetDefault("default_color", string(plate.DefaultFill))
	v.SetDefault("library_path", defaultLibraryPath(configPath))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("devices", []DeviceConfig{})
	return v
}

// Load reads the config at path, returning defaults if the file does not
// exist. An empty path means DefaultPath. PLATEMAPPER_* environment
// variables override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := read(path, true)
	if err != nil {
		return nil, err
	}
	stored, err := read(path, false)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	loaded := *cfg
	loaded.Devices = nil
	cfg.stored = stored
	cfg.loaded = &loaded
	return cfg, nil
}

func read(path string, env bool) (*Config, error) {
	v := newViper(path, env)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: stat %q: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.path = path

	// Ensure slices are not nil
	if cfg.Devices == nil {
		cfg.Devices = []DeviceConfig{}
	}
	return cfg, nil
}

// Validate checks the values the rest of the application parses.
func (c *Config) Validate() error {
	if _, err := plate.FormatByName(c.DefaultFormat); err != nil {
		return err
	}
	if _, err := plate.Color(c.DefaultColor).NRGBA(); err != nil {
		return fmt.Errorf("default_color: %w", err)
	}
	for _, d := range c.Devices {
		switch d.Type {
		case DeviceTypeClassic, DeviceTypeColorful:
		default:
			return fmt.Errorf("device %q: unknown type %q", d.Name, d.Type)
		}
	}
	return nil
}

// Path is the file Save writes to.
func (c *Config) Path() string {
	return c.path
}

// Format returns the configured default plate format, falling back to
// 96-well.
func (c *Config) Format() plate.Format {
	f, err := plate.FormatByName(c.DefaultFormat)
	if err != nil {
		return plate.DefaultFormat()
	}
	return f
}

// Save writes the config to disk
func (c *Config) Save() error {
	if c.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = p
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.persisted(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0644)
}

// persisted is what Save writes: the file values with edits made since Load
// on top. Environment overrides stay out of the file.
func (c *Config) persisted() *Config {
	if c.stored == nil || c.loaded == nil {
		return c
	}
	out := *c.stored
	out.stored, out.loaded = nil, nil
	edited := func(dst *string, cur, was string) {
		if cur != was {
			*dst = cur
		}
	}
	edited(&out.DefaultFormat, c.DefaultFormat, c.loaded.DefaultFormat)
	edited(&out.DefaultColor, c.DefaultColor, c.loaded.DefaultColor)
	edited(&out.LibraryPath, c.LibraryPath, c.loaded.LibraryPath)
	edited(&out.Log.Level, c.Log.Level, c.loaded.Log.Level)
	edited(&out.Log.Format, c.Log.Format, c.loaded.Log.Format)
	out.Devices = c.Devices
	return &out
}

// AddDevice adds a new device to the config
func (c *Config) AddDevice(device DeviceConfig) {
	c.Devices = append(c.Devices, device)
}

// RemoveDevice removes a device by ID
func (c *Config) RemoveDevice(id string) {
	for i, d := range c.Devices {
		if d.ID == id {
			c.Devices = append(c.Devices[:i], c.Devices[i+1:]...)
			return
		}
	}
}

// UpdateDevice updates an existing device by ID
func (c *Config) UpdateDevice(device DeviceConfig) {
	for i, d := range c.Devices {
		if d.ID == device.ID {
			c.Devices[i] = device
			return
		}
	}
}

// Device returns the device with the given ID.
func (c *Config) Device(id string) (DeviceConfig, bool) {
	for _, d := range c.Devices {
		if d.ID == id {
			return d, true
		}
	}
	return DeviceConfig{}, false
}
