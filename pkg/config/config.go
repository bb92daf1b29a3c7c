package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ledly-go/ledly/pkg/charid"
	"github.com/ledly-go/ledly/pkg/gatt"
	"github.com/ledly-go/ledly/pkg/protocol"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Defaults.
const (
	DefaultScanTimeout = 2 * time.Second
	DefaultProtocol    = protocol.NameGenericRGB
	DefaultLogLevel    = "info"
)

// Config is the ledly configuration.
type Config struct {
	// NamePrefix restricts scans to peripherals whose name contains it.
	NamePrefix string `yaml:"name_prefix"`

	// ScanTimeout bounds a scan.
	ScanTimeout time.Duration `yaml:"scan_timeout"`

	// WriteCharacteristic is the short or full identifier of the write
	// characteristic. Empty means the device family default.
	WriteCharacteristic string `yaml:"write_characteristic"`

	// Protocol is a registered protocol name.
	Protocol string `yaml:"protocol"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ProtocolLog is the path of the protocol capture file. Empty disables it.
	ProtocolLog string `yaml:"protocol_log"`

	// StateFile is the path of the persisted state. Empty disables it.
	StateFile string `yaml:"state_file"`

	// DryRun drives in-memory peripherals instead of the radio.
	DryRun bool `yaml:"dry_run"`

	// Devices holds per-device overrides.
	Devices []DeviceConfig `yaml:"devices"`
}

// DeviceConfig holds overrides for one peripheral, matched by name.
type DeviceConfig struct {
	Name                string `yaml:"name"`
	Alias               string `yaml:"alias"`
	WriteCharacteristic string `yaml:"write_characteristic"`
	Protocol            string `yaml:"protocol"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ScanTimeout: DefaultScanTimeout,
		Protocol:    DefaultProtocol,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ScanTimeout <= 0 {
		return fmt.Errorf("%w: scan_timeout must be positive, got %s", ErrInvalidConfig, c.ScanTimeout)
	}
	if _, err := protocol.Lookup(c.Protocol); err != nil {
		return fmt.Errorf("%w: protocol: %v", ErrInvalidConfig, err)
	}
	if c.WriteCharacteristic != "" {
		if _, err := charid.Parse(c.WriteCharacteristic); err != nil {
			return fmt.Errorf("%w: write_characteristic: %v", ErrInvalidConfig, err)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	seen := make(map[string]bool)
	for i, d := range c.Devices {
		if d.Name == "" {
			return fmt.Errorf("%w: devices[%d]: name is required", ErrInvalidConfig, i)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: devices[%d]: duplicate name %q", ErrInvalidConfig, i, d.Name)
		}
		seen[d.Name] = true
		if d.Protocol != "" {
			if _, err := protocol.Lookup(d.Protocol); err != nil {
				return fmt.Errorf("%w: devices[%d].protocol: %v", ErrInvalidConfig, i, err)
			}
		}
		if d.WriteCharacteristic != "" {
			if _, err := charid.Parse(d.WriteCharacteristic); err != nil {
				return fmt.Errorf("%w: devices[%d].write_characteristic: %v", ErrInvalidConfig, i, err)
			}
		}
	}
	return nil
}

// Device returns the overrides for name, if any.
func (c *Config) Device(name string) (DeviceConfig, bool) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return DeviceConfig{}, false
}

// WriteIdentifier returns the write characteristic for name: the device
// override, then the global setting, else nil for the family default.
func (c *Config) WriteIdentifier(name string) (charid.Identifier, error) {
	s := c.WriteCharacteristic
	if d, ok := c.Device(name); ok && d.WriteCharacteristic != "" {
		s = d.WriteCharacteristic
	}
	if s == "" {
		return nil, nil
	}
	return charid.Parse(s)
}

// ProtocolName returns the protocol name for device name.
func (c *Config) ProtocolName(name string) string {
	if d, ok := c.Device(name); ok && d.Protocol != "" {
		return d.Protocol
	}
	return c.Protocol
}

// ParseKind parses a "|"-separated list of operation kind names, such as
// "write|write-without-response".
func ParseKind(s string) (gatt.OpKind, error) {
	var kind gatt.OpKind
	for _, name := range strings.Split(s, "|") {
		k, ok := gatt.ParseOpKind(strings.TrimSpace(name))
		if !ok {
			return 0, fmt.Errorf("%w: unknown operation kind %q", ErrInvalidConfig, name)
		}
		kind |= k
	}
	return kind, nil
}
