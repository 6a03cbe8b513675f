// Package config provides centralized configuration for the vsock diagnostic tools.
// Configuration is read from a JSON file at /etc/vsockdiag/config.json
// (overridable via the VSOCKDIAG_CONFIG environment variable). The tools take
// no arguments, so the file is optional: built-in defaults are used when the
// default file is absent.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	// DefaultConfigPath is the default location for the config file
	DefaultConfigPath = "/etc/vsockdiag/config.json"

	// ConfigEnvVar is the environment variable to override config file location
	ConfigEnvVar = "VSOCKDIAG_CONFIG"
)

// Discovery strategy names.
const (
	StrategyDevice     = "device"
	StrategySocket     = "socket"
	StrategyFilesystem = "filesystem"
)

// Config is the root configuration structure
type Config struct {
	Debug     bool            `json:"debug"`
	Discovery DiscoveryConfig `json:"discovery"`
	Echo      EchoConfig      `json:"echo"`
}

// DiscoveryConfig selects how the local CID is looked up and where the
// kernel interfaces live.
type DiscoveryConfig struct {
	Strategy   string `json:"strategy"`    // device, socket or filesystem
	DevicePath string `json:"device_path"` // vsock character device
	ProcPath   string `json:"proc_path"`   // primary local_cid file
	SysfsPath  string `json:"sysfs_path"`  // fallback local_cid file
}

// EchoConfig defines the one-shot echo exchange.
type EchoConfig struct {
	Port uint32 `json:"port"`

	// ConnectCID is the CID the client dials. Zero selects the loopback CID;
	// the hypervisor CID is never a useful echo peer.
	ConnectCID uint32 `json:"connect_cid"`

	Backlog       int    `json:"backlog"`     // listen(2) backlog
	BufferSize    int    `json:"buffer_size"` // read buffer, one byte is kept for the terminator
	ClientMessage string `json:"client_message"`
	ServerMessage string `json:"server_message"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.Mutex
	errConfig    error
)

// Reset clears the cached global config, forcing the next Get() call to reload.
// This is intended for testing only. Callers must ensure no concurrent Get() calls
// are in progress when calling Reset().
func Reset() {
	configMu.Lock()
	defer configMu.Unlock()
	globalConfig = nil
	errConfig = nil
	configOnce = sync.Once{}
}

// Get returns the global config, loading it on first call.
func Get() (*Config, error) {
	configOnce.Do(func() {
		globalConfig, errConfig = Load()
	})
	return globalConfig, errConfig
}

// Load loads configuration from VSOCKDIAG_CONFIG or /etc/vsockdiag/config.json.
// An explicitly configured path must exist. The default path is optional.
func Load() (*Config, error) {
	if configPath := os.Getenv(ConfigEnvVar); configPath != "" {
		return LoadFrom(configPath)
	}

	if _, err := os.Stat(DefaultConfigPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadFrom(DefaultConfigPath)
}

// LoadFrom loads configuration from a specific path.
// Returns error if file doesn't exist or is invalid.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s. Unset %s to use built-in defaults", path, ConfigEnvVar)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w (ensure it's valid JSON)", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return &cfg, nil
}

// DefaultConfig returns the default configuration, matching the fixed
// behaviour of the fixed-function diagnostic programs.
func DefaultConfig() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			Strategy:   StrategyDevice,
			DevicePath: "/dev/vsock",
			ProcPath:   "/proc/sys/net/vsock/local_cid",
			SysfsPath:  "/sys/module/vsock/parameters/local_cid",
		},
		Echo: EchoConfig{
			Port:          9999,
			ConnectCID:    1,
			Backlog:       1,
			BufferSize:    1024,
			ClientMessage: "Hello from client",
			ServerMessage: "Hello from server",
		},
	}
}

// applyDefaults fills in default values for any empty fields
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	c.applyDiscoveryDefaults(defaults)
	c.applyEchoDefaults(defaults)
}

func (c *Config) applyDiscoveryDefaults(defaults *Config) {
	if c.Discovery.Strategy == "" {
		c.Discovery.Strategy = defaults.Discovery.Strategy
	}
	if c.Discovery.DevicePath == "" {
		c.Discovery.DevicePath = defaults.Discovery.DevicePath
	}
	if c.Discovery.ProcPath == "" {
		c.Discovery.ProcPath = defaults.Discovery.ProcPath
	}
	if c.Discovery.SysfsPath == "" {
		c.Discovery.SysfsPath = defaults.Discovery.SysfsPath
	}
}

func (c *Config) applyEchoDefaults(defaults *Config) {
	if c.Echo.Port == 0 {
		c.Echo.Port = defaults.Echo.Port
	}
	if c.Echo.ConnectCID == 0 {
		c.Echo.ConnectCID = defaults.Echo.ConnectCID
	}
	if c.Echo.Backlog == 0 {
		c.Echo.Backlog = defaults.Echo.Backlog
	}
	if c.Echo.BufferSize == 0 {
		c.Echo.BufferSize = defaults.Echo.BufferSize
	}
	if c.Echo.ClientMessage == "" {
		c.Echo.ClientMessage = defaults.Echo.ClientMessage
	}
	if c.Echo.ServerMessage == "" {
		c.Echo.ServerMessage = defaults.Echo.ServerMessage
	}
}
