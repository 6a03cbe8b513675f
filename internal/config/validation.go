package config

import (
	"fmt"
	"path/filepath"
)

const (
	minBufferSize = 2
	maxBufferSize = 1 << 20

	// portAny mirrors VMADDR_PORT_ANY.
	portAny = 0xFFFFFFFF
)

// Validate validates the entire configuration.
func (c *Config) Validate() error {
	if err := c.validateDiscovery(); err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	if err := c.validateEcho(); err != nil {
		return fmt.Errorf("echo: %w", err)
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	switch c.Discovery.Strategy {
	case StrategyDevice, StrategySocket, StrategyFilesystem:
	default:
		return fmt.Errorf("strategy must be one of %q, %q or %q, got %q",
			StrategyDevice, StrategySocket, StrategyFilesystem, c.Discovery.Strategy)
	}

	if err := validateAbsPath(c.Discovery.DevicePath, "device_path"); err != nil {
		return err
	}
	if err := validateAbsPath(c.Discovery.ProcPath, "proc_path"); err != nil {
		return err
	}
	return validateAbsPath(c.Discovery.SysfsPath, "sysfs_path")
}

func (c *Config) validateEcho() error {
	if c.Echo.Port == 0 || c.Echo.Port == portAny {
		return fmt.Errorf("port must be a fixed port, got %d", c.Echo.Port)
	}
	if c.Echo.Backlog < 1 {
		return fmt.Errorf("backlog must be at least 1, got %d", c.Echo.Backlog)
	}
	if c.Echo.BufferSize < minBufferSize || c.Echo.BufferSize > maxBufferSize {
		return fmt.Errorf("buffer_size must be between %d and %d, got %d",
			minBufferSize, maxBufferSize, c.Echo.BufferSize)
	}
	if c.Echo.ClientMessage == "" {
		return fmt.Errorf("client_message cannot be empty")
	}
	if c.Echo.ServerMessage == "" {
		return fmt.Errorf("server_message cannot be empty")
	}
	return nil
}

func validateAbsPath(path, name string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be an absolute path, got %q", name, path)
	}
	return nil
}
