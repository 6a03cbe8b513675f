package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Discovery.Strategy != StrategyDevice {
		t.Errorf("expected Strategy %s, got %s", StrategyDevice, cfg.Discovery.Strategy)
	}
	if cfg.Discovery.DevicePath != "/dev/vsock" {
		t.Errorf("expected DevicePath /dev/vsock, got %s", cfg.Discovery.DevicePath)
	}
	if cfg.Discovery.ProcPath != "/proc/sys/net/vsock/local_cid" {
		t.Errorf("expected ProcPath /proc/sys/net/vsock/local_cid, got %s", cfg.Discovery.ProcPath)
	}
	if cfg.Discovery.SysfsPath != "/sys/module/vsock/parameters/local_cid" {
		t.Errorf("expected SysfsPath /sys/module/vsock/parameters/local_cid, got %s", cfg.Discovery.SysfsPath)
	}

	if cfg.Echo.Port != 9999 {
		t.Errorf("expected Port 9999, got %d", cfg.Echo.Port)
	}
	if cfg.Echo.ConnectCID != 1 {
		t.Errorf("expected ConnectCID 1, got %d", cfg.Echo.ConnectCID)
	}
	if cfg.Echo.Backlog != 1 {
		t.Errorf("expected Backlog 1, got %d", cfg.Echo.Backlog)
	}
	if cfg.Echo.BufferSize != 1024 {
		t.Errorf("expected BufferSize 1024, got %d", cfg.Echo.BufferSize)
	}
	if len(cfg.Echo.ClientMessage) != 17 || len(cfg.Echo.ServerMessage) != 17 {
		t.Errorf("expected 17-byte messages, got %d and %d", len(cfg.Echo.ClientMessage), len(cfg.Echo.ServerMessage))
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom("/nonexistent/path/config.json")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "/nonexistent/path/config.json") {
		t.Errorf("error should mention config file path, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "config file not found") {
		t.Errorf("error should mention 'config file not found', got: %s", errMsg)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	configPath := writeConfig(t, "{invalid json}")

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFrom_AppliesDefaults(t *testing.T) {
	configPath := writeConfig(t, `{"debug": true, "discovery": {"strategy": "filesystem"}}`)

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if !cfg.Debug {
		t.Error("expected Debug to be true")
	}
	if cfg.Discovery.Strategy != StrategyFilesystem {
		t.Errorf("expected Strategy filesystem, got %s", cfg.Discovery.Strategy)
	}
	if cfg.Discovery.ProcPath != DefaultConfig().Discovery.ProcPath {
		t.Errorf("expected default ProcPath, got %s", cfg.Discovery.ProcPath)
	}
	if cfg.Echo.Port != 9999 {
		t.Errorf("expected default Port 9999, got %d", cfg.Echo.Port)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	configPath := writeConfig(t, `{
		"discovery": {"proc_path": "/tmp/proc_cid", "sysfs_path": "/tmp/sys_cid"},
		"echo": {"port": 5005, "connect_cid": 3, "backlog": 4, "buffer_size": 64}
	}`)

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Discovery.ProcPath != "/tmp/proc_cid" || cfg.Discovery.SysfsPath != "/tmp/sys_cid" {
		t.Errorf("paths not overridden: %+v", cfg.Discovery)
	}
	if cfg.Echo.Port != 5005 || cfg.Echo.ConnectCID != 3 || cfg.Echo.Backlog != 4 || cfg.Echo.BufferSize != 64 {
		t.Errorf("echo not overridden: %+v", cfg.Echo)
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	configPath := writeConfig(t, `{"discovery": {"strategy": "magic"}}`)

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("error should mention invalid configuration, got: %v", err)
	}
}

func TestLoad_EnvVar(t *testing.T) {
	configPath := writeConfig(t, `{"echo": {"port": 4242}}`)
	t.Setenv(ConfigEnvVar, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Echo.Port != 4242 {
		t.Errorf("expected Port 4242, got %d", cfg.Echo.Port)
	}
}

func TestLoad_EnvVarMissingFile(t *testing.T) {
	t.Setenv(ConfigEnvVar, filepath.Join(t.TempDir(), "missing.json"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for explicitly configured missing file")
	}
}

func TestGet_Caches(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	configPath := writeConfig(t, `{"echo": {"port": 1234}}`)
	t.Setenv(ConfigEnvVar, configPath)

	first, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// A changed file must not be observed until Reset.
	if err := os.WriteFile(configPath, []byte(`{"echo": {"port": 4321}}`), 0600); err != nil {
		t.Fatal(err)
	}
	second, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first != second || second.Echo.Port != 1234 {
		t.Errorf("Get() did not return cached config, port = %d", second.Echo.Port)
	}

	Reset()
	third, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if third.Echo.Port != 4321 {
		t.Errorf("expected reloaded Port 4321, got %d", third.Echo.Port)
	}
}
