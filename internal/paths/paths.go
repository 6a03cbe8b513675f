// Package paths provides the well-known kernel interfaces the local vsock
// CID can be read from. These helpers take configuration as input to avoid
// global config coupling.
package paths

import (
	"os"
	"path/filepath"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
)

const (
	// DevVsock is the vsock character device that answers the
	// IOCTL_VM_SOCKETS_GET_LOCAL_CID request.
	DevVsock = "/dev/vsock"

	// ProcLocalCID is the primary procfs location of the local CID.
	ProcLocalCID = "/proc/sys/net/vsock/local_cid"

	// SysfsLocalCID is the vsock module parameter consulted when the
	// procfs entry is unavailable.
	SysfsLocalCID = "/sys/module/vsock/parameters/local_cid"
)

// Interface describes one kernel interface and whether it is present.
type Interface struct {
	Name    string
	Path    string
	Present bool
}

// DevicePath returns the vsock device path based on the provided configuration
func DevicePath(cfg config.DiscoveryConfig) string {
	if cfg.DevicePath != "" {
		return cfg.DevicePath
	}
	return DevVsock
}

// LocalCIDFiles returns the local_cid files in lookup order: primary first,
// fallback second.
func LocalCIDFiles(cfg config.DiscoveryConfig) []string {
	primary, fallback := cfg.ProcPath, cfg.SysfsPath
	if primary == "" {
		primary = ProcLocalCID
	}
	if fallback == "" {
		fallback = SysfsLocalCID
	}
	return []string{primary, fallback}
}

// Interfaces reports which kernel interfaces exist on this host.
func Interfaces(cfg config.DiscoveryConfig) []Interface {
	files := LocalCIDFiles(cfg)
	candidates := []Interface{
		{Name: "device", Path: DevicePath(cfg)},
		{Name: "procfs", Path: files[0]},
		{Name: "sysfs", Path: files[1]},
	}
	for i := range candidates {
		candidates[i].Present = fileExists(candidates[i].Path)
	}
	return candidates
}

// fileExists checks if a non-directory exists, resolving symlinks to the real path.
// This surfaces the real target but does not prevent TOCTOU issues.
func fileExists(path string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(resolved)
	return err == nil && !info.IsDir()
}
