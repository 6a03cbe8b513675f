// Package cid discovers the local vsock context ID. Three interchangeable
// strategies read it from different kernel interfaces: an ioctl on the vsock
// character device, the same ioctl on an AF_VSOCK socket, or the procfs/sysfs
// text files.
package cid

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/paths"
)

// Provider looks up the local CID.
type Provider interface {
	Name() string
	LocalCID(ctx context.Context) (uint32, error)
}

// Device issues IOCTL_VM_SOCKETS_GET_LOCAL_CID on the vsock character device.
type Device struct {
	Path string
}

func (d *Device) Name() string { return config.StrategyDevice }

// Socket issues IOCTL_VM_SOCKETS_GET_LOCAL_CID on an unconnected AF_VSOCK
// stream socket.
type Socket struct{}

func (s *Socket) Name() string { return config.StrategySocket }

// Strategies returns the known strategy names in the order "all" runs them.
func Strategies() []string {
	return []string{config.StrategyDevice, config.StrategySocket, config.StrategyFilesystem}
}

// New returns the provider for strategy.
func New(strategy string, cfg config.DiscoveryConfig) (Provider, error) {
	switch strategy {
	case config.StrategyDevice:
		return &Device{Path: paths.DevicePath(cfg)}, nil
	case config.StrategySocket:
		return &Socket{}, nil
	case config.StrategyFilesystem:
		return &Filesystem{Paths: paths.LocalCIDFiles(cfg)}, nil
	}
	return nil, fmt.Errorf("unknown discovery strategy %q: %w", strategy, errdefs.ErrInvalidArgument)
}

// FromConfig returns the provider selected by cfg.Strategy.
func FromConfig(cfg config.DiscoveryConfig) (Provider, error) {
	return New(cfg.Strategy, cfg)
}

// All returns one provider per strategy.
func All(cfg config.DiscoveryConfig) []Provider {
	providers := make([]Provider, 0, len(Strategies()))
	for _, s := range Strategies() {
		p, err := New(s, cfg)
		if err != nil {
			panic(err) // Strategies and New are out of sync
		}
		providers = append(providers, p)
	}
	return providers
}
