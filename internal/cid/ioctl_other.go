//go:build !linux

package cid

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
)

func (d *Device) LocalCID(context.Context) (uint32, error) {
	return 0, diag.Op("ioctl", fmt.Errorf("vsock device: %w", errdefs.ErrNotImplemented))
}

func (s *Socket) LocalCID(context.Context) (uint32, error) {
	return 0, diag.Op("socket", fmt.Errorf("AF_VSOCK: %w", errdefs.ErrNotImplemented))
}
