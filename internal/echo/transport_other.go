//go:build !linux

package echo

import (
	"context"
	"fmt"
	"io"

	"github.com/containerd/errdefs"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
)

// DialVsock is only implemented on Linux.
func DialVsock(context.Context, uint32, uint32) (io.ReadWriteCloser, error) {
	return nil, fmt.Errorf("AF_VSOCK: %w", errdefs.ErrNotImplemented)
}

// ListenVsock is only implemented on Linux.
func ListenVsock(context.Context, uint32, uint32, int) (Listener, error) {
	return nil, diag.Op("socket", fmt.Errorf("AF_VSOCK: %w", errdefs.ErrNotImplemented))
}
