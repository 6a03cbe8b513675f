// Command vsock-cid-device prints the local vsock CID, read with
// IOCTL_VM_SOCKETS_GET_LOCAL_CID on the vsock character device.
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/cid"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/paths"
)

func main() {
	diag.Main("vsock-cid-device", run)
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	device := &cid.Device{Path: paths.DevicePath(cfg.Discovery)}

	id, err := device.LocalCID(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Local CID: %d\n", id)
	return nil
}
