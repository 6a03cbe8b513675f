// Command vsock-cid-socket prints the local vsock CID, read with
// IOCTL_VM_SOCKETS_GET_LOCAL_CID on an unconnected AF_VSOCK socket.
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/cid"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
)

func main() {
	diag.Main("vsock-cid-socket", run)
}

func run(ctx context.Context, _ *config.Config, out io.Writer) error {
	id, err := (&cid.Socket{}).LocalCID(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Local CID: %d\n", id)
	return nil
}
