// Command vsock-cid-fs prints the local vsock CID read from procfs, falling
// back to the vsock module parameter in sysfs.
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
	diag.Main("vsock-cid-fs", run)
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	fs := &cid.Filesystem{Paths: paths.LocalCIDFiles(cfg.Discovery)}

	id, err := fs.LocalCID(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Local CID: %d\n", id)
	return nil
}
