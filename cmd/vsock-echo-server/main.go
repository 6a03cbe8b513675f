// Command vsock-echo-server accepts a single connection on port 9999 of the
// wildcard CID, prints the message it receives, replies once and exits.
package main

import (
	"context"
	"io"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/echo"
)

func main() {
	diag.Main("vsock-echo-server", func(ctx context.Context, cfg *config.Config, out io.Writer) error {
		return echo.RunServer(ctx, cfg.Echo, echo.ListenVsock, out)
	})
}
