// Command vsock-echo-client connects to the echo server on the loopback CID,
// sends one message and prints the reply.
package main

import (
	"context"
	"io"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/echo"
)

func main() {
	diag.Main("vsock-echo-client", func(ctx context.Context, cfg *config.Config, out io.Writer) error {
		return echo.RunClient(ctx, cfg.Echo, echo.DialVsock, out)
	})
}
