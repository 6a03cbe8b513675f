// Command vsock-probe checks that a vsock listener is reachable at a CID and
// port. It connects, reports, and closes without sending anything.
package main

import (
	"context"
	"flag"
	"io"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/echo"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/version"
	vsockports "github.com/rtibuludji/nitro-enclave-cvv/internal/vsock"
)

func main() {
	var (
		contextID   uint
		port        uint
		showVersion bool
	)
	flag.UintVar(&contextID, "cid", uint(vsockports.LocalCID), "vsock context ID to connect to")
	flag.UintVar(&port, "port", uint(vsockports.ProbePort), "vsock port to connect to")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		version.Print("vsock-probe")
		return
	}

	diag.Main("vsock-probe", func(ctx context.Context, _ *config.Config, out io.Writer) error {
		return echo.Probe(ctx, uint32(contextID), uint32(port), echo.DialVsock, out)
	})
}
