package echo

import (
	"context"
	"fmt"
	"io"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
)

// RunClient connects to the echo server, sends the client message, and
// prints the single reply it reads.
func RunClient(ctx context.Context, cfg config.EchoConfig, dial Dialer, out io.Writer) error {
	conn, err := dial(ctx, cfg.ConnectCID, cfg.Port)
	if err != nil {
		return diag.Op("connect", err)
	}
	defer conn.Close()

	fmt.Fprintln(out, "Connected via VSOCK!")

	send(ctx, conn, []byte(cfg.ClientMessage))

	if msg, ok := receive(ctx, conn, cfg.BufferSize); ok {
		fmt.Fprintf(out, "Received: %s\n", msg)
	}
	return nil
}

// Probe dials (cid, port) and reports whether the connection was established.
// Nothing is sent.
func Probe(ctx context.Context, cid, port uint32, dial Dialer, out io.Writer) error {
	fmt.Fprintf(out, "Connecting to vsock CID %d port %d...\n", cid, port)

	conn, err := dial(ctx, cid, port)
	if err != nil {
		return diag.Op("connect", err)
	}
	defer conn.Close()

	fmt.Fprintln(out, "Connected!")
	return nil
}
