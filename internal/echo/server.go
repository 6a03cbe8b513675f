package echo

import (
	"context"
	"fmt"
	"io"

	"github.com/containerd/log"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
	vsockports "github.com/rtibuludji/nitro-enclave-cvv/internal/vsock"
)

// RunServer listens on the wildcard CID, accepts exactly one connection,
// prints the one message it reads and answers with the server message. It
// never accepts a second connection.
func RunServer(ctx context.Context, cfg config.EchoConfig, listen ListenFunc, out io.Writer) error {
	l, err := listen(ctx, vsockports.AnyCID, cfg.Port, cfg.Backlog)
	if err != nil {
		return diag.Op("listen", err)
	}
	defer l.Close()

	fmt.Fprintf(out, "VSOCK server listening on port %d...\n", cfg.Port)

	conn, err := l.Accept(ctx)
	if err != nil {
		return diag.Op("accept", err)
	}
	defer conn.Close()
	log.G(ctx).Debug("accepted connection")

	if msg, ok := receive(ctx, conn, cfg.BufferSize); ok {
		fmt.Fprintf(out, "Received: %s\n", msg)
	}

	send(ctx, conn, []byte(cfg.ServerMessage))
	return nil
}
