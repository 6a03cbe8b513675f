//go:build linux

package echo

import (
	"context"
	"io"

	"github.com/containerd/log"
	"github.com/mdlayher/socket"
	"github.com/mdlayher/vsock"
	"golang.org/x/sys/unix"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
)

// DialVsock connects an AF_VSOCK stream socket to (cid, port).
func DialVsock(ctx context.Context, cid, port uint32) (io.ReadWriteCloser, error) {
	conn, err := vsock.Dial(cid, port, nil)
	if err != nil {
		return nil, err
	}
	log.G(ctx).WithFields(log.Fields{
		"local":  conn.LocalAddr(),
		"remote": conn.RemoteAddr(),
	}).Debug("vsock dialed")
	return conn, nil
}

// ListenVsock binds an AF_VSOCK stream socket to (cid, port) and listens with
// the given backlog. vsock.Listen always uses SOMAXCONN, so the socket is
// built directly.
func ListenVsock(ctx context.Context, cid, port uint32, backlog int) (_ Listener, retErr error) {
	c, err := socket.Socket(unix.AF_VSOCK, unix.SOCK_STREAM, 0, "vsock", nil)
	if err != nil {
		return nil, diag.Op("socket", err)
	}
	defer func() {
		if retErr != nil {
			_ = c.Close()
		}
	}()

	if err := c.Bind(&unix.SockaddrVM{CID: cid, Port: port}); err != nil {
		return nil, diag.Op("bind", err)
	}
	if err := c.Listen(backlog); err != nil {
		return nil, diag.Op("listen", err)
	}

	log.G(ctx).WithFields(log.Fields{
		"cid":     cid,
		"port":    port,
		"backlog": backlog,
	}).Debug("listening on vsock")
	return &socketListener{c: c}, nil
}

type socketListener struct {
	c *socket.Conn
}

func (l *socketListener) Accept(ctx context.Context) (io.ReadWriteCloser, error) {
	c, sa, err := l.c.Accept(ctx, 0)
	if err != nil {
		return nil, err
	}
	if peer, ok := sa.(*unix.SockaddrVM); ok {
		log.G(ctx).WithFields(log.Fields{"cid": peer.CID, "port": peer.Port}).Debug("vsock peer")
	}
	return c, nil
}

func (l *socketListener) Close() error {
	return l.c.Close()
}
