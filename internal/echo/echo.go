// Package echo implements the one-shot vsock echo exchange: a client that
// sends one message and prints one reply, a server that accepts exactly one
// connection, and a connect-only probe.
//
// There is no framing. Each side performs a single write and a single read;
// short writes and empty reads are not errors.
package echo

import (
	"bytes"
	"context"
	"io"

	"github.com/containerd/log"
)

// Dialer connects a stream socket to (cid, port).
type Dialer func(ctx context.Context, cid, port uint32) (io.ReadWriteCloser, error)

// Listener accepts stream connections.
type Listener interface {
	Accept(ctx context.Context) (io.ReadWriteCloser, error)
	Close() error
}

// ListenFunc binds (cid, port) and starts listening with backlog.
type ListenFunc func(ctx context.Context, cid, port uint32, backlog int) (Listener, error)

// send writes msg once. A failed or short write is logged and otherwise ignored.
func send(ctx context.Context, w io.Writer, msg []byte) {
	n, err := w.Write(msg)
	if err != nil || n != len(msg) {
		log.G(ctx).WithError(err).WithFields(log.Fields{"written": n, "len": len(msg)}).Debug("incomplete write")
	}
}

// receive performs a single read into a buffer of bufSize bytes, keeping the
// last byte free for a C-style terminator. The text
// ends at the first NUL. ok is false when nothing was read.
func receive(ctx context.Context, r io.Reader, bufSize int) (msg []byte, ok bool) {
	buf := make([]byte, bufSize)
	n, err := r.Read(buf[:bufSize-1])
	if n <= 0 {
		log.G(ctx).WithError(err).Debug("nothing received")
		return nil, false
	}

	msg = buf[:n]
	if i := bytes.IndexByte(msg, 0); i >= 0 {
		msg = msg[:i]
	}
	return msg, true
}
