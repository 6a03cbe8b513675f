//go:build linux

package cid

import (
	"context"
	"os"

	"github.com/containerd/log"
	"github.com/mdlayher/socket"
	"golang.org/x/sys/unix"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
)

func (d *Device) LocalCID(ctx context.Context) (uint32, error) {
	f, err := os.OpenFile(d.Path, os.O_RDONLY, 0)
	if err != nil {
		return 0, diag.Op("open "+d.Path, err)
	}
	defer f.Close()

	cid, err := unix.IoctlGetUint32(int(f.Fd()), unix.IOCTL_VM_SOCKETS_GET_LOCAL_CID)
	if err != nil {
		return 0, diag.Op("ioctl", err)
	}

	log.G(ctx).WithFields(log.Fields{"path": d.Path, "cid": cid}).Debug("read local CID from device")
	return cid, nil
}

func (s *Socket) LocalCID(ctx context.Context) (uint32, error) {
	c, err := socket.Socket(unix.AF_VSOCK, unix.SOCK_STREAM, 0, "vsock", nil)
	if err != nil {
		return 0, diag.Op("socket", err)
	}
	defer c.Close()

	rc, err := c.SyscallConn()
	if err != nil {
		return 0, diag.Op("socket", err)
	}

	var (
		cid      uint32
		ioctlErr error
	)
	if err := rc.Control(func(fd uintptr) {
		cid, ioctlErr = unix.IoctlGetUint32(int(fd), unix.IOCTL_VM_SOCKETS_GET_LOCAL_CID)
	}); err != nil {
		return 0, diag.Op("ioctl", err)
	}
	if ioctlErr != nil {
		return 0, diag.Op("ioctl", ioctlErr)
	}

	log.G(ctx).WithField("cid", cid).Debug("read local CID from socket")
	return cid, nil
}
