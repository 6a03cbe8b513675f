package diag

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOp_Nil(t *testing.T) {
	assert.NoError(t, Op("open", nil))
}

func TestOp_PerrorStyle(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "/dev/vsock", Err: unix.ENOENT}

	err := Op("open /dev/vsock", pathErr)
	require.Error(t, err)
	assert.Equal(t, "open /dev/vsock: "+unix.ENOENT.Error(), err.Error())

	var oe *OpError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "open /dev/vsock", oe.Op)
	assert.Equal(t, unix.ENOENT, oe.Err)

	assert.ErrorIs(t, err, unix.ENOENT)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, errdefs.IsNotFound(err))
}

func TestOp_SyscallError(t *testing.T) {
	err := Op("connect", os.NewSyscallError("connect", unix.ECONNREFUSED))
	assert.Equal(t, "connect: "+unix.ECONNREFUSED.Error(), err.Error())
	assert.True(t, errdefs.IsUnavailable(err))
}

func TestOp_KeepsExistingOpError(t *testing.T) {
	inner := Op("bind", unix.EADDRINUSE)
	outer := Op("listen", fmt.Errorf("server: %w", inner))

	var oe *OpError
	require.ErrorAs(t, outer, &oe)
	assert.Equal(t, "bind", oe.Op)
	assert.True(t, errdefs.IsAlreadyExists(outer))
}

func TestOp_NonErrno(t *testing.T) {
	err := Op("parse CID", fmt.Errorf("%q is not an unsigned integer: %w", "abc", errdefs.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "parse CID: ")
	assert.Contains(t, err.Error(), `"abc"`)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"plain", errors.New("boom"), nil},
		{"enoent", unix.ENOENT, errdefs.ErrNotFound},
		{"enodev", unix.ENODEV, errdefs.ErrNotFound},
		{"eacces", unix.EACCES, errdefs.ErrPermissionDenied},
		{"econnrefused", unix.ECONNREFUSED, errdefs.ErrUnavailable},
		{"econnreset", unix.ECONNRESET, errdefs.ErrUnavailable},
		{"eaddrinuse", unix.EADDRINUSE, errdefs.ErrAlreadyExists},
		{"eafnosupport", unix.EAFNOSUPPORT, errdefs.ErrNotImplemented},
		{"enotty", unix.ENOTTY, errdefs.ErrNotImplemented},
		{"einval", unix.EINVAL, errdefs.ErrInvalidArgument},
		{"wrapped errno", fmt.Errorf("dial: %w", unix.ECONNREFUSED), errdefs.ErrUnavailable},
		{"errdefs class", fmt.Errorf("x: %w", errdefs.ErrConflict), errdefs.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
