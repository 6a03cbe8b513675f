// Package diag holds the plumbing shared by the vsock diagnostic commands:
// perror-style operation errors, error classes, logging setup and exit codes.
package diag

import (
	"errors"

	"github.com/containerd/errdefs"
	"golang.org/x/sys/unix"
)

// OpError records the operation that failed and the OS error behind it.
// Kind is the errdefs class of Err, if any.
type OpError struct {
	Op   string
	Err  error
	Kind error
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Kind}
}

// Op reports err as the failure of op. The bare errno is kept when err wraps
// one, so the message reads like perror(3) output. Op returns nil for a nil
// err and returns an existing *OpError unchanged.
func Op(op string, err error) error {
	if err == nil {
		return nil
	}

	var oe *OpError
	if errors.As(err, &oe) {
		return err
	}

	var errno unix.Errno
	if errors.As(err, &errno) {
		err = errno
	}
	return &OpError{Op: op, Err: err, Kind: Classify(err)}
}

// Classify maps err onto a containerd/errdefs class. It returns nil when no
// class applies.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errdefs.IsNotFound(err):
		return errdefs.ErrNotFound
	case errdefs.IsInvalidArgument(err):
		return errdefs.ErrInvalidArgument
	case errdefs.IsPermissionDenied(err):
		return errdefs.ErrPermissionDenied
	case errdefs.IsUnavailable(err):
		return errdefs.ErrUnavailable
	case errdefs.IsAlreadyExists(err):
		return errdefs.ErrAlreadyExists
	case errdefs.IsNotImplemented(err):
		return errdefs.ErrNotImplemented
	case errdefs.IsConflict(err):
		return errdefs.ErrConflict
	}

	var errno unix.Errno
	if !errors.As(err, &errno) {
		return nil
	}
	switch errno {
	case unix.ENOENT, unix.ENODEV, unix.ENXIO:
		return errdefs.ErrNotFound
	case unix.EACCES, unix.EPERM:
		return errdefs.ErrPermissionDenied
	case unix.ECONNREFUSED, unix.ECONNRESET, unix.ETIMEDOUT, unix.EHOSTUNREACH, unix.ENETUNREACH:
		return errdefs.ErrUnavailable
	case unix.EADDRINUSE:
		return errdefs.ErrAlreadyExists
	case unix.EAFNOSUPPORT, unix.ENOTTY, unix.EOPNOTSUPP:
		return errdefs.ErrNotImplemented
	case unix.EINVAL:
		return errdefs.ErrInvalidArgument
	}
	return nil
}
