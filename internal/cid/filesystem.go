package cid

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/containerd/errdefs"
	"github.com/containerd/log"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
)

// maxCIDFileSize bounds how much of a local_cid file is read. The kernel
// writes a single decimal number.
const maxCIDFileSize = 64

// Filesystem reads the CID from the first of Paths that can be opened.
type Filesystem struct {
	Paths []string
}

func (f *Filesystem) Name() string { return config.StrategyFilesystem }

func (f *Filesystem) LocalCID(ctx context.Context) (uint32, error) {
	file, err := openFirst(ctx, f.Paths)
	if err != nil {
		return 0, diag.Op("cannot find CID in procfs/sysfs", err)
	}
	defer file.Close()

	cid, err := parseCID(file)
	if err != nil {
		return 0, diag.Op("parse CID from "+file.Name(), err)
	}

	log.G(ctx).WithFields(log.Fields{"path": file.Name(), "cid": cid}).Debug("read local CID from file")
	return cid, nil
}

// openFirst opens the first candidate that can be opened. The error of the
// last attempt is returned when none can.
func openFirst(ctx context.Context, candidates []string) (*os.File, error) {
	err := fmt.Errorf("no local_cid paths configured: %w", errdefs.ErrNotFound)
	for _, path := range candidates {
		file, openErr := os.Open(path)
		if openErr == nil {
			return file, nil
		}
		log.G(ctx).WithError(openErr).WithField("path", path).Debug("local_cid not readable, trying next")
		err = openErr
	}
	return nil, err
}

// parseCID parses the first whitespace-delimited token of r as an unsigned
// 32-bit decimal integer.
func parseCID(r io.Reader) (uint32, error) {
	s := bufio.NewScanner(io.LimitReader(r, maxCIDFileSize))
	s.Split(bufio.ScanWords)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("no CID value: %w", errdefs.ErrInvalidArgument)
	}

	v, err := strconv.ParseUint(s.Text(), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not an unsigned 32-bit integer: %w", s.Text(), errdefs.ErrInvalidArgument)
	}
	return uint32(v), nil
}
