// Package vsock provides the vsock port and CID constants shared by the
// diagnostic client and server.
package vsock

import (
	mdvsock "github.com/mdlayher/vsock"
	"golang.org/x/sys/unix"
)

const (
	// HypervisorCID is reserved for the hypervisor.
	HypervisorCID = mdvsock.Hypervisor

	// LocalCID is the loopback context ID. Traffic sent to it never leaves
	// the host and requires the vsock_loopback transport.
	LocalCID = mdvsock.Local

	// HostCID is the well-known CID of the host as seen from a guest.
	HostCID = mdvsock.Host

	// AnyCID is the wildcard CID; binding to it accepts connections
	// addressed to any local CID.
	AnyCID = unix.VMADDR_CID_ANY

	// AnyPort asks the kernel to pick a port. It is never a valid echo port.
	AnyPort = unix.VMADDR_PORT_ANY

	// EchoPort is the port the echo server listens on and the client dials.
	EchoPort = 9999

	// ProbePort is the default port dialed by vsock-probe.
	ProbePort = 3000
)
