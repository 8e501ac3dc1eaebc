//go:build linux || darwin || freebsd || netbsd || openbsd

// Package rawsock opens, binds, and operates raw IPv4/IPv6 sockets for a
// single L4 protocol, grounded on the syscall-level approach of
// sun977-NeoScan's netraw package and original_source/src/sockets.cpp.
package rawsock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ReceiveMode replaces the source's two mutable, mutually exclusive flags
// (nonBlocking and timeoutSet) with a single immutable choice made at
// construction.
type ReceiveMode int

const (
	// BlockingTimeout sets SO_RCVTIMEO once at construction.
	BlockingTimeout ReceiveMode = iota
	// PollDeadline marks the descriptor nonblocking and relies on the
	// caller driving poll(2) with a continuously-updated deadline.
	PollDeadline
)

// Wire protocol numbers a raw socket can be opened with, one for each of
// the scanner's Protocol values.
const (
	ProtoTCP    = unix.IPPROTO_TCP
	ProtoUDP    = unix.IPPROTO_UDP
	ProtoICMPv4 = unix.IPPROTO_ICMP
	ProtoICMPv6 = unix.IPPROTO_ICMPV6
)

// Address families, re-exported so callers need not import x/sys/unix
// directly (the windows build of this package defines the same names).
const (
	AF_INET  = unix.AF_INET
	AF_INET6 = unix.AF_INET6
)

// Socket is a raw socket bound to one local interface, family, and
// protocol. It holds no sender or receiver address: the destination is
// passed to each SendTo call.
type Socket struct {
	fd     int
	family int // unix.AF_INET or unix.AF_INET6
	mode   ReceiveMode
}

// Config describes how to open a Socket.
type Config struct {
	Family    int // unix.AF_INET or unix.AF_INET6
	Protocol  int // one of the Proto* constants
	Interface string
	Mode      ReceiveMode
	Timeout   time.Duration // required when Mode == BlockingTimeout
}

// New opens a raw socket for the requested family/protocol, binds it to
// the named interface (SO_BINDTODEVICE), and sets up the requested
// receive mode. Mode double-setting is structurally impossible here since
// Mode is chosen once and immutable thereafter.
func New(cfg Config) (*Socket, error) {
	fd, err := unix.Socket(cfg.Family, unix.SOCK_RAW, cfg.Protocol)
	if err != nil {
		return nil, fmt.Errorf("raw socket create: %w", err)
	}

	if cfg.Interface != "" {
		if err := unix.SetsockoptString(fd, unix.SOL_SOCKET, unix.SO_BINDTODEVICE, cfg.Interface); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("bind to interface %q: %w", cfg.Interface, err)
		}
	}

	// No IP_HDRINCL: this package only ever writes L4 headers (§4.3), never
	// the IP header itself, so the kernel builds it as usual.
	s := &Socket{fd: fd, family: cfg.Family, mode: cfg.Mode}

	switch cfg.Mode {
	case BlockingTimeout:
		tv := unix.NsecToTimeval(cfg.Timeout.Nanoseconds())
		if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("set SO_RCVTIMEO: %w", err)
		}
	case PollDeadline:
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("set nonblocking: %w", err)
		}
	}

	return s, nil
}

// Close releases the underlying descriptor. Safe to call once; the caller
// is responsible for scoping acquisition (defer Close() immediately after
// New returns successfully).
func (s *Socket) Close() error {
	return unix.Close(s.fd)
}

// Fd exposes the raw descriptor for poll(2)-based readiness waits.
func (s *Socket) Fd() int {
	return s.fd
}
