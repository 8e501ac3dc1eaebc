//go:build linux || darwin || freebsd || netbsd || openbsd

package rawsock

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// SendTo transmits buf to the given IP/port. For IPv6 the destination
// port field must be zeroed before sendto: raw IPv6 sockets reject sends
// where a port is set, since the port belongs to the not-yet-built
// transport header, not the socket address.
func (s *Socket) SendTo(ip net.IP, port int, buf []byte) error {
	switch s.family {
	case unix.AF_INET:
		var addr [4]byte
		v4 := ip.To4()
		if v4 == nil {
			return fmt.Errorf("sendto: %s is not an IPv4 address", ip)
		}
		copy(addr[:], v4)
		sa := &unix.SockaddrInet4{Port: port, Addr: addr}
		if err := unix.Sendto(s.fd, buf, 0, sa); err != nil {
			return fmt.Errorf("sendto %s: %w", ip, err)
		}
	case unix.AF_INET6:
		var addr [16]byte
		v6 := ip.To16()
		if v6 == nil {
			return fmt.Errorf("sendto: %s is not an IPv6 address", ip)
		}
		copy(addr[:], v6)
		sa := &unix.SockaddrInet6{Port: 0, Addr: addr}
		if err := unix.Sendto(s.fd, buf, 0, sa); err != nil {
			return fmt.Errorf("sendto %s: %w", ip, err)
		}
	default:
		return fmt.Errorf("sendto: unknown family")
	}
	return nil
}

// RecvResult is the outcome of one recv_with_deadline call.
type RecvResult struct {
	N           int
	Peer        net.IP
	RemainingMs int64 // non-positive on timeout
}

// RecvWithDeadline waits for at most the remaining deadline using poll(2),
// attempting one datagram read per wakeup. The deadline is continuously
// updated across calls from the same loop (the caller passes the
// remaining budget in, and uses the returned RemainingMs for the next
// call) so repeated uninteresting packets cannot extend the total wait.
// bytes_read == 0 is treated as no data, not as a signal to stop.
func (s *Socket) RecvWithDeadline(buf []byte, deadlineMs int64) (RecvResult, error) {
	if deadlineMs <= 0 {
		return RecvResult{N: -1, RemainingMs: deadlineMs}, nil
	}

	start := time.Now()
	pfd := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}

	n, err := unix.Poll(pfd, int(deadlineMs))
	elapsed := time.Since(start).Milliseconds()
	remaining := deadlineMs - elapsed
	if err != nil {
		return RecvResult{}, fmt.Errorf("poll: %w", err)
	}
	if n == 0 {
		// Timed out waiting for readiness.
		return RecvResult{N: -1, RemainingMs: minInt64(remaining, 0)}, nil
	}

	read, peer, err := s.recvfrom(buf)
	if err != nil {
		if remaining <= 0 {
			return RecvResult{N: -1, RemainingMs: remaining}, nil
		}
		return RecvResult{}, fmt.Errorf("recvfrom: %w", err)
	}

	return RecvResult{N: read, Peer: peer, RemainingMs: remaining}, nil
}

func (s *Socket) recvfrom(buf []byte) (int, net.IP, error) {
	n, from, err := unix.Recvfrom(s.fd, buf, 0)
	if err != nil {
		return 0, nil, err
	}

	switch addr := from.(type) {
	case *unix.SockaddrInet4:
		return n, net.IP(addr.Addr[:]), nil
	case *unix.SockaddrInet6:
		return n, net.IP(addr.Addr[:]), nil
	default:
		return n, nil, nil
	}
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
