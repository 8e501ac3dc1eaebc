package scanner

import (
	"fmt"

	"github.com/mmendl/rawscan/internal/rawsock"
)

// ScanUDP runs the §4.5 UDP driver for one port: open a raw UDP socket to
// send on and a raw ICMP(v4/v6) socket to read from, send one datagram,
// and wait out the full deadline on the ICMP socket. A matching
// destination-unreachable reply is CLOSED; a clean timeout is OPEN
// (absence of evidence). There is no retransmit.
func ScanUDP(ifaceName string, sender, target NetworkAddress, port int, timeoutMs int) (ScanVerdict, error) {
	senderIP, err := parseIP(sender)
	if err != nil {
		return Unknown, err
	}
	targetIP, err := parseIP(target)
	if err != nil {
		return Unknown, err
	}

	udpSock, err := rawsock.New(rawsock.Config{
		Family:    family(target.Version),
		Protocol:  rawsock.ProtoUDP,
		Interface: ifaceName,
		Mode:      rawsock.PollDeadline,
	})
	if err != nil {
		return Unknown, fmt.Errorf("%w: %v", ErrSocketCreateFailed, err)
	}
	defer udpSock.Close()

	icmpProto := rawsock.ProtoICMPv4
	if target.Version == V6 {
		icmpProto = rawsock.ProtoICMPv6
	}
	icmpSock, err := rawsock.New(rawsock.Config{
		Family:    family(target.Version),
		Protocol:  icmpProto,
		Interface: ifaceName,
		Mode:      rawsock.PollDeadline,
	})
	if err != nil {
		return Unknown, fmt.Errorf("%w: %v", ErrSocketCreateFailed, err)
	}
	defer icmpSock.Close()

	srcPort := newEphemeralPort()
	datagram := BuildUDP(target.Version, senderIP, targetIP, uint16(srcPort), uint16(port))

	if err := udpSock.SendTo(targetIP, port, datagram); err != nil {
		return Unknown, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	buf := make([]byte, 1500)
	remaining := int64(timeoutMs)

	for remaining > 0 {
		res, err := icmpSock.RecvWithDeadline(buf, remaining)
		if err != nil {
			return Unknown, err
		}
		remaining = res.RemainingMs
		if res.N <= 0 {
			// Not a signal to stop (§9 open question 3): the loop keeps
			// running until the deadline is actually exhausted.
			continue
		}

		var verdict ScanVerdict
		if target.Version == V6 {
			verdict = classifyUDPv6(buf[:res.N], res.Peer, targetIP)
		} else {
			verdict = classifyUDPv4(buf[:res.N], res.Peer, targetIP)
		}
		if verdict == Closed {
			return Closed, nil
		}
		// Unknown: ignore, continue waiting under the same deadline.
	}
	return Open, nil
}
