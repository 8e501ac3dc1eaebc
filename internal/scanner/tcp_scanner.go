package scanner

import (
	"fmt"

	"github.com/mmendl/rawscan/internal/rawsock"
)

// ScanTCP runs the §4.5 TCP driver for one port: open a raw TCP socket,
// build and send one SYN, classify replies under the deadline; on an
// inconclusive first attempt, retransmit once with a fresh deadline and
// classify again; FILTERED if the second attempt is also inconclusive.
func ScanTCP(ifaceName string, sender, target NetworkAddress, port int, timeoutMs int) (ScanVerdict, error) {
	senderIP, err := parseIP(sender)
	if err != nil {
		return Unknown, err
	}
	targetIP, err := parseIP(target)
	if err != nil {
		return Unknown, err
	}

	sock, err := rawsock.New(rawsock.Config{
		Family:    family(target.Version),
		Protocol:  rawsock.ProtoTCP,
		Interface: ifaceName,
		Mode:      rawsock.PollDeadline,
	})
	if err != nil {
		return Unknown, fmt.Errorf("%w: %v", ErrSocketCreateFailed, err)
	}
	defer sock.Close()

	srcPort := newEphemeralPort()
	syn := BuildSYN(target.Version, senderIP, targetIP, uint16(srcPort), uint16(port))

	verdict, err := tcpAttempt(sock, syn, target.Version, targetIP, senderIP, port, timeoutMs)
	if err != nil {
		return Unknown, err
	}
	if verdict == Open || verdict == Closed {
		return verdict, nil
	}

	// Inconclusive: retransmit once with a fresh deadline (§4.5 step 5).
	verdict, err = tcpAttempt(sock, syn, target.Version, targetIP, senderIP, port, timeoutMs)
	if err != nil {
		return Unknown, err
	}
	if verdict == Open || verdict == Closed {
		return verdict, nil
	}
	return Filtered, nil
}

// tcpAttempt sends syn once and classifies incoming packets on sock until
// a conclusive verdict arrives or the deadline expires.
func tcpAttempt(sock *rawsock.Socket, syn []byte, version IpVersion, targetIP, senderIP []byte, port, timeoutMs int) (ScanVerdict, error) {
	if err := sock.SendTo(targetIP, port, syn); err != nil {
		return Unknown, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	buf := make([]byte, 1500)
	remaining := int64(timeoutMs)

	for remaining > 0 {
		res, err := sock.RecvWithDeadline(buf, remaining)
		if err != nil {
			return Unknown, err
		}
		remaining = res.RemainingMs
		if res.N <= 0 {
			continue
		}

		var verdict ScanVerdict
		if version == V6 {
			verdict = classifyTCPv6(buf[:res.N])
		} else {
			verdict = classifyTCPv4(buf[:res.N], senderIP)
		}
		if verdict == Open || verdict == Closed {
			return verdict, nil
		}
		// Unknown: ignore, continue waiting under the same deadline.
	}
	return Unknown, nil
}
