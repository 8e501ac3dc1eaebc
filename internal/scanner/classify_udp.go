package scanner

import (
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const icmpProtocolNumber = 1

// classifyUDPv4 implements §4.4 UDP v4 classification via the ICMPv4
// socket: parse the IPv4 header, require the ICMP protocol number and
// that the sender is the scanned target, then inspect the ICMP type.
// Destination Unreachable (type 3) means CLOSED; anything else is
// ignored and the poll loop keeps waiting under the same deadline.
func classifyUDPv4(data []byte, sender, target net.IP) ScanVerdict {
	if len(data) < 20 {
		return Unknown
	}
	if data[9] != icmpProtocolNumber {
		return Unknown
	}
	if !sender.Equal(target) {
		return Unknown
	}

	ihl := int(data[0]&0x0f) * 4
	if len(data) < ihl+1 {
		return Unknown
	}
	icmpType := data[ihl]
	if ipv4.ICMPType(icmpType) == ipv4.ICMPTypeDestinationUnreachable {
		return Closed
	}
	return Unknown
}

// classifyUDPv6 implements §4.4 UDP v6 classification: the kernel
// delivers only the ICMPv6 payload, so the type byte is at offset 0.
func classifyUDPv6(data []byte, sender, target net.IP) ScanVerdict {
	if !sender.Equal(target) {
		return Unknown
	}
	if len(data) < 1 {
		return Unknown
	}
	if ipv6.ICMPType(data[0]) == ipv6.ICMPTypeDestinationUnreachable {
		return Closed
	}
	return Unknown
}
