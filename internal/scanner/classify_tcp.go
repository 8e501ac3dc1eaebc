package scanner

import "net"

// classifyTCPv4 implements §4.4 TCP v4 classification: parse the IPv4
// header, reject short or non-TCP packets, require the reply be addressed
// to ourSourceIP, then decide from the TCP flags byte. Returns Unknown
// for "ignore, continue waiting" paths — the caller's poll loop keeps the
// same deadline.
func classifyTCPv4(data []byte, ourSourceIP net.IP) ScanVerdict {
	if len(data) < 20 {
		return Unknown
	}
	ihl := int(data[0]&0x0f) * 4
	if len(data) < ihl+8 {
		return Unknown
	}
	if data[9] != ProtocolNumberTCP {
		return Unknown
	}

	daddr := net.IP(data[16:20])
	if !daddr.Equal(ourSourceIP) {
		return Unknown
	}

	tcp := data[ihl:]
	if len(tcp) < tcpHeaderLen {
		return Unknown
	}
	return classifyTCPFlags(tcp[13])
}

// classifyTCPv6 implements §4.4 TCP v6 classification: the kernel strips
// the IPv6 header before delivery on a raw IPv6 TCP socket, so the TCP
// header starts at offset 0.
func classifyTCPv6(data []byte) ScanVerdict {
	if len(data) < tcpHeaderLen {
		return Unknown
	}
	return classifyTCPFlags(data[13])
}

// classifyTCPFlags applies the RST→CLOSED, SYN|ACK→OPEN, else→Unknown
// rule shared by both address families.
func classifyTCPFlags(flags byte) ScanVerdict {
	const (
		flagRST = 0x04
		flagSYN = 0x02
		flagACK = 0x10
	)
	switch {
	case flags&flagRST != 0:
		return Closed
	case flags&(flagSYN|flagACK) != 0:
		return Open
	default:
		return Unknown
	}
}
