// Package scanner builds and classifies raw TCP/UDP probe packets and
// drives a single port's scan to a verdict.
package scanner

import "fmt"

// IpVersion discriminates IPv4 from IPv6 addressing.
type IpVersion int

const (
	V4 IpVersion = iota
	V6
)

func (v IpVersion) String() string {
	if v == V6 {
		return "v6"
	}
	return "v4"
}

// NetworkAddress is a local interface address or a scan target, depending
// on context. HostLabel is the interface name (local address) or the DNS
// name an IP was resolved from (target); it may be empty. Port is -1 when
// unassigned.
type NetworkAddress struct {
	HostLabel string
	IP        string
	Version   IpVersion
	Port      int16
}

// Protocol identifies the wire protocol of a probe or response socket.
type Protocol int

const (
	TCP Protocol = iota
	UDP
	ICMPv4
	ICMPv6
)

func (p Protocol) String() string {
	switch p {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	case ICMPv4:
		return "icmpv4"
	case ICMPv6:
		return "icmpv6"
	default:
		return "unknown"
	}
}

// ScanVerdict is the outcome of classifying a single port.
type ScanVerdict int

const (
	Incomplete ScanVerdict = iota
	Unknown
	Open
	Closed
	Filtered
)

func (v ScanVerdict) String() string {
	switch v {
	case Open:
		return "open"
	case Closed:
		return "closed"
	case Filtered:
		return "filtered"
	case Incomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// Probe is the state of a single port-scan attempt: one probe exists for
// exactly one port; its raw sockets are released on verdict or timeout.
type Probe struct {
	Family        IpVersion
	Protocol      Protocol
	Sender        NetworkAddress
	Receiver      NetworkAddress
	EphemeralPort int
	Payload       []byte
}

// ScanOutcome is the per-(target,port,protocol) result the engine emits.
type ScanOutcome struct {
	TargetIP string
	Port     int
	Protocol string
	Verdict  ScanVerdict
}

// Line renders the canonical "<target_ip> <port> <tcp|udp> <verdict>" form.
func (o ScanOutcome) Line() string {
	return fmt.Sprintf("%s %d %s %s", o.TargetIP, o.Port, o.Protocol, o.Verdict)
}
