package scanner

import (
	"encoding/binary"
	"net"
	"testing"
)

// TestBuildSYNInvariants exercises P4: every emitted TCP probe has SYN set
// and every other control flag clear, data offset 5, no options, and wire
// length 20.
func TestBuildSYNInvariants(t *testing.T) {
	src := net.ParseIP("192.0.2.10")
	dst := net.ParseIP("192.0.2.20")

	tcp := BuildSYN(V4, src, dst, 50000, 80)

	if len(tcp) != tcpHeaderLen {
		t.Fatalf("len(tcp) = %d, want %d", len(tcp), tcpHeaderLen)
	}
	if binary.BigEndian.Uint16(tcp[0:2]) != 50000 {
		t.Errorf("source port = %d, want 50000", binary.BigEndian.Uint16(tcp[0:2]))
	}
	if binary.BigEndian.Uint16(tcp[2:4]) != 80 {
		t.Errorf("dest port = %d, want 80", binary.BigEndian.Uint16(tcp[2:4]))
	}
	if dataOffset := tcp[12] >> 4; dataOffset != 5 {
		t.Errorf("data offset = %d, want 5", dataOffset)
	}
	flags := tcp[13]
	if flags&0x02 == 0 {
		t.Error("SYN flag not set")
	}
	if flags&^byte(0x02) != 0 {
		t.Errorf("unexpected flags set: 0x%02x", flags)
	}
}

// TestBuildSYNChecksumRoundTrip exercises P3 for a hand-assembled TCP SYN.
func TestBuildSYNChecksumRoundTrip(t *testing.T) {
	src := net.ParseIP("10.0.0.1")
	dst := net.ParseIP("10.0.0.2")

	tcp := BuildSYN(V4, src, dst, 51000, 443)
	pseudo := pseudoHeader(V4, src, dst, ProtocolNumberTCP, len(tcp))

	if !ValidateChecksum(append(pseudo, tcp...)) {
		t.Error("pseudo-header ‖ tcp header does not sum to zero")
	}
}

func TestBuildSYNChecksumRoundTripV6(t *testing.T) {
	src := net.ParseIP("2001:db8::1")
	dst := net.ParseIP("2001:db8::2")

	tcp := BuildSYN(V6, src, dst, 51000, 443)
	pseudo := pseudoHeader(V6, src, dst, ProtocolNumberTCP, len(tcp))

	if !ValidateChecksum(append(pseudo, tcp...)) {
		t.Error("ipv6 pseudo-header ‖ tcp header does not sum to zero")
	}
}

// TestBuildUDPInvariants exercises P5.
func TestBuildUDPInvariants(t *testing.T) {
	src := net.ParseIP("192.0.2.10")
	dst := net.ParseIP("192.0.2.20")

	udp := BuildUDP(V4, src, dst, 50000, 53)

	if len(udp) != udpHeaderLen {
		t.Fatalf("len(udp) = %d, want %d", len(udp), udpHeaderLen)
	}
	if binary.BigEndian.Uint16(udp[0:2]) != 50000 {
		t.Errorf("source port = %d, want 50000", binary.BigEndian.Uint16(udp[0:2]))
	}
	if binary.BigEndian.Uint16(udp[2:4]) != 53 {
		t.Errorf("dest port = %d, want 53", binary.BigEndian.Uint16(udp[2:4]))
	}
	if binary.BigEndian.Uint16(udp[4:6]) != 8 {
		t.Errorf("length = %d, want 8", binary.BigEndian.Uint16(udp[4:6]))
	}
}

func TestBuildUDPChecksumRoundTrip(t *testing.T) {
	src := net.ParseIP("10.0.0.1")
	dst := net.ParseIP("10.0.0.2")

	udp := BuildUDP(V4, src, dst, 51000, 9)
	pseudo := pseudoHeader(V4, src, dst, ProtocolNumberUDP, len(udp))

	if !ValidateChecksum(append(pseudo, udp...)) {
		t.Error("pseudo-header ‖ udp header does not sum to zero")
	}
}
