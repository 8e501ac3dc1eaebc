package scanner

import (
	"encoding/binary"
	"math/rand"
	"net"
)

// tcpHeaderLen is the fixed size of a SYN-only TCP header: no options.
const tcpHeaderLen = 20

// BuildSYN builds a TCP header with SYN set and every other control flag
// clear: randomized sequence number, ack 0, data offset 5, window 5840,
// source port srcPort, destination port dstPort. The checksum field is
// computed over the IPv4 or IPv6 pseudo-header concatenated with this
// header (§4.3) and written back in place.
func BuildSYN(version IpVersion, src, dst net.IP, srcPort, dstPort uint16) []byte {
	tcp := make([]byte, tcpHeaderLen)

	binary.BigEndian.PutUint16(tcp[0:2], srcPort)
	binary.BigEndian.PutUint16(tcp[2:4], dstPort)
	binary.BigEndian.PutUint32(tcp[4:8], rand.Uint32())
	binary.BigEndian.PutUint32(tcp[8:12], 0) // ack
	tcp[12] = 5 << 4                         // data offset = 5, reserved = 0
	tcp[13] = 0x02                           // SYN only
	binary.BigEndian.PutUint16(tcp[14:16], 5840)
	binary.BigEndian.PutUint16(tcp[16:18], 0) // checksum placeholder
	binary.BigEndian.PutUint16(tcp[18:20], 0) // urgent pointer

	checksum := tcpChecksum(version, src, dst, tcp)
	binary.BigEndian.PutUint16(tcp[16:18], checksum)

	return tcp
}

// tcpChecksum computes the Internet checksum over (pseudo-header ‖ TCP
// header), per §4.3.
func tcpChecksum(version IpVersion, src, dst net.IP, tcpHeader []byte) uint16 {
	pseudo := pseudoHeader(version, src, dst, ProtocolNumberTCP, len(tcpHeader))
	return Checksum(append(pseudo, tcpHeader...))
}

// Protocol numbers used inside pseudo-headers (RFC 790).
const (
	ProtocolNumberTCP = 6
	ProtocolNumberUDP = 17
)

// pseudoHeader builds the IPv4 (12-byte) or IPv6 (40-byte, RFC 2460 §8.1)
// pseudo-header used only for checksum computation, never transmitted.
func pseudoHeader(version IpVersion, src, dst net.IP, protocol byte, upperLayerLength int) []byte {
	if version == V6 {
		h := make([]byte, 40)
		copy(h[0:16], src.To16())
		copy(h[16:32], dst.To16())
		binary.BigEndian.PutUint32(h[32:36], uint32(upperLayerLength))
		// h[36:39] already zero
		h[39] = protocol
		return h
	}

	h := make([]byte, 12)
	copy(h[0:4], src.To4())
	copy(h[4:8], dst.To4())
	h[8] = 0
	h[9] = protocol
	binary.BigEndian.PutUint16(h[10:12], uint16(upperLayerLength))
	return h
}
