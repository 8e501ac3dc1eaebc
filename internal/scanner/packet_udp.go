package scanner

import (
	"encoding/binary"
	"net"
)

// udpHeaderLen is the fixed RFC 768 UDP header size; this scanner never
// attaches a payload.
const udpHeaderLen = 8

// BuildUDP builds a zero-payload UDP datagram: source port srcPort,
// destination port dstPort, length 8, with the pseudo-header checksum
// written in (§4.3).
func BuildUDP(version IpVersion, src, dst net.IP, srcPort, dstPort uint16) []byte {
	udp := make([]byte, udpHeaderLen)

	binary.BigEndian.PutUint16(udp[0:2], srcPort)
	binary.BigEndian.PutUint16(udp[2:4], dstPort)
	binary.BigEndian.PutUint16(udp[4:6], udpHeaderLen)
	binary.BigEndian.PutUint16(udp[6:8], 0) // checksum placeholder

	checksum := udpChecksum(version, src, dst, udp)
	binary.BigEndian.PutUint16(udp[6:8], checksum)

	return udp
}

func udpChecksum(version IpVersion, src, dst net.IP, udpHeader []byte) uint16 {
	pseudo := pseudoHeader(version, src, dst, ProtocolNumberUDP, len(udpHeader))
	return Checksum(append(pseudo, udpHeader...))
}
