package scanner

import (
	"fmt"
	"math/rand"
	"net"

	"github.com/mmendl/rawscan/internal/rawsock"
)

// ephemeralPortLow and ephemeralPortHigh bound the source port range (§4.5,
// §8 P4/P5): [49152, 65535] inclusive.
const (
	ephemeralPortLow  = 49152
	ephemeralPortHigh = 65535
)

// newEphemeralPort picks a fresh source port uniformly in
// [49152, 65535]; ephemeral ports need not be unique across probes.
func newEphemeralPort() int {
	return ephemeralPortLow + rand.Intn(ephemeralPortHigh-ephemeralPortLow+1)
}

func parseIP(addr NetworkAddress) (net.IP, error) {
	ip := net.ParseIP(addr.IP)
	if ip == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, addr.IP)
	}
	return ip, nil
}

func family(v IpVersion) int {
	if v == V6 {
		return rawsock.AF_INET6
	}
	return rawsock.AF_INET
}
