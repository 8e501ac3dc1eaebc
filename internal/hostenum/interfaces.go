package hostenum

import (
	"fmt"
	"net"

	"github.com/mmendl/rawscan/internal/scanner"
)

// LocalAddresses builds one NetworkAddress per (interface, family) pair
// across every local interface, the idiomatic-Go equivalent of
// original_source's getNetworkInterfaces (getifaddrs-based). Port is -1
// (unassigned), HostLabel is the interface name.
func LocalAddresses() ([]scanner.NetworkAddress, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("enumerate interfaces: %w", err)
	}

	var addrs []scanner.NetworkAddress
	seen := make(map[string]bool)
	for _, iface := range ifaces {
		ifAddrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range ifAddrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			version := scanner.V4
			if ipNet.IP.To4() == nil {
				version = scanner.V6
			}
			key := iface.Name + "/" + version.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			addrs = append(addrs, scanner.NetworkAddress{
				HostLabel: iface.Name,
				IP:        ipNet.IP.String(),
				Version:   version,
				Port:      -1,
			})
		}
	}
	return addrs, nil
}

// ListInterfaceNames returns each distinct interface name once, in
// first-seen order — the Go equivalent of representInterfaces's
// dedup-by-name "Interface: <name>" printing (left to the caller here).
func ListInterfaceNames(addrs []scanner.NetworkAddress) []string {
	seen := make(map[string]bool, len(addrs))
	var names []string
	for _, a := range addrs {
		if seen[a.HostLabel] {
			continue
		}
		seen[a.HostLabel] = true
		names = append(names, a.HostLabel)
	}
	return names
}
