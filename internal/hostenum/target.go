package hostenum

import (
	"context"
	"fmt"
	"net"
	"regexp"

	"github.com/mmendl/rawscan/internal/scanner"
)

// TargetType is determinTargetType's result, named for what it is rather
// than the original's enum.
type TargetType int

const (
	TargetUnknown TargetType = iota
	TargetIPv4
	TargetIPv6
	TargetDomain
)

var (
	ipv4Pattern   = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
	ipv6Pattern   = regexp.MustCompile(`^[0-9a-fA-F:]+$`)
	domainPattern = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
	hasColon      = regexp.MustCompile(`:`)
)

// ClassifyTarget implements P2: IPv4 literal, IPv6 literal (anything
// hex-and-colon shaped that isn't an IPv4 literal), domain name, or
// unknown for an empty string.
func ClassifyTarget(target string) TargetType {
	switch {
	case target == "":
		return TargetUnknown
	case ipv4Pattern.MatchString(target):
		return TargetIPv4
	case ipv6Pattern.MatchString(target) && hasColon.MatchString(target):
		return TargetIPv6
	case domainPattern.MatchString(target):
		return TargetDomain
	default:
		return TargetUnknown
	}
}

// ResolveTarget turns a target string into the NetworkAddress sets the
// ScanPlan needs (targets_v4/targets_v6), per S6: a domain resolving to
// both A and AAAA records produces one entry per family, host_label set
// to the original name for resolved domains and empty for literals.
func ResolveTarget(ctx context.Context, target string) (v4, v6 []scanner.NetworkAddress, err error) {
	switch ClassifyTarget(target) {
	case TargetIPv4:
		return []scanner.NetworkAddress{{IP: target, Version: scanner.V4, Port: -1}}, nil, nil
	case TargetIPv6:
		return nil, []scanner.NetworkAddress{{IP: target, Version: scanner.V6, Port: -1}}, nil
	case TargetDomain:
		ips, err := net.DefaultResolver.LookupIP(ctx, "ip", target)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", scanner.ErrInvalidTarget, target, err)
		}
		for _, ip := range ips {
			addr := scanner.NetworkAddress{HostLabel: target, IP: ip.String(), Port: -1}
			if v4ip := ip.To4(); v4ip != nil {
				addr.Version = scanner.V4
				v4 = append(v4, addr)
			} else {
				addr.Version = scanner.V6
				v6 = append(v6, addr)
			}
		}
		if len(v4) == 0 && len(v6) == 0 {
			return nil, nil, fmt.Errorf("%w: %s: no addresses found", scanner.ErrInvalidTarget, target)
		}
		return v4, v6, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", scanner.ErrInvalidTarget, target)
	}
}
