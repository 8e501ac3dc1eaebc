// Package hostenum implements the external collaborators spec.md declares
// out of scope for the core: port-list parsing, target classification and
// DNS resolution, and local interface enumeration. Grounded on
// original_source/src/arguments.cpp (parsePorts, determinTargetType,
// getTargetIPfromDomain) and original_source/src/utils.cpp
// (getNetworkInterfaces, representInterfaces, validateInterface).
package hostenum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmendl/rawscan/internal/scanner"
)

const maxPortNumber = 65535

// ParsePorts implements P1: "22,80,443" -> [22,80,443]; "100-102" ->
// [100,101,102]; "80-22" fails (hi < lo); "80,abc" fails (non-numeric).
func ParsePorts(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("%w: empty port spec", scanner.ErrInvalidPortSpec)
	}

	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", scanner.ErrInvalidPortSpec, spec)
		}
		lo, err := parsePort(parts[0])
		if err != nil {
			return nil, err
		}
		hi, err := parsePort(parts[1])
		if err != nil {
			return nil, err
		}
		if hi < lo {
			return nil, fmt.Errorf("%w: range %d-%d has hi < lo", scanner.ErrInvalidPortSpec, lo, hi)
		}
		ports := make([]int, 0, hi-lo+1)
		for p := lo; p <= hi; p++ {
			ports = append(ports, p)
		}
		return ports, nil
	}

	var ports []int
	for _, tok := range strings.FieldsFunc(spec, func(r rune) bool { return r == ',' || r == ' ' }) {
		p, err := parsePort(tok)
		if err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}
	if len(ports) == 0 {
		return nil, fmt.Errorf("%w: %q", scanner.ErrInvalidPortSpec, spec)
	}
	return ports, nil
}

func parsePort(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not numeric", scanner.ErrInvalidPortSpec, tok)
		}
	}
	if tok == "" {
		return 0, fmt.Errorf("%w: empty port token", scanner.ErrInvalidPortSpec)
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 1 || n > maxPortNumber {
		return 0, fmt.Errorf("%w: %q out of range 1-%d", scanner.ErrInvalidPortSpec, tok, maxPortNumber)
	}
	return n, nil
}
