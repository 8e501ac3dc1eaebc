package engine

import (
	"fmt"

	"github.com/mmendl/rawscan/internal/scanner"
)

// OnOutcome is called once per emitted ScanOutcome, in engine order,
// mirroring the teacher's streaming-hop callback so a collaborator (the
// CLI, the TUI) can render results incrementally instead of waiting for
// the whole plan to finish.
type OnOutcome func(scanner.ScanOutcome)

// scanFunc matches scanner.ScanTCP/scanner.ScanUDP's signature; Run takes
// these as parameters (rather than calling the scanner package directly)
// so tests can inject a fake driver instead of opening real raw sockets,
// mirroring how the teacher's Tracer is built around an injected Prober.
type scanFunc func(ifaceName string, sender, target scanner.NetworkAddress, port, timeoutMs int) (scanner.ScanVerdict, error)

// Run iterates plan in the §4.6 order — every TCP port across IPv4 then
// IPv6 targets, then every UDP port across IPv4 then IPv6 targets — and
// invokes onOutcome for each pair resolved to a verdict. It returns the
// first caller-facing error (NO_INTERFACE, an invalid target, a send
// failure); outcomes already delivered to onOutcome remain valid.
func Run(plan ScanPlan, interfaces []scanner.NetworkAddress, onOutcome OnOutcome) error {
	return run(plan, interfaces, scanner.ScanTCP, scanner.ScanUDP, onOutcome)
}

func run(plan ScanPlan, interfaces []scanner.NetworkAddress, scanTCP, scanUDP scanFunc, onOutcome OnOutcome) error {
	plan = plan.WithDefaults()

	for _, port := range plan.TCPPorts {
		if err := runPairs(plan, interfaces, "tcp", port, plan.TargetsV4, scanTCP, onOutcome); err != nil {
			return err
		}
		if err := runPairs(plan, interfaces, "tcp", port, plan.TargetsV6, scanTCP, onOutcome); err != nil {
			return err
		}
	}
	for _, port := range plan.UDPPorts {
		if err := runPairs(plan, interfaces, "udp", port, plan.TargetsV4, scanUDP, onOutcome); err != nil {
			return err
		}
		if err := runPairs(plan, interfaces, "udp", port, plan.TargetsV6, scanUDP, onOutcome); err != nil {
			return err
		}
	}
	return nil
}

func runPairs(plan ScanPlan, interfaces []scanner.NetworkAddress, proto string, port int, targets []scanner.NetworkAddress, scan scanFunc, onOutcome OnOutcome) error {
	for _, target := range targets {
		sender, ok, err := resolveSender(plan.InterfaceName, interfaces, target.Version)
		if err != nil {
			return err
		}
		if !ok {
			// Interface exists but lacks the required family: skip silently.
			continue
		}

		verdict, err := scan(plan.InterfaceName, sender, target, port, plan.TimeoutMs)
		if err != nil {
			return fmt.Errorf("scan %s %s:%d: %w", proto, target.IP, port, err)
		}

		onOutcome(scanner.ScanOutcome{
			TargetIP: target.IP,
			Port:     port,
			Protocol: proto,
			Verdict:  verdict,
		})
	}
	return nil
}

// resolveSender matches plan's interface name against the externally
// provided interface list (§4.6): an exact name match whose Version
// equals want returns (addr, true, nil). A name match that exists only
// for the other family returns (zero, false, nil) — skip silently. No
// name match at all returns ErrNoInterface.
func resolveSender(name string, interfaces []scanner.NetworkAddress, want scanner.IpVersion) (scanner.NetworkAddress, bool, error) {
	found := false
	for _, iface := range interfaces {
		if iface.HostLabel != name {
			continue
		}
		found = true
		if iface.Version == want {
			return iface, true, nil
		}
	}
	if !found {
		return scanner.NetworkAddress{}, false, scanner.ErrNoInterface
	}
	return scanner.NetworkAddress{}, false, nil
}
