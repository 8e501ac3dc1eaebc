// Package engine iterates a ScanPlan across address family, protocol, and
// port, resolving each pair's sender interface and driving a scanner.Scan*
// call to a verdict, emitting a ScanOutcome per pair (§4.6).
package engine

import "github.com/mmendl/rawscan/internal/scanner"

// ScanPlan is the validated input to the engine, produced by the external
// argument-parsing collaborator (§3).
type ScanPlan struct {
	InterfaceName string // empty means "list interfaces and stop" — handled by the caller, never reaches Run
	TimeoutMs     int
	TCPPorts      []int
	UDPPorts      []int
	TargetsV4     []scanner.NetworkAddress
	TargetsV6     []scanner.NetworkAddress
}

// DefaultTimeoutMs is the per-probe wait budget when unset (§3).
const DefaultTimeoutMs = 5000

// WithDefaults returns a copy of p with TimeoutMs filled in if zero.
func (p ScanPlan) WithDefaults() ScanPlan {
	if p.TimeoutMs == 0 {
		p.TimeoutMs = DefaultTimeoutMs
	}
	return p
}
