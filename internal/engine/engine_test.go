package engine

import (
	"testing"

	"github.com/mmendl/rawscan/internal/scanner"
)

func fakeScan(verdict scanner.ScanVerdict) scanFunc {
	return func(ifaceName string, sender, target scanner.NetworkAddress, port, timeoutMs int) (scanner.ScanVerdict, error) {
		return verdict, nil
	}
}

// TestRunOutputOrder exercises P8: tcp_ports=[22,80], udp_ports=[53],
// targets_v4=[A], targets_v6=[B] must emit exactly
// (A,22,tcp),(B,22,tcp),(A,80,tcp),(B,80,tcp),(A,53,udp),(B,53,udp).
func TestRunOutputOrder(t *testing.T) {
	a := scanner.NetworkAddress{HostLabel: "", IP: "10.0.0.1", Version: scanner.V4}
	b := scanner.NetworkAddress{HostLabel: "", IP: "2001:db8::1", Version: scanner.V6}

	interfaces := []scanner.NetworkAddress{
		{HostLabel: "eth0", IP: "10.0.0.5", Version: scanner.V4},
		{HostLabel: "eth0", IP: "fe80::5", Version: scanner.V6},
	}

	plan := ScanPlan{
		InterfaceName: "eth0",
		TimeoutMs:     100,
		TCPPorts:      []int{22, 80},
		UDPPorts:      []int{53},
		TargetsV4:     []scanner.NetworkAddress{a},
		TargetsV6:     []scanner.NetworkAddress{b},
	}

	var got []scanner.ScanOutcome
	err := run(plan, interfaces, fakeScan(scanner.Open), fakeScan(scanner.Open), func(o scanner.ScanOutcome) {
		got = append(got, o)
	})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := []struct {
		ip    string
		port  int
		proto string
	}{
		{"10.0.0.1", 22, "tcp"},
		{"2001:db8::1", 22, "tcp"},
		{"10.0.0.1", 80, "tcp"},
		{"2001:db8::1", 80, "tcp"},
		{"10.0.0.1", 53, "udp"},
		{"2001:db8::1", 53, "udp"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d outcomes, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].TargetIP != w.ip || got[i].Port != w.port || got[i].Protocol != w.proto {
			t.Errorf("outcome[%d] = %+v, want {%s %d %s}", i, got[i], w.ip, w.port, w.proto)
		}
	}
}

func TestRunNoInterfaceMatch(t *testing.T) {
	a := scanner.NetworkAddress{IP: "10.0.0.1", Version: scanner.V4}
	interfaces := []scanner.NetworkAddress{
		{HostLabel: "eth1", IP: "10.0.0.5", Version: scanner.V4},
	}
	plan := ScanPlan{
		InterfaceName: "eth0",
		TCPPorts:      []int{80},
		TargetsV4:     []scanner.NetworkAddress{a},
	}

	err := run(plan, interfaces, fakeScan(scanner.Open), fakeScan(scanner.Open), func(scanner.ScanOutcome) {})
	if !scanner.IsNoInterface(err) {
		t.Errorf("run() error = %v, want ErrNoInterface", err)
	}
}

// TestRunFamilyMismatchSkipsSilently: interface exists but only has a v4
// address; a v6 target for that interface should be skipped without error
// or outcome.
func TestRunFamilyMismatchSkipsSilently(t *testing.T) {
	b := scanner.NetworkAddress{IP: "2001:db8::1", Version: scanner.V6}
	interfaces := []scanner.NetworkAddress{
		{HostLabel: "eth0", IP: "10.0.0.5", Version: scanner.V4},
	}
	plan := ScanPlan{
		InterfaceName: "eth0",
		TCPPorts:      []int{80},
		TargetsV6:     []scanner.NetworkAddress{b},
	}

	var got []scanner.ScanOutcome
	err := run(plan, interfaces, fakeScan(scanner.Open), fakeScan(scanner.Open), func(o scanner.ScanOutcome) {
		got = append(got, o)
	})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d outcomes, want 0 (silent skip)", len(got))
	}
}
