package hostenum

import "testing"

// TestClassifyTarget exercises P2.
func TestClassifyTarget(t *testing.T) {
	tests := []struct {
		target string
		want   TargetType
	}{
		{"192.168.1.1", TargetIPv4},
		{"10.0.0.1", TargetIPv4},
		{"::1", TargetIPv6},
		{"2001:db8::1", TargetIPv6},
		{"example.com", TargetDomain},
		{"scanner-target.internal", TargetDomain},
		{"", TargetUnknown},
	}

	for _, tt := range tests {
		if got := ClassifyTarget(tt.target); got != tt.want {
			t.Errorf("ClassifyTarget(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}
