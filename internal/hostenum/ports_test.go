package hostenum

import (
	"reflect"
	"testing"
)

func TestParsePorts(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []int
		wantErr bool
	}{
		{name: "comma list", spec: "22,80,443", want: []int{22, 80, 443}},
		{name: "range", spec: "100-102", want: []int{100, 101, 102}},
		{name: "descending range fails", spec: "80-22", wantErr: true},
		{name: "non-numeric fails", spec: "80,abc", wantErr: true},
		{name: "single port", spec: "53", want: []int{53}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePorts(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePorts(%q) = %v, want error", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePorts(%q) error = %v", tt.spec, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePorts(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}
