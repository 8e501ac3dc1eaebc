package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mmendl/rawscan/internal/scanner"
)

// sampleScanResult builds a representative multi-port, multi-verdict result.
func sampleScanResult() *ScanResult {
	return &ScanResult{
		Target:    "example.com",
		Interface: "eth0",
		Timestamp: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC),
		TimeoutMs: 500,
		Outcomes: []scanner.ScanOutcome{
			{TargetIP: "93.184.216.34", Port: 22, Protocol: "tcp", Verdict: scanner.Open},
			{TargetIP: "93.184.216.34", Port: 81, Protocol: "tcp", Verdict: scanner.Closed},
			{TargetIP: "93.184.216.34", Port: 80, Protocol: "tcp", Verdict: scanner.Filtered},
			{TargetIP: "93.184.216.34", Port: 53, Protocol: "udp", Verdict: scanner.Open},
		},
		Hostnames: map[string]string{"93.184.216.34": "example.com"},
	}
}

func TestTextFormatter(t *testing.T) {
	formatter := NewTextFormatter(Config{Colors: false})

	result := sampleScanResult()
	data, err := formatter.Format(result)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(data)

	if !strings.Contains(output, "(93.184.216.34) 22 tcp open") {
		t.Errorf("output missing open tcp line: %q", output)
	}
	if !strings.Contains(output, "(93.184.216.34) 81 tcp closed") {
		t.Errorf("output missing closed tcp line: %q", output)
	}
	if !strings.Contains(output, "(93.184.216.34) 80 tcp filtered") {
		t.Errorf("output missing filtered tcp line: %q", output)
	}
	if !strings.Contains(output, "53 udp open") {
		t.Errorf("output missing udp line: %q", output)
	}
	if !strings.Contains(output, "example.com") {
		t.Error("output should contain the resolved hostname")
	}

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("got %d lines, want 4 (one per outcome)", len(lines))
	}
}

func TestTextFormatterNoHostname(t *testing.T) {
	formatter := NewTextFormatter(Config{Colors: false, NoHostname: true})
	data, err := formatter.Format(sampleScanResult())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(string(data), "example.com") {
		t.Error("NoHostname should suppress the resolved hostname")
	}
}

func TestTableFormatter(t *testing.T) {
	formatter := NewTableFormatter(Config{Colors: false})

	data, err := formatter.Format(sampleScanResult())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(data)

	if !strings.Contains(output, "Target: example.com") {
		t.Error("output should contain target")
	}
	if !strings.Contains(output, "93.184.216.34") {
		t.Error("output should contain target IP")
	}
	if !strings.Contains(output, "Open:") {
		t.Error("output should contain summary counts")
	}
}

func TestJSONFormatter(t *testing.T) {
	formatter := NewJSONFormatter(Config{})

	data, err := formatter.Format(sampleScanResult())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed JSONOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("JSON parsing error: %v", err)
	}

	if parsed.Target != "example.com" {
		t.Errorf("Target = %q, want %q", parsed.Target, "example.com")
	}
	if len(parsed.Outcomes) != 4 {
		t.Errorf("len(Outcomes) = %d, want 4", len(parsed.Outcomes))
	}
	if parsed.Outcomes[0].Verdict != "open" {
		t.Errorf("Outcomes[0].Verdict = %q, want %q", parsed.Outcomes[0].Verdict, "open")
	}
	if parsed.Summary.Open != 2 || parsed.Summary.Closed != 1 || parsed.Summary.Filtered != 1 {
		t.Errorf("Summary = %+v, want 2 open/1 closed/1 filtered", parsed.Summary)
	}
}

func TestJSONFormatterCompact(t *testing.T) {
	formatter := NewJSONFormatterCompact(Config{})

	data, err := formatter.Format(sampleScanResult())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > 1 {
		if len(lines) > 2 || lines[1] != "" {
			t.Error("Compact JSON should be on single line")
		}
	}
}

func TestCSVFormatter(t *testing.T) {
	formatter := NewCSVFormatter(Config{})

	data, err := formatter.Format(sampleScanResult())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("CSV parsing error: %v", err)
	}

	if records[0][0] != "target_ip" {
		t.Errorf("Header[0] = %q, want %q", records[0][0], "target_ip")
	}
	if len(records) != 5 { // header + 4 outcomes
		t.Errorf("len(records) = %d, want 5", len(records))
	}
	if records[1][0] != "93.184.216.34" {
		t.Errorf("Row 1 IP = %q, want %q", records[1][0], "93.184.216.34")
	}
}

func TestNewFormatter(t *testing.T) {
	config := DefaultConfig()

	tests := []struct {
		format   Format
		expected string
	}{
		{FormatText, "text/plain"},
		{FormatVerbose, "text/plain"},
		{FormatJSON, "application/json"},
		{FormatCSV, "text/csv"},
		{FormatHTML, "text/html"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			formatter := NewFormatter(tt.format, config)
			if formatter.ContentType() != tt.expected {
				t.Errorf("ContentType() = %q, want %q", formatter.ContentType(), tt.expected)
			}
		})
	}
}

func TestHTMLFormatter(t *testing.T) {
	formatter := NewHTMLFormatter(Config{Colors: false})

	data, err := formatter.Format(sampleScanResult())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(data)

	if !strings.Contains(output, "<!DOCTYPE html>") {
		t.Error("Output should contain DOCTYPE")
	}
	if !strings.Contains(output, "example.com") {
		t.Error("Output should contain target")
	}
	if !strings.Contains(output, "93.184.216.34") {
		t.Error("Output should contain target IP")
	}
	if !strings.Contains(output, "<style>") {
		t.Error("Output should contain embedded CSS")
	}
}

func TestVerdictClass(t *testing.T) {
	tests := []struct {
		verdict  scanner.ScanVerdict
		expected string
	}{
		{scanner.Open, "open"},
		{scanner.Closed, "closed"},
		{scanner.Filtered, "filtered"},
		{scanner.Unknown, "neutral"},
	}

	for _, tt := range tests {
		if got := verdictClass(tt.verdict); got != tt.expected {
			t.Errorf("verdictClass(%v) = %q, want %q", tt.verdict, got, tt.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long string", 10, "this is..."},
		{"", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := truncateString(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q",
					tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}
