// Package output renders ScanOutcome sequences produced by internal/engine
// in the canonical line format and several richer formats (table, JSON,
// CSV, HTML), mirroring the teacher's hop-formatter architecture adapted
// to port-scan results rather than traceroute hops.
package output

import (
	"time"

	"github.com/mmendl/rawscan/internal/scanner"
)

// Format represents the output format type.
type Format int

const (
	// FormatText is the line-per-outcome "<ip> <port> <tcp|udp> <verdict>"
	// output (§6), with "<hostname> (<ip>)" in place of the IP when a
	// hostname is shown.
	FormatText Format = iota
	// FormatVerbose is the detailed table output.
	FormatVerbose
	// FormatJSON is JSON output.
	FormatJSON
	// FormatCSV is CSV output.
	FormatCSV
	// FormatHTML is HTML report output.
	FormatHTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatVerbose:
		return "verbose"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// ScanResult collects the outcomes of one scan run for a format that needs
// the whole run at once (JSON, CSV, HTML, verbose table). Streaming text
// output instead renders each ScanOutcome as it arrives from the engine
// via TextFormatter.FormatOutcome.
type ScanResult struct {
	Target    string // the string the user passed on the command line
	Interface string
	Timestamp time.Time
	TimeoutMs int
	Outcomes  []scanner.ScanOutcome
	// Hostnames maps a target IP to its reverse-DNS name, when the
	// collaborator resolved one (§6 is silent on this; it is ambient
	// presentation, never a classification input).
	Hostnames map[string]string
}

// Summary tallies verdicts across a ScanResult.
type Summary struct {
	Total    int
	Open     int
	Closed   int
	Filtered int
}

// Summarize counts verdicts in result.
func (r *ScanResult) Summarize() Summary {
	var s Summary
	for _, o := range r.Outcomes {
		s.Total++
		switch o.Verdict {
		case scanner.Open:
			s.Open++
		case scanner.Closed:
			s.Closed++
		case scanner.Filtered:
			s.Filtered++
		}
	}
	return s
}

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format converts a ScanResult to formatted output bytes.
	Format(result *ScanResult) ([]byte, error)

	// ContentType returns the MIME type for the output.
	ContentType() string

	// FileExtension returns the typical file extension for the output.
	FileExtension() string
}

// Config holds configuration for formatters.
type Config struct {
	// Colors enables ANSI color output.
	Colors bool

	// NoHostname disables hostname display even when one was resolved.
	NoHostname bool

	// Width is the terminal width. No formatter reads it; there is no
	// auto-detection.
	Width int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Colors: true,
		Width:  0, // Auto-detect
	}
}

// NewFormatter creates a formatter based on the specified format.
func NewFormatter(format Format, config Config) Formatter {
	switch format {
	case FormatText:
		return NewTextFormatter(config)
	case FormatVerbose:
		return NewTableFormatter(config)
	case FormatJSON:
		return NewJSONFormatter(config)
	case FormatCSV:
		return NewCSVFormatter(config)
	case FormatHTML:
		return NewHTMLFormatter(config)
	default:
		return NewTextFormatter(config)
	}
}
