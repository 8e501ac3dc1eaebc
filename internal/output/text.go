package output

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"

	"github.com/mmendl/rawscan/internal/scanner"
)

// TextFormatter formats a ScanResult one line per outcome, colorized by
// verdict when colors are enabled. A line has the canonical
// "<ip> <port> <tcp|udp> <verdict>" form (§6) only when no hostname is
// shown; when a hostname is known and NoHostname is off, the line reads
// "<hostname> (<ip>) <port> <tcp|udp> <verdict>".
type TextFormatter struct {
	config Config
	colors *ColorScheme
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(config Config) *TextFormatter {
	var colors *ColorScheme
	if config.Colors {
		colors = DefaultColorScheme()
	}

	return &TextFormatter{
		config: config,
		colors: colors,
	}
}

// Format renders every outcome in result, one canonical line each.
func (f *TextFormatter) Format(result *ScanResult) ([]byte, error) {
	var buf bytes.Buffer
	for _, outcome := range result.Outcomes {
		buf.WriteString(f.FormatOutcome(outcome, result.Hostnames))
	}
	return buf.Bytes(), nil
}

// FormatOutcome formats a single outcome and returns it as a line,
// newline-terminated. This is what cmd/rawscan's OnOutcome callback calls
// to stream results as the engine emits them, mirroring the teacher's
// streaming FormatHop architecture.
func (f *TextFormatter) FormatOutcome(outcome scanner.ScanOutcome, hostnames map[string]string) string {
	var buf bytes.Buffer

	ip := outcome.TargetIP
	if f.colors != nil {
		ip = f.colors.IP.Sprint(ip)
	}

	if hostname := hostnames[outcome.TargetIP]; hostname != "" && !f.config.NoHostname {
		h := hostname
		if f.colors != nil {
			h = f.colors.Hostname.Sprint(h)
		}
		fmt.Fprintf(&buf, "%s (%s) ", h, ip)
	} else {
		fmt.Fprintf(&buf, "%s ", ip)
	}

	fmt.Fprintf(&buf, "%d %s ", outcome.Port, outcome.Protocol)
	buf.WriteString(f.colorizeVerdict(outcome.Verdict))
	buf.WriteString("\n")

	return buf.String()
}

// colorizeVerdict renders a verdict string, colored by verdict when
// colors are enabled: open green, closed red, filtered yellow.
func (f *TextFormatter) colorizeVerdict(v scanner.ScanVerdict) string {
	str := v.String()
	if f.colors == nil {
		return str
	}

	switch v {
	case scanner.Open:
		return f.colors.Open.Sprint(str)
	case scanner.Closed:
		return f.colors.Closed.Sprint(str)
	case scanner.Filtered:
		return f.colors.Filtered.Sprint(str)
	default:
		return str
	}
}

// ContentType returns the MIME type for text output.
func (f *TextFormatter) ContentType() string {
	return "text/plain"
}

// FileExtension returns the file extension for text output.
func (f *TextFormatter) FileExtension() string {
	return "txt"
}

// ColorScheme defines colors for different output elements.
type ColorScheme struct {
	IP       *color.Color
	Hostname *color.Color
	Open     *color.Color
	Closed   *color.Color
	Filtered *color.Color
	Header   *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		IP:       color.New(color.FgWhite),
		Hostname: color.New(color.FgGreen),
		Open:     color.New(color.FgGreen, color.Bold),
		Closed:   color.New(color.FgRed),
		Filtered: color.New(color.FgYellow),
		Header:   color.New(color.FgWhite, color.Bold),
	}
}

// Helper functions

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
