package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mmendl/rawscan/internal/scanner"
)

// TableFormatter formats a ScanResult as a detailed table (the --verbose
// output), grounded on the teacher's tablewriter-based verbose formatter.
type TableFormatter struct {
	config Config
	colors *ColorScheme
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(config Config) *TableFormatter {
	var colors *ColorScheme
	if config.Colors {
		colors = DefaultColorScheme()
	}

	return &TableFormatter{
		config: config,
		colors: colors,
	}
}

// Format formats the scan result as a detailed table.
func (f *TableFormatter) Format(result *ScanResult) ([]byte, error) {
	var buf bytes.Buffer

	f.writeHeader(&buf, result)

	table := tablewriter.NewWriter(&buf)
	f.configureTable(table)
	table.SetHeader(f.getHeaders())

	for _, outcome := range result.Outcomes {
		table.Append(f.formatRow(outcome, result.Hostnames))
	}

	table.Render()

	f.writeSummary(&buf, result)

	return buf.Bytes(), nil
}

func (f *TableFormatter) writeHeader(buf *bytes.Buffer, result *ScanResult) {
	header := fmt.Sprintf("Target: %s | Interface: %s\n", result.Target, result.Interface)
	header += fmt.Sprintf("Timeout: %dms | Time: %s\n\n",
		result.TimeoutMs, result.Timestamp.Format("2006-01-02 15:04:05"))

	if f.colors != nil {
		header = f.colors.Header.Sprint(header)
	}
	buf.WriteString(header)
}

func (f *TableFormatter) configureTable(table *tablewriter.Table) {
	table.SetBorder(true)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("│")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.SetTablePadding(" ")
}

func (f *TableFormatter) getHeaders() []string {
	headers := []string{"IP Address"}
	if !f.config.NoHostname {
		headers = append(headers, "Hostname")
	}
	return append(headers, "Port", "Proto", "Verdict")
}

func (f *TableFormatter) formatRow(outcome scanner.ScanOutcome, hostnames map[string]string) []string {
	row := []string{outcome.TargetIP}

	if !f.config.NoHostname {
		hostname := hostnames[outcome.TargetIP]
		if hostname == "" {
			hostname = "-"
		}
		row = append(row, truncateString(hostname, 30))
	}

	return append(row,
		fmt.Sprintf("%d", outcome.Port),
		strings.ToUpper(outcome.Protocol),
		f.colorizeVerdict(outcome.Verdict),
	)
}

func (f *TableFormatter) colorizeVerdict(v scanner.ScanVerdict) string {
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

func (f *TableFormatter) writeSummary(buf *bytes.Buffer, result *ScanResult) {
	s := result.Summarize()

	buf.WriteString("\nSummary:\n")
	fmt.Fprintf(buf, "  Total:    %d\n", s.Total)
	fmt.Fprintf(buf, "  Open:     %d\n", s.Open)
	fmt.Fprintf(buf, "  Closed:   %d\n", s.Closed)
	fmt.Fprintf(buf, "  Filtered: %d\n", s.Filtered)
}

// ContentType returns the MIME type for table output.
func (f *TableFormatter) ContentType() string {
	return "text/plain"
}

// FileExtension returns the file extension for table output.
func (f *TableFormatter) FileExtension() string {
	return "txt"
}
