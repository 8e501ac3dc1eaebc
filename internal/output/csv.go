package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/mmendl/rawscan/internal/scanner"
)

// CSVFormatter formats a ScanResult as CSV.
type CSVFormatter struct {
	config  Config
	columns []string
}

// Default CSV columns.
var defaultCSVColumns = []string{"target_ip", "hostname", "port", "protocol", "verdict"}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter(config Config) *CSVFormatter {
	return &CSVFormatter{
		config:  config,
		columns: defaultCSVColumns,
	}
}

// SetColumns allows customizing which columns to include.
func (f *CSVFormatter) SetColumns(columns []string) {
	f.columns = columns
}

// Format formats the scan result as CSV.
func (f *CSVFormatter) Format(result *ScanResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(f.columns); err != nil {
		return nil, err
	}

	for _, outcome := range result.Outcomes {
		row := f.formatRow(outcome, result.Hostnames)
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (f *CSVFormatter) formatRow(outcome scanner.ScanOutcome, hostnames map[string]string) []string {
	row := make([]string, len(f.columns))
	for i, col := range f.columns {
		row[i] = f.getValue(outcome, hostnames, col)
	}
	return row
}

func (f *CSVFormatter) getValue(outcome scanner.ScanOutcome, hostnames map[string]string, column string) string {
	switch column {
	case "target_ip":
		return outcome.TargetIP
	case "hostname":
		if f.config.NoHostname {
			return ""
		}
		return hostnames[outcome.TargetIP]
	case "port":
		return strconv.Itoa(outcome.Port)
	case "protocol":
		return outcome.Protocol
	case "verdict":
		return outcome.Verdict.String()
	default:
		return ""
	}
}

// ContentType returns the MIME type for CSV output.
func (f *CSVFormatter) ContentType() string {
	return "text/csv"
}

// FileExtension returns the file extension for CSV output.
func (f *CSVFormatter) FileExtension() string {
	return "csv"
}
