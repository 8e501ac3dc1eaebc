package output

import (
	"encoding/json"
)

// JSONFormatter formats a ScanResult as JSON.
type JSONFormatter struct {
	config Config
	pretty bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(config Config) *JSONFormatter {
	return &JSONFormatter{
		config: config,
		pretty: true, // Default to pretty-printed
	}
}

// NewJSONFormatterCompact creates a JSON formatter with compact output.
func NewJSONFormatterCompact(config Config) *JSONFormatter {
	return &JSONFormatter{
		config: config,
		pretty: false,
	}
}

// SetPretty enables or disables pretty-printing.
func (f *JSONFormatter) SetPretty(pretty bool) {
	f.pretty = pretty
}

// Format formats the scan result as JSON.
func (f *JSONFormatter) Format(result *ScanResult) ([]byte, error) {
	output := f.toJSONOutput(result)

	if f.pretty {
		return json.MarshalIndent(output, "", "  ")
	}
	return json.Marshal(output)
}

// JSONOutput is the JSON-serializable representation of a scan result.
type JSONOutput struct {
	Target    string        `json:"target"`
	Interface string        `json:"interface"`
	Timestamp string        `json:"timestamp"`
	TimeoutMs int           `json:"timeout_ms"`
	Outcomes  []JSONOutcome `json:"outcomes"`
	Summary   JSONSummary   `json:"summary"`
}

// JSONOutcome is one (target, port, protocol) verdict in JSON form.
type JSONOutcome struct {
	TargetIP string `json:"target_ip"`
	Hostname string `json:"hostname,omitempty"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	Verdict  string `json:"verdict"`
}

// JSONSummary represents verdict counts in JSON format.
type JSONSummary struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Closed   int `json:"closed"`
	Filtered int `json:"filtered"`
}

func (f *JSONFormatter) toJSONOutput(result *ScanResult) *JSONOutput {
	output := &JSONOutput{
		Target:    result.Target,
		Interface: result.Interface,
		Timestamp: result.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		TimeoutMs: result.TimeoutMs,
		Outcomes:  make([]JSONOutcome, len(result.Outcomes)),
	}

	for i, outcome := range result.Outcomes {
		jo := JSONOutcome{
			TargetIP: outcome.TargetIP,
			Port:     outcome.Port,
			Protocol: outcome.Protocol,
			Verdict:  outcome.Verdict.String(),
		}
		if !f.config.NoHostname {
			jo.Hostname = result.Hostnames[outcome.TargetIP]
		}
		output.Outcomes[i] = jo
	}

	s := result.Summarize()
	output.Summary = JSONSummary{
		Total:    s.Total,
		Open:     s.Open,
		Closed:   s.Closed,
		Filtered: s.Filtered,
	}

	return output
}

// ContentType returns the MIME type for JSON output.
func (f *JSONFormatter) ContentType() string {
	return "application/json"
}

// FileExtension returns the file extension for JSON output.
func (f *JSONFormatter) FileExtension() string {
	return "json"
}
