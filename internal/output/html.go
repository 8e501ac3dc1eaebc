package output

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/mmendl/rawscan/internal/scanner"
)

// HTMLFormatter formats a ScanResult as an HTML report.
type HTMLFormatter struct {
	config   Config
	template *template.Template
}

// NewHTMLFormatter creates a new HTML formatter.
func NewHTMLFormatter(config Config) *HTMLFormatter {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05 MST")
		},
	}).Parse(htmlTemplate))

	return &HTMLFormatter{
		config:   config,
		template: tmpl,
	}
}

// Format formats the scan result as an HTML report.
func (f *HTMLFormatter) Format(result *ScanResult) ([]byte, error) {
	data := f.prepareData(result)

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// htmlData holds the data for the HTML template.
type htmlData struct {
	Title       string
	Target      string
	Interface   string
	Timestamp   time.Time
	TimeoutMs   int
	Outcomes    []htmlOutcome
	Summary     htmlSummary
	GeneratedAt time.Time
}

// htmlOutcome represents one scanned (target, port, protocol) for rendering.
type htmlOutcome struct {
	TargetIP     string
	Hostname     string
	Port         int
	Protocol     string
	Verdict      string
	VerdictClass string
}

// htmlSummary holds summary data for HTML.
type htmlSummary struct {
	Total    int
	Open     int
	Closed   int
	Filtered int
}

func (f *HTMLFormatter) prepareData(result *ScanResult) *htmlData {
	data := &htmlData{
		Title:       fmt.Sprintf("Port scan of %s", result.Target),
		Target:      result.Target,
		Interface:   result.Interface,
		Timestamp:   result.Timestamp,
		TimeoutMs:   result.TimeoutMs,
		Outcomes:    make([]htmlOutcome, len(result.Outcomes)),
		GeneratedAt: time.Now(),
	}

	for i, outcome := range result.Outcomes {
		o := htmlOutcome{
			TargetIP:     outcome.TargetIP,
			Port:         outcome.Port,
			Protocol:     outcome.Protocol,
			Verdict:      outcome.Verdict.String(),
			VerdictClass: verdictClass(outcome.Verdict),
		}
		if !f.config.NoHostname {
			o.Hostname = result.Hostnames[outcome.TargetIP]
		}
		data.Outcomes[i] = o
	}

	s := result.Summarize()
	data.Summary = htmlSummary{
		Total:    s.Total,
		Open:     s.Open,
		Closed:   s.Closed,
		Filtered: s.Filtered,
	}

	return data
}

// verdictClass returns the CSS class for a verdict.
func verdictClass(v scanner.ScanVerdict) string {
	switch v {
	case scanner.Open:
		return "open"
	case scanner.Closed:
		return "closed"
	case scanner.Filtered:
		return "filtered"
	default:
		return "neutral"
	}
}

// ContentType returns the MIME type for HTML output.
func (f *HTMLFormatter) ContentType() string {
	return "text/html"
}

// FileExtension returns the file extension for HTML output.
func (f *HTMLFormatter) FileExtension() string {
	return "html"
}

// HTML template
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - rawscan Report</title>
    <style>
        :root {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-secondary: #a9b1d6;
            --text-muted: #565f89;
            --accent: #7aa2f7;
            --success: #9ece6a;
            --warning: #e0af68;
            --error: #f7768e;
            --border: #3b4261;
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            line-height: 1.6;
            padding: 2rem;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
        }

        header {
            text-align: center;
            margin-bottom: 2rem;
            padding-bottom: 1rem;
            border-bottom: 1px solid var(--border);
        }

        h1 {
            color: var(--accent);
            font-size: 2rem;
            margin-bottom: 0.5rem;
        }

        .subtitle {
            color: var(--text-muted);
            font-size: 0.9rem;
        }

        .info-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 1rem;
            margin-bottom: 2rem;
        }

        .info-card {
            background: var(--bg-secondary);
            padding: 1rem;
            border-radius: 8px;
            border: 1px solid var(--border);
        }

        .info-card label {
            color: var(--text-muted);
            font-size: 0.8rem;
            text-transform: uppercase;
            letter-spacing: 0.05em;
        }

        .info-card value {
            display: block;
            color: var(--text-primary);
            font-size: 1.1rem;
            font-weight: 500;
            margin-top: 0.25rem;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            background: var(--bg-secondary);
            border-radius: 8px;
            overflow: hidden;
            margin-bottom: 2rem;
        }

        th, td {
            padding: 0.75rem 1rem;
            text-align: left;
            border-bottom: 1px solid var(--border);
        }

        th {
            background: var(--bg-tertiary);
            color: var(--text-secondary);
            font-weight: 600;
            font-size: 0.85rem;
            text-transform: uppercase;
            letter-spacing: 0.05em;
        }

        tr:last-child td {
            border-bottom: none;
        }

        tr:hover {
            background: var(--bg-tertiary);
        }

        .ip {
            font-family: 'Monaco', 'Menlo', monospace;
            color: var(--text-primary);
        }

        .hostname {
            color: var(--text-secondary);
        }

        .verdict {
            font-weight: 600;
        }

        .verdict.open { color: var(--success); }
        .verdict.closed { color: var(--error); }
        .verdict.filtered { color: var(--warning); }
        .verdict.neutral { color: var(--text-muted); }

        .summary {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
            gap: 1rem;
            background: var(--bg-secondary);
            padding: 1.5rem;
            border-radius: 8px;
            border: 1px solid var(--border);
        }

        .summary-item {
            text-align: center;
        }

        .summary-item .value {
            font-size: 1.5rem;
            font-weight: 600;
            color: var(--accent);
        }

        .summary-item .label {
            color: var(--text-muted);
            font-size: 0.8rem;
            text-transform: uppercase;
        }

        footer {
            text-align: center;
            margin-top: 2rem;
            padding-top: 1rem;
            border-top: 1px solid var(--border);
            color: var(--text-muted);
            font-size: 0.8rem;
        }

        @media (max-width: 768px) {
            body { padding: 1rem; }
            h1 { font-size: 1.5rem; }
            th, td { padding: 0.5rem; font-size: 0.85rem; }
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Title}}</h1>
            <p class="subtitle">Generated by rawscan</p>
        </header>

        <div class="info-grid">
            <div class="info-card">
                <label>Target</label>
                <value>{{.Target}}</value>
            </div>
            <div class="info-card">
                <label>Interface</label>
                <value>{{.Interface}}</value>
            </div>
            <div class="info-card">
                <label>Timeout</label>
                <value>{{.TimeoutMs}}ms</value>
            </div>
            <div class="info-card">
                <label>Timestamp</label>
                <value>{{formatTime .Timestamp}}</value>
            </div>
        </div>

        <table>
            <thead>
                <tr>
                    <th>IP Address</th>
                    <th>Hostname</th>
                    <th>Port</th>
                    <th>Protocol</th>
                    <th>Verdict</th>
                </tr>
            </thead>
            <tbody>
                {{range .Outcomes}}
                <tr>
                    <td class="ip">{{.TargetIP}}</td>
                    <td class="hostname">{{if .Hostname}}{{.Hostname}}{{else}}-{{end}}</td>
                    <td>{{.Port}}</td>
                    <td>{{.Protocol}}</td>
                    <td class="verdict {{.VerdictClass}}">{{.Verdict}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>

        <div class="summary">
            <div class="summary-item">
                <div class="value">{{.Summary.Total}}</div>
                <div class="label">Total</div>
            </div>
            <div class="summary-item">
                <div class="value">{{.Summary.Open}}</div>
                <div class="label">Open</div>
            </div>
            <div class="summary-item">
                <div class="value">{{.Summary.Closed}}</div>
                <div class="label">Closed</div>
            </div>
            <div class="summary-item">
                <div class="value">{{.Summary.Filtered}}</div>
                <div class="label">Filtered</div>
            </div>
        </div>

        <footer>
            <p>Generated by <strong>rawscan</strong> on {{formatTime .GeneratedAt}}</p>
            <p>https://github.com/mmendl/rawscan</p>
        </footer>
    </div>
</body>
</html>
`
