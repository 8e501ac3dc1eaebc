// Package tui provides an interactive terminal UI for rawscan, streaming
// ScanOutcome values as the engine produces them.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmendl/rawscan/internal/engine"
	"github.com/mmendl/rawscan/internal/scanner"
)

// State represents the current state of the TUI.
type State int

const (
	StateRunning State = iota
	StateComplete
	StateError
)

// Runner executes plan against interfaces, calling onOutcome for each
// ScanOutcome and returning the engine's terminal error, if any. cmd/rawscan
// supplies engine.Run (or a fake, in tests) so the TUI never imports
// raw-socket code directly.
type Runner func(onOutcome engine.OnOutcome) error

// Model is the Bubble Tea model for the scan TUI.
type Model struct {
	// Configuration
	target    string
	ifaceName string
	run       Runner
	hostnames map[string]string
	width     int
	height    int

	// State
	state     State
	outcomes  []scanner.ScanOutcome
	err       error
	elapsed   time.Duration
	startTime time.Time

	// UI components
	spinner spinner.Model

	// Styles
	styles Styles

	// Channel for outcome updates
	outcomeChan chan scanner.ScanOutcome
}

// OutcomeMsg is sent when a new outcome is produced.
type OutcomeMsg struct {
	Outcome scanner.ScanOutcome
}

// CompleteMsg is sent when the scan is complete.
type CompleteMsg struct{}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Err error
}

// TickMsg is sent to update elapsed time.
type TickMsg time.Time

// New creates a new TUI model. run drives the scan plan, invoking its
// onOutcome argument for every ScanOutcome produced.
func New(target, ifaceName string, hostnames map[string]string, run Runner) (*Model, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model{
		target:      target,
		ifaceName:   ifaceName,
		run:         run,
		hostnames:   hostnames,
		state:       StateRunning,
		outcomes:    make([]scanner.ScanOutcome, 0),
		spinner:     s,
		styles:      DefaultStyles(),
		width:       80,
		height:      24,
		startTime:   time.Now(),
		outcomeChan: make(chan scanner.ScanOutcome, 256),
	}

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runScan(),
		m.tickCmd(),
		m.waitForOutcome(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		m.elapsed = time.Since(m.startTime)
		if m.state == StateRunning {
			return m, m.tickCmd()
		}

	case OutcomeMsg:
		m.outcomes = append(m.outcomes, msg.Outcome)
		return m, m.waitForOutcome()

	case CompleteMsg:
		m.state = StateComplete

	case ErrorMsg:
		m.state = StateError
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderOutcomes())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the header section.
func (m Model) renderHeader() string {
	title := m.styles.Title.Render("rawscan")

	var status string
	switch m.state {
	case StateRunning:
		status = m.spinner.View() + " Scanning..."
	case StateComplete:
		status = m.styles.Success.Render("✓ Complete")
	case StateError:
		status = m.styles.Error.Render("✗ Error")
	}

	info := fmt.Sprintf("Target: %s | Interface: %s", m.target, m.ifaceName)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.styles.Subtle.Render(info),
		status,
	)
}

// renderOutcomes renders the outcome table.
func (m Model) renderOutcomes() string {
	if len(m.outcomes) == 0 {
		return m.styles.Subtle.Render("Waiting for responses...")
	}

	var rows []string

	header := fmt.Sprintf("%-16s %-25s %-6s %-5s %-10s",
		"IP", "Hostname", "Port", "Prot", "Verdict")
	rows = append(rows, m.styles.Header.Render(header))
	rows = append(rows, m.styles.Subtle.Render(strings.Repeat("─", 70)))

	for _, outcome := range m.outcomes {
		rows = append(rows, m.renderOutcomeRow(outcome))
	}

	return strings.Join(rows, "\n")
}

// renderOutcomeRow renders a single outcome row.
func (m Model) renderOutcomeRow(outcome scanner.ScanOutcome) string {
	hostname := truncate(m.hostnames[outcome.TargetIP], 25)

	return fmt.Sprintf("%-16s %-25s %-6d %-5s %s",
		m.styles.IP.Render(truncate(outcome.TargetIP, 16)),
		m.styles.Hostname.Render(hostname),
		outcome.Port,
		outcome.Protocol,
		m.colorizeVerdict(outcome.Verdict),
	)
}

// colorizeVerdict applies color based on verdict.
func (m Model) colorizeVerdict(v scanner.ScanVerdict) string {
	s := v.String()
	switch v {
	case scanner.Open:
		return m.styles.Success.Render(s)
	case scanner.Closed:
		return m.styles.Subtle.Render(s)
	case scanner.Filtered:
		return m.styles.Warning.Render(s)
	default:
		return m.styles.Subtle.Render(s)
	}
}

// renderFooter renders the footer section.
func (m Model) renderFooter() string {
	var parts []string

	if m.state == StateComplete {
		parts = append(parts, fmt.Sprintf("Results: %d", len(m.outcomes)))
	}
	parts = append(parts, "Press 'q' to quit")

	return m.styles.Subtle.Render(strings.Join(parts, " | "))
}

// runScan runs the scan engine in the background.
func (m Model) runScan() tea.Cmd {
	return func() tea.Msg {
		err := m.run(func(o scanner.ScanOutcome) {
			m.outcomeChan <- o
		})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		close(m.outcomeChan)
		return CompleteMsg{}
	}
}

// waitForOutcome waits for an outcome from the channel.
func (m Model) waitForOutcome() tea.Cmd {
	return func() tea.Msg {
		outcome, ok := <-m.outcomeChan
		if !ok {
			return nil
		}
		return OutcomeMsg{Outcome: outcome}
	}
}

// tickCmd returns a command that sends tick messages.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Close releases resources.
func (m *Model) Close() error {
	return nil
}

// truncate truncates a string to maxLen.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
