package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmendl/rawscan/internal/config"
	"github.com/mmendl/rawscan/internal/engine"
	"github.com/mmendl/rawscan/internal/enrich"
	"github.com/mmendl/rawscan/internal/hostenum"
	"github.com/mmendl/rawscan/internal/output"
	"github.com/mmendl/rawscan/internal/scanner"
	"github.com/mmendl/rawscan/internal/tui"
)

var (
	// Flags
	tcpPortSpec     string
	udpPortSpec     string
	timeoutMs       int
	forceIPv4       bool
	forceIPv6       bool
	ifaceName       string
	listInterfaces  bool
	verbose         bool
	jsonOutput      bool
	csvOutput       bool
	htmlOutput      string
	tuiMode         bool
	noColor         bool
	noRDNS          bool
	noEnrich        bool

	// Config file
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rawscan [flags] <target>",
	Short: "Raw TCP/UDP port scanner",
	Long: `rawscan - a raw-socket TCP SYN / UDP port scanner

rawscan sends hand-built TCP SYN and UDP probes over raw IPv4/IPv6
sockets and classifies each (target, port) pair as open, closed, or
filtered from the response (or absence of one).

Features:
  • TCP SYN scanning with conditional retransmit-once semantics
  • UDP scanning with ICMP-unreachable-based classification
  • Simultaneous IPv4 and IPv6 targets
  • Reverse-DNS hostname annotation
  • Interactive TUI mode
  • Multiple output formats: text, verbose table, JSON, CSV, HTML
  • Configuration file support (~/.config/rawscan/config.yaml)

Examples:
  rawscan -i eth0 scanme.nmap.org          Scan default TCP ports 1-1024
  rawscan -i eth0 -p 22,80,443 host        Scan specific TCP ports
  rawscan -i eth0 -U 53,123 host           Scan UDP ports
  rawscan -i eth0 -v host                  Verbose table output
  rawscan -i eth0 --json host              JSON output
  rawscan -i eth0 -t host                  Interactive TUI mode
  rawscan --list-interfaces                List local interfaces and exit
  rawscan config --init                    Create default config file`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              runScan,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/rawscan/config.yaml)")

	rootCmd.Flags().StringVarP(&tcpPortSpec, "tcp-ports", "p", "", "TCP ports to scan, e.g. \"22,80,443\" or \"1-1024\"")
	rootCmd.Flags().StringVarP(&udpPortSpec, "udp-ports", "U", "", "UDP ports to scan")
	rootCmd.Flags().IntVarP(&timeoutMs, "timeout", "w", 0, "Per-probe receive deadline in milliseconds")

	rootCmd.Flags().BoolVarP(&forceIPv4, "ipv4", "4", false, "Scan IPv4 targets only")
	rootCmd.Flags().BoolVarP(&forceIPv6, "ipv6", "6", false, "Scan IPv6 targets only")
	rootCmd.Flags().StringVarP(&ifaceName, "interface", "i", "", "Sending interface name")
	rootCmd.Flags().BoolVar(&listInterfaces, "list-interfaces", false, "List local interfaces and exit")

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed table output")
	rootCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.Flags().BoolVar(&csvOutput, "csv", false, "Output in CSV format")
	rootCmd.Flags().StringVar(&htmlOutput, "html", "", "Generate HTML report to file")
	rootCmd.Flags().BoolVarP(&tuiMode, "tui", "t", false, "Interactive TUI mode")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.Flags().BoolVar(&noRDNS, "no-rdns", false, "Disable reverse DNS hostname lookups")
	rootCmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "Disable hostname annotation entirely")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads configuration from file and applies defaults. If no
// config file exists, config.Load returns the built-in defaults and no file
// is written. If reading or parsing a found config file fails, the built-in
// defaults are used and saved to the user config path.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
			if saveErr := cfg.Save(); saveErr == nil {
				fmt.Fprintf(os.Stderr, "Created default config: %s\n", config.GetConfigPath())
				fmt.Fprintf(os.Stderr, "Edit this file to customize defaults.\n\n")
			}
		}
	}

	applyConfigDefaults(cmd)
	return nil
}

func applyConfigDefaults(cmd *cobra.Command) {
	if cfg == nil {
		return
	}
	d := cfg.Defaults

	if !cmd.Flags().Changed("verbose") && d.Verbose {
		verbose = true
	}
	if !cmd.Flags().Changed("json") && d.JSON {
		jsonOutput = true
	}
	if !cmd.Flags().Changed("csv") && d.CSV {
		csvOutput = true
	}
	if !cmd.Flags().Changed("tui") && d.TUI {
		tuiMode = true
	}
	if !cmd.Flags().Changed("no-color") && d.NoColor {
		noColor = true
	}

	if !cmd.Flags().Changed("tcp-ports") && d.TCPPorts != "" {
		tcpPortSpec = d.TCPPorts
	}
	if !cmd.Flags().Changed("udp-ports") && d.UDPPorts != "" {
		udpPortSpec = d.UDPPorts
	}
	if !cmd.Flags().Changed("timeout") {
		if d.TimeoutMs > 0 {
			timeoutMs = d.TimeoutMs
		} else {
			timeoutMs = engine.DefaultTimeoutMs
		}
	}
	if !cmd.Flags().Changed("ipv4") && d.IPv4 {
		forceIPv4 = true
	}
	if !cmd.Flags().Changed("ipv6") && d.IPv6 {
		forceIPv6 = true
	}
	if !cmd.Flags().Changed("interface") && d.Interface != "" {
		ifaceName = d.Interface
	}

	if !d.Enrichment.Enabled {
		noEnrich = true
	}
	if !cmd.Flags().Changed("no-rdns") && !d.Enrichment.RDNS {
		noRDNS = true
	}

	if tcpPortSpec == "" && udpPortSpec == "" {
		tcpPortSpec = "1-1024"
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rawscan %s\n", version)
		fmt.Printf("  Commit: %s\n", commit)
		fmt.Printf("  Built:  %s\n", date)
		fmt.Printf("  Config: %s\n", config.GetConfigPath())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage rawscan configuration file.

Commands:
  rawscan config --init     Create default config file
  rawscan config --show     Show current configuration
  rawscan config --path     Show config file path`,
	RunE: runConfig,
}

var (
	configInit bool
	configShow bool
	configPath bool
)

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Create default config file")
	configCmd.Flags().BoolVar(&configShow, "show", false, "Show current configuration")
	configCmd.Flags().BoolVar(&configPath, "path", false, "Show config file path")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configPath {
		fmt.Println(config.GetConfigPath())
		return nil
	}

	if configInit {
		path := config.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
		cfg := config.DefaultConfig()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		fmt.Printf("Created config file: %s\n", path)
		return nil
	}

	if configShow {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	return cmd.Help()
}

func runScan(cmd *cobra.Command, args []string) error {
	interfaces, err := hostenum.LocalAddresses()
	if err != nil {
		return fmt.Errorf("enumerate interfaces: %w", err)
	}

	if listInterfaces || ifaceName == "" {
		for _, name := range hostenum.ListInterfaceNames(interfaces) {
			fmt.Printf("Interface: %s\n", name)
		}
		return nil
	}

	var target string
	if len(args) == 0 {
		target, err = promptForTarget()
		if err != nil {
			return err
		}
	} else {
		target = args[0]
	}

	if cfg != nil && cfg.Aliases != nil {
		if alias, ok := cfg.Aliases[target]; ok {
			target = alias
		}
	}

	tcpPorts, udpPorts, err := resolvePorts()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	v4, v6, err := hostenum.ResolveTarget(ctx, target)
	if err != nil {
		return err
	}
	if forceIPv4 {
		v6 = nil
	}
	if forceIPv6 {
		v4 = nil
	}

	if ifaceName == "" {
		return fmt.Errorf("%w: pass --interface, or --list-interfaces to see available names", scanner.ErrNoInterface)
	}

	plan := engine.ScanPlan{
		InterfaceName: ifaceName,
		TimeoutMs:     timeoutMs,
		TCPPorts:      tcpPorts,
		UDPPorts:      udpPorts,
		TargetsV4:     v4,
		TargetsV6:     v6,
	}

	resolver := enrich.NewResolver(enrich.ResolverConfig{
		Enabled:   !noEnrich && !noRDNS,
		Timeout:   2000,
		CacheSize: 1000,
	})
	defer resolver.Close()

	allIPs := make([]string, 0, len(v4)+len(v6))
	for _, a := range append(append([]scanner.NetworkAddress{}, v4...), v6...) {
		allIPs = append(allIPs, a.IP)
	}
	hostnames := resolver.LookupIPs(ctx, allIPs)

	run := func(onOutcome engine.OnOutcome) error {
		return engine.Run(plan, interfaces, onOutcome)
	}

	if tuiMode {
		return tui.Run(target, ifaceName, hostnames, run)
	}

	outputConfig := output.Config{
		Colors:     !noColor,
		NoHostname: noEnrich,
	}

	var textFormatter *output.TextFormatter
	streamText := !jsonOutput && !csvOutput && !verbose
	if streamText {
		textFormatter = output.NewTextFormatter(outputConfig)
		fmt.Printf("Scanning %s via %s\n\n", target, ifaceName)
	}

	var outcomes []scanner.ScanOutcome
	startedAt := time.Now()
	collect := func(o scanner.ScanOutcome) {
		outcomes = append(outcomes, o)
		if streamText {
			fmt.Print(textFormatter.FormatOutcome(o, hostnames))
		}
	}

	if err := engine.Run(plan, interfaces, collect); err != nil {
		return err
	}

	result := &output.ScanResult{
		Target:    target,
		Interface: ifaceName,
		Timestamp: startedAt,
		TimeoutMs: plan.WithDefaults().TimeoutMs,
		Outcomes:  outcomes,
		Hostnames: hostnames,
	}

	switch {
	case jsonOutput:
		writer := output.NewWriter(output.FormatJSON, outputConfig)
		if err := writer.Write(result); err != nil {
			return err
		}
	case csvOutput:
		writer := output.NewWriter(output.FormatCSV, outputConfig)
		if err := writer.Write(result); err != nil {
			return err
		}
	case verbose:
		writer := output.NewWriter(output.FormatVerbose, outputConfig)
		if err := writer.Write(result); err != nil {
			return err
		}
	default:
		s := result.Summarize()
		fmt.Printf("\nScan complete. %d ports: %d open, %d closed, %d filtered\n",
			s.Total, s.Open, s.Closed, s.Filtered)
	}

	if htmlOutput != "" {
		htmlFormatter := output.NewHTMLFormatter(outputConfig)
		if err := output.WriteToFile(result, htmlOutput, htmlFormatter); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "\nHTML report saved to: %s\n", htmlOutput)
	}

	return nil
}

func resolvePorts() (tcpPorts, udpPorts []int, err error) {
	if tcpPortSpec != "" {
		tcpPorts, err = hostenum.ParsePorts(tcpPortSpec)
		if err != nil {
			return nil, nil, err
		}
	}
	if udpPortSpec != "" {
		udpPorts, err = hostenum.ParsePorts(udpPortSpec)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(tcpPorts) == 0 && len(udpPorts) == 0 {
		return nil, nil, fmt.Errorf("%w: no TCP or UDP ports specified", scanner.ErrInvalidPortSpec)
	}
	return tcpPorts, udpPorts, nil
}

// promptForTarget displays an interactive prompt for the user to enter a target.
func promptForTarget() (string, error) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	fmt.Println()
	cyan.Println("╔═══════════════════════════════════════════════════════════╗")
	cyan.Println("║              rawscan - Raw Port Scanner                   ║")
	cyan.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	fmt.Println("  Examples:")
	yellow.Println("    • scanme.nmap.org  - Scan a domain")
	yellow.Println("    • 8.8.8.8          - Scan an IPv4 literal")
	fmt.Println()

	if cfg != nil && len(cfg.Aliases) > 0 {
		fmt.Println("  Aliases:")
		for alias, target := range cfg.Aliases {
			yellow.Printf("    • %s → %s\n", alias, target)
		}
		fmt.Println()
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		green.Print("  Enter target (IP or hostname): ")
		os.Stdout.Sync()

		input, err := reader.ReadString('\n')
		if err != nil {
			if err.Error() == "EOF" {
				return "", fmt.Errorf("no input provided")
			}
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		target := strings.TrimSpace(input)
		if target == "" {
			color.Red("  ✗ Target cannot be empty. Please try again.")
			fmt.Println()
			continue
		}
		if target == "q" || target == "quit" || target == "exit" {
			fmt.Println("  Goodbye!")
			os.Exit(0)
		}

		fmt.Println()
		return target, nil
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets version information for the CLI.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}
