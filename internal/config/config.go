// Package config provides configuration file support for rawscan.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the rawscan configuration file structure.
type Config struct {
	// Defaults are applied when flags are not specified.
	Defaults Defaults `yaml:"defaults"`

	// Aliases for common targets.
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// Defaults holds default values for scan parameters.
type Defaults struct {
	// Output mode
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
	CSV     bool `yaml:"csv"`
	HTML    bool `yaml:"html"`
	TUI     bool `yaml:"tui"`
	NoColor bool `yaml:"no_color"`

	// Scan parameters
	TCPPorts  string `yaml:"tcp_ports"`
	UDPPorts  string `yaml:"udp_ports"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// Network
	IPv4      bool `yaml:"ipv4"`
	IPv6      bool `yaml:"ipv6"`
	Interface string `yaml:"interface"`

	// Presentation
	Enrichment EnrichmentConfig `yaml:"enrichment"`
}

// EnrichmentConfig holds hostname-annotation settings.
type EnrichmentConfig struct {
	Enabled bool `yaml:"enabled"`
	RDNS    bool `yaml:"rdns"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Verbose:   false,
			JSON:      false,
			CSV:       false,
			HTML:      false,
			TUI:       false,
			NoColor:   false,
			TCPPorts:  "1-1024",
			UDPPorts:  "",
			TimeoutMs: 5000,
			IPv4:      false,
			IPv6:      false,
			Interface: "",
			Enrichment: EnrichmentConfig{
				Enabled: true,
				RDNS:    true,
			},
		},
		Aliases: make(map[string]string),
	}
}

// Load reads configuration from the default config file locations.
// It searches in order:
//  1. ./rawscan.yaml (current directory)
//  2. ~/.config/rawscan/config.yaml (Linux/macOS)
//  3. %APPDATA%\rawscan\config.yaml (Windows)
//
// If no config file is found, returns default configuration.
func Load() (*Config, error) {
	paths := getConfigPaths()

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the configuration to the default user config path.
func (c *Config) Save() error {
	return c.SaveTo(getUserConfigPath())
}

// SaveTo writes the configuration to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// getConfigPaths returns the list of config file paths to search.
func getConfigPaths() []string {
	paths := []string{
		"rawscan.yaml",
		"rawscan.yml",
		".rawscan.yaml",
		".rawscan.yml",
	}

	if userPath := getUserConfigPath(); userPath != "" {
		paths = append(paths, userPath)
	}

	return paths
}

// getUserConfigPath returns the user-specific config file path.
func getUserConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "rawscan", "config.yaml")
		}
	default: // Linux, macOS, etc.
		home, err := os.UserHomeDir()
		if err == nil {
			if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
				return filepath.Join(xdgConfig, "rawscan", "config.yaml")
			}
			return filepath.Join(home, ".config", "rawscan", "config.yaml")
		}
	}
	return ""
}

// GetConfigPath returns the path where user config would be saved.
func GetConfigPath() string {
	return getUserConfigPath()
}

// GenerateExample generates an example configuration file content.
func GenerateExample() string {
	return `# rawscan Configuration File
# Location: ~/.config/rawscan/config.yaml (Linux/macOS)
#           %APPDATA%\rawscan\config.yaml (Windows)
#           ./rawscan.yaml (current directory)

defaults:
  # Output mode (only one should be true)
  verbose: false          # Detailed table output
  json: false             # JSON output
  csv: false              # CSV output
  html: false             # Not applied; HTML reports are written only with --html <file>
  tui: false              # Interactive TUI mode
  no_color: false         # Disable colors

  # Scan parameters
  tcp_ports: "1-1024"     # Port list/ranges for TCP SYN scanning
  udp_ports: ""           # Port list/ranges for UDP scanning
  timeout_ms: 5000        # Per-probe receive deadline

  # Network settings
  ipv4: false             # Restrict to IPv4 targets
  ipv6: false             # Restrict to IPv6 targets
  interface: ""           # Sending interface (empty = list interfaces and exit)

  # Hostname annotation
  enrichment:
    enabled: true         # Master switch for hostname annotation
    rdns: true            # Reverse DNS lookups

# Target aliases (optional)
aliases:
  dns: 8.8.8.8
  cf: 1.1.1.1
  localhost: 127.0.0.1
`
}
