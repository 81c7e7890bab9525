// Package cliconfig provides configuration types and loading for the userdesk CLI.
package cliconfig

import "time"

// CLIConfig represents the complete configuration for the userdesk CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.userdeskrc.yaml in current directory)
// 4. Global config file (~/.config/userdesk/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Remote users service. APIURL wins over the host/port/base triple.
	APIURL   string        `yaml:"apiUrl,omitempty"`
	APIHost  string        `yaml:"apiHost"`
	APIPort  int           `yaml:"apiPort"`
	APIBase  string        `yaml:"apiBase"`
	APIToken string        `yaml:"apiToken,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`

	// Logging settings
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	// Language selects the catalog used for status messages.
	Language string `yaml:"language"`

	// ServeAddr is the listen address of `userdesk serve`.
	ServeAddr string `yaml:"serveAddr"`

	// Source tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-"`

	// SetFields records which YAML keys were present in a loaded file, so a
	// zero value that was written explicitly (timeout: 0s) still merges.
	SetFields map[string]bool `yaml:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)

// Entry is one resolved setting, as shown by `userdesk config`.
type Entry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}
