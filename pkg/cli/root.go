package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/cli/internal/output"
)

var (
	// Persistent flags available to all subcommands
	apiURL     string
	configFile string
	logLevel   string
	logFormat  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "userdesk",
	Short: "userdesk manages the users of a remote users service",
	Long: `userdesk keeps a local view of a remote user collection and lets you
list, create, edit and delete users through it.

Configuration can be provided via flags, environment variables (USERDESK_*),
a local .userdeskrc.yaml or a global ~/.config/userdesk/config.yaml.`,
	// No Run function here means 'userdesk' with no args will print help text by default.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
}

// Main runs the root command and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(output.Stderr, FormatError(err))
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Users service collection URL (default: http://localhost:8080/api/users)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file to use instead of .userdeskrc.yaml and the global config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
