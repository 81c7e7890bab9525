package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/cli/internal/output"
	"github.com/getmockd/userdesk/pkg/cliconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Show the effective configuration and where each value came from
(default, global, local, file, env or flag).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		entries := cfg.Entries()
		printResult(entries, func() {
			w := output.Table()
			fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
			for _, e := range entries {
				value := e.Value
				if value == "" {
					value = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, value, e.Source)
			}
			_ = w.Flush()

			if configFile != "" {
				fmt.Fprintf(output.Stdout, "\nConfig file: %s\n", configFile)
				return
			}
			global, local := configPaths()
			fmt.Fprintf(output.Stdout, "\nGlobal config: %s\nLocal config:  %s\n", orNone(global), orNone(local))
		})
		return nil
	},
}

// configPaths returns the config files found when no --config is given.
func configPaths() (global, local string) {
	global, _ = cliconfig.FindGlobalConfig()
	local, _ = cliconfig.FindLocalConfig()
	return global, local
}

func orNone(path string) string {
	if path == "" {
		return "(none)"
	}
	return path
}

func init() {
	rootCmd.AddCommand(configCmd)
}
