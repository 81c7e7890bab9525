package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/cli/internal/output"
)

// VersionOutput represents JSON output format
type VersionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// String renders the human-readable version banner.
func (v VersionOutput) String() string {
	version := v.Version
	if version != "dev" && version != "(devel)" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return fmt.Sprintf("userdesk %s (%s, %s)\n%s %s/%s", version, v.Commit, v.Date, v.Go, v.OS, v.Arch)
}

// buildVersion combines the ldflags values with the module build info;
// ldflags win when set.
func buildVersion(info *debug.BuildInfo, ok bool) VersionOutput {
	out := VersionOutput{
		Version: Version,
		Commit:  Commit,
		Date:    BuildDate,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if !ok || info == nil {
		return out
	}

	if out.Version == "dev" && info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = setting.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = setting.Value
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty {
		out.Commit += "-dirty"
	}
	return out
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show userdesk version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := buildVersion(debug.ReadBuildInfo())
		printResult(out, func() {
			fmt.Fprintln(output.Stdout, out.String())
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
