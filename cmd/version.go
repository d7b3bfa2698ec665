package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/cubeof2/jenness-battle-simulator/cmd.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// buildVersion falls back to the module version and VCS stamp recorded by
// go install when no ldflags were given.
func buildVersion() (version, commit, date string) {
	version, commit, date = Version, Commit, BuildDate
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && commit == "none":
			commit = s.Value
		case s.Key == "vcs.time" && date == "unknown":
			date = s.Value
		}
	}
	return
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the simulator version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version, commit, date := buildVersion()
		out := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(out, version)
			return
		}
		fmt.Fprintf(out, "jenness battle simulator version %s\n", version)
		fmt.Fprintf(out, "Commit: %s\n", commit)
		fmt.Fprintf(out, "Build date: %s\n", date)
		fmt.Fprintf(out, "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("short", false, "print only the version")
}
