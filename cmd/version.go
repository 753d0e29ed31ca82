package cmd

import (
	"fmt"
	goruntime "runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/abhisek/konnektoren/cmd.version=...".
var version = ""

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of the konnektoren binary",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		info, _ := debug.ReadBuildInfo()
		fmt.Fprintln(w, "konnektoren", buildVersion(info))
		if !versionVerbose {
			return
		}
		fmt.Fprintf(w, "go:       %s\n", goruntime.Version())
		fmt.Fprintf(w, "platform: %s/%s\n", goruntime.GOOS, goruntime.GOARCH)
		if info == nil {
			return
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" || s.Key == "vcs.time" {
				fmt.Fprintf(w, "%-9s %s\n", s.Key[len("vcs."):]+":", s.Value)
			}
		}
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Also print Go, platform and VCS details")
}

// buildVersion prefers the linker-set version, then the module version
// recorded by go install.
func buildVersion(info *debug.BuildInfo) string {
	if version != "" {
		return version
	}
	if info != nil && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
