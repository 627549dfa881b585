package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/spf13/cobra"
)

// Release builds set these with -ldflags "-X .../cmd.version=v1.2.3".
var (
	version   = ""
	commit    = ""
	buildDate = ""
)

var flagVersionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show colorname version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
	// version needs no config.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
}

func init() {
	versionCmd.Flags().BoolVar(&flagVersionShort, "short", false, "Print only the version")
	rootCmd.AddCommand(versionCmd)
}

type buildInfo struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
}

// readBuildInfo prefers the ldflags values and fills gaps from the build
// info the go tool embeds in the binary.
func readBuildInfo() buildInfo {
	bi := buildInfo{Version: version, Commit: commit, Date: buildDate}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; bi.Version == "" && v != "" && v != "(devel)" {
			bi.Version = v
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.Date == "" {
					bi.Date = s.Value
				}
			case "vcs.modified":
				bi.Modified = s.Value == "true"
			}
		}
	}
	if bi.Version == "" {
		bi.Version = "dev"
	}
	if len(bi.Commit) > 12 {
		bi.Commit = bi.Commit[:12]
	}
	return bi
}

func runVersion(_ *cobra.Command, _ []string) error {
	bi := readBuildInfo()
	if flagVersionShort {
		fmt.Fprintln(stdout, bi.Version)
		return nil
	}

	rev := orNA(bi.Commit)
	if bi.Modified {
		rev += " (modified)"
	}
	fmt.Fprintf(stdout, "colorname %s\n", bi.Version)
	fmt.Fprintf(stdout, "  commit:  %s\n", rev)
	fmt.Fprintf(stdout, "  built:   %s\n", orNA(bi.Date))
	fmt.Fprintf(stdout, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(stdout, "  table:   %d buckets, %d levels per channel, %d color names\n",
		colorname.Buckets, colorname.Levels, colorname.NumCategories)
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
