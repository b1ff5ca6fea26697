package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/abhisek/arise/cmd.version=v1.2.3".
// Without it the module version from the build info is used.
var version = buildVersion()

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the arise version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		bi, _ := debug.ReadBuildInfo()
		writeBuild(cmd.OutOrStdout(), version, bi)
	},
}

func buildVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// buildDetails pulls the VCS and target settings out of bi.
type buildDetails struct {
	revision string
	dirty    bool
	goos     string
	goarch   string
	goVer    string
}

func readBuild(bi *debug.BuildInfo) buildDetails {
	var d buildDetails
	if bi == nil {
		return d
	}
	d.goVer = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			d.revision = s.Value
		case "vcs.modified":
			d.dirty = s.Value == "true"
		case "GOOS":
			d.goos = s.Value
		case "GOARCH":
			d.goarch = s.Value
		}
	}
	return d
}

func writeBuild(w io.Writer, v string, bi *debug.BuildInfo) {
	fmt.Fprintf(w, "arise %s\n", v)
	d := readBuild(bi)
	if d.revision != "" {
		rev := d.revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if d.dirty {
			rev += " (modified)"
		}
		fmt.Fprintf(w, "  commit:   %s\n", rev)
	}
	if d.goVer != "" {
		fmt.Fprintf(w, "  go:       %s\n", d.goVer)
	}
	if d.goos != "" {
		fmt.Fprintf(w, "  platform: %s/%s\n", d.goos, d.goarch)
	}
}
