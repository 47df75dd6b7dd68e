package cmd

import (
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X"
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// BuildInfo tells which build of l10nsync is running
type BuildInfo struct {
	Version   string `json:"version,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	Commit    string `json:"commit,omitempty"`
	TreeState string `json:"treeState,omitempty"`
}

// CurrentBuild reports the linker-provided build information.
//
// Builds made without -ldflags are "dev" builds: commit and tree state then come from
// the VCS stamp recorded by the go toolchain, when there is one.
func CurrentBuild() BuildInfo {
	b := BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		Commit:    GitCommit,
		TreeState: GitState,
	}
	if b.Version == "" {
		b.Version = "dev"
		b.fromVCSStamp()
	} else if b.TreeState == "" {
		b.TreeState = "clean"
	}
	return b
}

func (b *BuildInfo) fromVCSStamp() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = setting.Value
			}
		case "vcs.time":
			if b.BuildDate == "" {
				b.BuildDate = setting.Value
			}
		case "vcs.modified":
			if b.TreeState == "" && setting.Value == "true" {
				b.TreeState = "dirty"
			} else if b.TreeState == "" {
				b.TreeState = "clean"
			}
		}
	}
}

func (b BuildInfo) String() string {
	var sb strings.Builder
	for _, field := range []struct{ label, value string }{
		{"Version", b.Version},
		{"Build date", b.BuildDate},
		{"Commit", b.Commit},
		{"Working tree", b.TreeState},
	} {
		sb.WriteString(field.label + ": " + field.value + "\n")
	}
	return sb.String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show which build of l10nsync is running",
	Long: `Show which build of l10nsync is running.

Unreleased builds report "dev" as their version. Release builds also report
when they were built, the commit they were built from, and whether the
working tree had local changes at that time.
`,
	Run: func(cmd *cobra.Command, args []string) {
		logStdOut("%s", CurrentBuild().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
