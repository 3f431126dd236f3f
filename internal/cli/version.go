package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/launchrank/internal/storage"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "launchrank %s (commit: %s, built: %s, sqlite: %s/%s)\n",
				Version, Commit, BuildDate, storage.BuildMode, storage.DriverName)
		},
	}
}

// VersionString returns a formatted version string
func VersionString() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
