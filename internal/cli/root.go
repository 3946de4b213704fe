package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rpmbundle",
		Short: "Package pre-built Electron applications as RPM files",
		Long: `Rpmbundle takes a directory containing a pre-built Electron application,
stages it with a generated spec file, desktop entry and icons, and runs
rpmbuild to produce an installable .rpm package.

Dependencies are derived from the bundled Electron version and adapted to
the capabilities of the installed rpmbuild.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewInspectCmd())

	return rootCmd
}
