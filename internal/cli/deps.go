package cli

import (
	"fmt"

	"github.com/ralt/rpmbundle/internal/dependencies"
	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/rpmtool"
	"github.com/ralt/rpmbundle/internal/scanner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewDepsCmd creates the deps command
func NewDepsCmd() *cobra.Command {
	var (
		electronVersion string
		src             string
		rpmVersion      string
		strict          bool
	)

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Print the package requirements of an Electron version",
		Long: `Computes the RPM requirements of an Electron runtime, either given by
--electron-version or read from the version file of the bundle in --src.
The installed rpmbuild is probed for boolean dependency support unless
--rpmbuild-version is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.StandardLogger()

			if electronVersion == "" {
				if src == "" {
					return models.Wrap(models.ErrValidation, "reading flags",
						fmt.Errorf("one of electron-version or src is required"))
				}
				bundle, err := scanner.NewFileSystemScanner(logger).Scan(cmd.Context(), src)
				if err != nil {
					return err
				}
				if bundle.ElectronVersion == "" {
					for _, req := range dependencies.LegacyRequires {
						fmt.Fprintln(cmd.OutOrStdout(), req)
					}
					return nil
				}
				electronVersion = bundle.ElectronVersion
			}

			var supported bool
			var err error
			if rpmVersion != "" {
				supported, err = rpmtool.VersionSupportsBooleanDependencies(rpmVersion)
				if err != nil {
					return models.Wrap(models.ErrParse, "parsing rpmbuild version", err)
				}
			} else {
				probe := rpmtool.NewProbe(rpmtool.NewExecRunner(logger), logger)
				supported, err = probe.SupportsBooleanDependencies(cmd.Context())
				if err != nil {
					return err
				}
			}

			deps, err := dependencies.NewResolver(strict, logger).ForElectron(electronVersion, supported)
			if err != nil {
				return err
			}
			for _, req := range deps.Requires {
				fmt.Fprintln(cmd.OutOrStdout(), req)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&electronVersion, "electron-version", "e", "", "Electron version")
	cmd.Flags().StringVarP(&src, "src", "s", "", "Bundle to read the Electron version from")
	cmd.Flags().StringVar(&rpmVersion, "rpmbuild-version", "", "Assume this rpmbuild version instead of probing")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when rpmbuild does not support boolean dependencies")

	return cmd
}
