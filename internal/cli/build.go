package cli

import (
	"context"
	"fmt"

	"github.com/ralt/rpmbundle/internal/generator/rpm"
	"github.com/ralt/rpmbundle/internal/installer"
	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/options"
	"github.com/ralt/rpmbundle/internal/rpmtool"
	"github.com/ralt/rpmbundle/internal/scanner"
	"github.com/ralt/rpmbundle/internal/signer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// buildFlags holds the raw values of the build command's flags. Only flags
// the user changed are copied into the packaging input.
type buildFlags struct {
	configPath string

	src                string
	dest               string
	name               string
	productName        string
	genericName        string
	description        string
	productDescription string
	version            string
	revision           string
	license            string
	homepage           string
	group              string
	arch               string
	os                 string
	bin                string
	icon               string
	execArguments      []string
	categories         []string
	mimeType           []string
	requires           []string
	compressionLevel   int

	pre    string
	post   string
	preun  string
	postun string

	strictDependencies bool
	noVerify           bool
	keepStaging        bool

	gpgKeyPath    string
	gpgPassphrase string
}

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	return newBuildCmd(&buildFlags{})
}

func newBuildCmd(flags *buildFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an RPM package from an Electron application",
		Long: `Reads the application metadata from the bundle in --src, merges it with
the options file and command line flags, and builds an RPM package into
--dest. Command line flags take precedence over the options file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := buildInput(cmd.Flags(), flags)
			if err != nil {
				return err
			}

			logrus.Info("Starting package creation...")
			return runBuild(cmd.Context(), input, flags)
		},
	}

	// Input/Output flags
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML or TOML options file")
	cmd.Flags().StringVarP(&flags.src, "src", "s", "", "Directory containing the pre-built application")
	cmd.Flags().StringVarP(&flags.dest, "dest", "d", "", "Directory the package is written to")

	// Package metadata flags
	cmd.Flags().StringVar(&flags.name, "name", "", "Package name (defaults to package.json name)")
	cmd.Flags().StringVar(&flags.productName, "product-name", "", "Application name shown in menus")
	cmd.Flags().StringVar(&flags.genericName, "generic-name", "", "Generic application name")
	cmd.Flags().StringVar(&flags.description, "description", "", "Short package description")
	cmd.Flags().StringVar(&flags.productDescription, "product-description", "", "Long package description")
	cmd.Flags().StringVar(&flags.version, "version", "", "Package version")
	cmd.Flags().StringVar(&flags.revision, "revision", "", "Package release number")
	cmd.Flags().StringVar(&flags.license, "license", "", "Package license")
	cmd.Flags().StringVar(&flags.homepage, "homepage", "", "Project homepage URL")
	cmd.Flags().StringVar(&flags.group, "group", "", "Package group")
	cmd.Flags().StringVarP(&flags.arch, "arch", "a", "", "Target architecture (defaults to the host)")
	cmd.Flags().StringVar(&flags.os, "os", "", "Target operating system")
	cmd.Flags().StringVar(&flags.bin, "bin", "", "Application executable relative to --src")
	cmd.Flags().StringVar(&flags.icon, "icon", "", "Path to the application icon")
	cmd.Flags().StringSliceVar(&flags.execArguments, "exec-args", nil, "Arguments appended to the desktop entry command")
	cmd.Flags().StringSliceVar(&flags.categories, "categories", nil, "Desktop entry categories")
	cmd.Flags().StringSliceVar(&flags.mimeType, "mime-type", nil, "MIME types handled by the application")
	cmd.Flags().StringSliceVarP(&flags.requires, "requires", "r", nil, "Additional package requirements")
	cmd.Flags().IntVar(&flags.compressionLevel, "compression-level", options.DefaultCompressionLevel, "xz payload compression level (0-9)")

	// Script flags
	cmd.Flags().StringVar(&flags.pre, "pre", "", "Script run before installation")
	cmd.Flags().StringVar(&flags.post, "post", "", "Script run after installation")
	cmd.Flags().StringVar(&flags.preun, "preun", "", "Script run before removal")
	cmd.Flags().StringVar(&flags.postun, "postun", "", "Script run after removal")

	// Behaviour flags
	cmd.Flags().BoolVar(&flags.strictDependencies, "strict-dependencies", false, "Fail when rpmbuild does not support boolean dependencies")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "Skip reading back the built package")
	cmd.Flags().BoolVar(&flags.keepStaging, "keep-staging", false, "Keep the temporary staging tree")

	// GPG signing flags
	cmd.Flags().StringVarP(&flags.gpgKeyPath, "gpg-key", "k", "", "Path to GPG private key for detached signatures")
	cmd.Flags().StringVarP(&flags.gpgPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

// buildInput loads the options file, if any, and overlays the changed flags
func buildInput(fs *pflag.FlagSet, flags *buildFlags) (*models.Input, error) {
	input := &models.Input{}
	if flags.configPath != "" {
		loaded, err := options.LoadFile(flags.configPath)
		if err != nil {
			return nil, err
		}
		input = loaded
	}

	str := func(name, value string, dst **string) {
		if fs.Changed(name) {
			*dst = models.String(value)
		}
	}
	list := func(name string, value []string, dst *[]string) {
		if fs.Changed(name) {
			*dst = value
		}
	}

	if fs.Changed("src") {
		input.Src = flags.src
	}
	if fs.Changed("dest") {
		input.Dest = flags.dest
	}
	if fs.Changed("strict-dependencies") {
		input.StrictDependencies = flags.strictDependencies
	}

	o := &input.Options
	str("name", flags.name, &o.Name)
	str("product-name", flags.productName, &o.ProductName)
	str("generic-name", flags.genericName, &o.GenericName)
	str("description", flags.description, &o.Description)
	str("product-description", flags.productDescription, &o.ProductDescription)
	str("version", flags.version, &o.Version)
	str("revision", flags.revision, &o.Revision)
	str("license", flags.license, &o.License)
	str("homepage", flags.homepage, &o.Homepage)
	str("group", flags.group, &o.Group)
	str("arch", flags.arch, &o.Arch)
	str("os", flags.os, &o.OS)
	str("bin", flags.bin, &o.Bin)
	list("exec-args", flags.execArguments, &o.ExecArguments)
	list("categories", flags.categories, &o.Categories)
	list("mime-type", flags.mimeType, &o.MimeType)
	if fs.Changed("requires") {
		o.Requires = models.Union(o.Requires, flags.requires)
	}
	if fs.Changed("icon") {
		o.Icon = &models.Icon{Path: flags.icon}
	}
	if fs.Changed("compression-level") {
		o.CompressionLevel = models.Int(flags.compressionLevel)
	}

	for hook, value := range map[string]string{
		"pre":    flags.pre,
		"post":   flags.post,
		"preun":  flags.preun,
		"postun": flags.postun,
	} {
		if !fs.Changed(hook) {
			continue
		}
		if o.Scripts == nil {
			o.Scripts = make(map[string]string)
		}
		o.Scripts[hook] = value
	}

	if input.Src == "" {
		return nil, models.Wrap(models.ErrValidation, "reading flags", fmt.Errorf("src is required"))
	}
	if input.Dest == "" {
		return nil, models.Wrap(models.ErrValidation, "reading flags", fmt.Errorf("dest is required"))
	}
	if o.CompressionLevel != nil && (*o.CompressionLevel < 0 || *o.CompressionLevel > 9) {
		return nil, models.Wrap(models.ErrValidation, "reading flags",
			fmt.Errorf("compression level must be between 0 and 9, got %d", *o.CompressionLevel))
	}

	input.Logger = logrus.StandardLogger()
	return input, nil
}

func runBuild(ctx context.Context, input *models.Input, flags *buildFlags) error {
	logger := input.Logger
	runner := rpmtool.NewExecRunner(logger)

	resolver := options.NewResolver(
		scanner.NewFileSystemScanner(logger),
		rpmtool.NewProbe(runner, logger),
	)

	inst := installer.New(resolver, rpm.NewGenerator(runner))
	inst.Verify = !flags.noVerify
	inst.KeepStaging = flags.keepStaging

	if flags.gpgKeyPath != "" {
		gpgSigner, err := signer.NewGPGSigner(flags.gpgKeyPath, flags.gpgPassphrase)
		if err != nil {
			return models.Wrap(models.ErrSigning, "initializing GPG signer", err)
		}
		logger.Infof("Signing packages with GPG key %s", gpgSigner.KeyID())
		inst.Signer = gpgSigner
	}

	files, err := inst.Run(ctx, input)
	if err != nil {
		return err
	}

	logrus.Infof("Package creation completed successfully! Created %d package(s)", len(files))
	return nil
}
