package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ralt/rpmbundle/internal/generator/rpm"
	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/utils"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var listFiles bool

	cmd := &cobra.Command{
		Use:   "inspect <package.rpm>...",
		Short: "Show the header and payload of built RPM packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, path := range args {
				if i > 0 {
					fmt.Fprintln(out)
				}

				pkg, err := rpm.ParsePackage(path)
				if err != nil {
					return models.Wrap(models.ErrParse, "inspecting package", fmt.Errorf("%s: %w", path, err))
				}
				printPackage(out, pkg)

				if !listFiles {
					continue
				}
				files, err := rpm.ListPayload(path)
				if err != nil {
					return models.Wrap(models.ErrParse, "listing payload", fmt.Errorf("%s: %w", path, err))
				}
				fmt.Fprintln(out, "Files:")
				for _, f := range files {
					fmt.Fprintf(out, "  %06o %10d %s\n", f.Mode, f.Size, f.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&listFiles, "files", "l", false, "List the payload files")

	return cmd
}

func printPackage(w io.Writer, pkg *models.Package) {
	fmt.Fprintf(w, "Package:     %s\n", utils.PackageIdentity(*pkg))
	fmt.Fprintf(w, "Summary:     %s\n", pkg.Summary)
	fmt.Fprintf(w, "License:     %s\n", pkg.License)
	if pkg.Group != "" {
		fmt.Fprintf(w, "Group:       %s\n", pkg.Group)
	}
	if pkg.Homepage != "" {
		fmt.Fprintf(w, "URL:         %s\n", pkg.Homepage)
	}
	if pkg.BuildTime > 0 {
		fmt.Fprintf(w, "Build time:  %s\n", time.Unix(pkg.BuildTime, 0).UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Compressor:  %s\n", pkg.PayloadCompressor)
	fmt.Fprintf(w, "Size:        %d\n", pkg.Size)
	fmt.Fprintf(w, "SHA256:      %s\n", pkg.SHA256Sum)
	if len(pkg.Requires) > 0 {
		fmt.Fprintf(w, "Requires:    %s\n", strings.Join(pkg.Requires, ", "))
	}

	hooks := make([]string, 0, len(pkg.Scripts))
	for hook := range pkg.Scripts {
		hooks = append(hooks, hook)
	}
	sort.Strings(hooks)
	for _, hook := range hooks {
		fmt.Fprintf(w, "%%%s:\n%s\n", hook, pkg.Scripts[hook])
	}
}
