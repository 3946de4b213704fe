package rpm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ralt/rpmbundle/internal/generator"
	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/rpmtool"
	"github.com/ralt/rpmbundle/internal/scanner"
	"github.com/ralt/rpmbundle/internal/utils"
)

const (
	// BuildArgument builds a binary package from a spec file
	BuildArgument = "-bb"

	// TargetArgument specifies the target architecture
	TargetArgument = "--target"

	// DefineArgument defines an rpm macro for the build
	DefineArgument = "--define"

	// TopDirDefine points rpmbuild at the staging tree
	TopDirDefine = "_topdir"
)

// Generator implements the generator.Target interface for RPM packages
type Generator struct {
	runner rpmtool.Runner
}

var _ generator.Target = (*Generator)(nil)

// NewGenerator creates a new RPM target running rpmbuild through runner
func NewGenerator(runner rpmtool.Runner) *Generator {
	return &Generator{runner: runner}
}

// Validate checks the fields the staging tree and rpmbuild depend on
func (g *Generator) Validate(cfg *models.Configuration) error {
	var missing []string
	for field, value := range map[string]string{
		"src":     cfg.Src,
		"dest":    cfg.Dest,
		"name":    cfg.Name,
		"version": cfg.Version,
		"arch":    cfg.Arch,
		"bin":     cfg.Bin,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return models.Wrap(models.ErrValidation, "validating options", fmt.Errorf("missing required options: %v", missing))
	}

	info, err := os.Stat(cfg.Src)
	if err != nil {
		return models.Wrap(models.ErrValidation, "validating options", fmt.Errorf("src: %w", err))
	}
	if !info.IsDir() {
		return models.Wrap(models.ErrValidation, "validating options", fmt.Errorf("src %s is not a directory", cfg.Src))
	}
	return nil
}

// StagingDir returns the rpmbuild top directory below root
func (g *Generator) StagingDir(cfg *models.Configuration, root string) string {
	return filepath.Join(root, fmt.Sprintf("%s_%s_%s", cfg.Name, cfg.Version, cfg.Arch))
}

// ContentSteps returns the operations filling the staging tree
func (g *Generator) ContentSteps() []generator.Step {
	return []generator.Step{
		{Name: "creating spec file", Run: createSpec},
		{Name: "creating binary file", Run: createBinary},
		{Name: "creating desktop file", Run: createDesktop},
		{Name: "creating icon file", Run: createIcon},
		{Name: "creating copyright file", Run: createCopyright},
		{Name: "copying application directory", Run: createApplication},
	}
}

// Build runs rpmbuild over the staging tree
func (g *Generator) Build(ctx context.Context, cfg *models.Configuration, dir string) error {
	cfg.Logger.Infof("Creating package at %s", dir)

	_, err := g.runner.Run(ctx, rpmtool.RPMBuildProgram, BuildArgs(cfg, dir)...)
	return models.Wrap(models.ErrBuild, "creating package", err)
}

// BuildArgs returns the rpmbuild arguments building the staged spec file
func BuildArgs(cfg *models.Configuration, dir string) []string {
	return []string{
		BuildArgument, specPath(cfg, dir),
		TargetArgument, cfg.Arch,
		DefineArgument, fmt.Sprintf("%s %s", TopDirDefine, dir),
	}
}

// Collect moves RPMS/<arch>/*.rpm to the locations chosen by cfg.Rename
func (g *Generator) Collect(ctx context.Context, cfg *models.Configuration, dir string) ([]string, error) {
	cfg.Logger.Info("Moving package to destination")

	pattern := filepath.Join(dir, "RPMS", cfg.Arch, "*.rpm")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, models.Wrap(models.ErrFileOp, "moving package files", err)
	}
	if len(files) == 0 {
		return nil, models.Wrap(models.ErrBuild, "moving package files", fmt.Errorf("no package matches %s", pattern))
	}

	var moved []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dest, err := expandPath(cfg.Rename(cfg.Dest, filepath.Base(file)), cfg)
		if err != nil {
			return nil, models.Wrap(models.ErrFileOp, "moving package files", fmt.Errorf("renaming %s: %w", file, err))
		}

		cfg.Logger.Infof("Moving file %s to %s", file, dest)
		if err := utils.MoveFile(file, dest); err != nil {
			return nil, models.Wrap(models.ErrFileOp, "moving package files", err)
		}
		moved = append(moved, dest)
	}
	return moved, nil
}

// GetSupportedType returns the package format this target produces
func (g *Generator) GetSupportedType() string {
	return "rpm"
}

func specPath(cfg *models.Configuration, dir string) string {
	return filepath.Join(dir, "SPECS", cfg.Name+".spec")
}

func buildRoot(dir string) string {
	return filepath.Join(dir, "BUILD")
}

// createSpec renders the spec file
//
// See: https://fedoraproject.org/wiki/How_to_create_an_RPM_package
func createSpec(_ context.Context, cfg *models.Configuration, dir string) error {
	dest := specPath(cfg, dir)
	cfg.Logger.Infof("Creating spec file at %s", dest)

	spec, err := renderTemplate("spec.tmpl", cfg)
	if err != nil {
		return err
	}
	cfg.Logger.Debugf("Generated spec file\n%s", spec)
	return utils.WriteFile(dest, spec, 0644)
}

// createBinary links /usr/bin/<name> to the executable inside the application
func createBinary(_ context.Context, cfg *models.Configuration, dir string) error {
	binDir := filepath.Join(buildRoot(dir), "usr", "bin")
	src := filepath.Join("..", "lib", cfg.Name, cfg.Bin)
	dest := filepath.Join(binDir, cfg.Name)
	cfg.Logger.Infof("Symlinking binary from %s to %s", src, dest)

	if err := utils.EnsureDir(binDir); err != nil {
		return err
	}
	return os.Symlink(src, dest)
}

// createDesktop renders the desktop entry
//
// See: http://standards.freedesktop.org/desktop-entry-spec/latest/
func createDesktop(_ context.Context, cfg *models.Configuration, dir string) error {
	dest := filepath.Join(buildRoot(dir), "usr", "share", "applications", cfg.Name+".desktop")
	cfg.Logger.Infof("Creating desktop file at %s", dest)

	desktop, err := renderTemplate("desktop.tmpl", cfg)
	if err != nil {
		return err
	}
	return utils.WriteFile(dest, desktop, 0644)
}

// iconFile maps an icon source to its install path. An empty src stands for
// the bundled default icon.
type iconFile struct {
	src         string
	installPath string
}

func iconFiles(cfg *models.Configuration) []iconFile {
	icon := cfg.Icon
	switch {
	case !icon.IsSet():
		return []iconFile{{installPath: "/usr/share/pixmaps/" + cfg.Name + ".png"}}
	case icon.IsHicolor():
		var files []iconFile
		for _, res := range icon.SortedResolutions() {
			src := icon.Resolutions[res]
			name := cfg.Name
			if res == "symbolic" {
				name += "-symbolic"
			}
			files = append(files, iconFile{
				src:         src,
				installPath: fmt.Sprintf("/usr/share/icons/hicolor/%s/apps/%s%s", res, name, iconExt(src)),
			})
		}
		return files
	default:
		return []iconFile{{
			src:         icon.Path,
			installPath: "/usr/share/pixmaps/" + cfg.Name + iconExt(icon.Path),
		}}
	}
}

func iconExt(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return ".png"
}

// createIcon copies the pixmap or hicolor icons into the staging tree
func createIcon(_ context.Context, cfg *models.Configuration, dir string) error {
	for _, icon := range iconFiles(cfg) {
		dest := filepath.Join(buildRoot(dir), filepath.FromSlash(icon.installPath))
		cfg.Logger.Infof("Creating icon file at %s", dest)

		if icon.src == "" {
			data, err := resources.ReadFile("resources/icon.png")
			if err != nil {
				return err
			}
			if err := utils.WriteFile(dest, data, 0644); err != nil {
				return err
			}
			continue
		}

		if err := utils.CopyFile(icon.src, dest); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return models.Wrap(models.ErrFileRead, "reading icon", err)
			}
			return err
		}
	}
	return nil
}

// createCopyright copies the application's LICENSE file
func createCopyright(_ context.Context, cfg *models.Configuration, dir string) error {
	src := filepath.Join(cfg.Src, scanner.LicenseFile)
	dest := filepath.Join(buildRoot(dir), "usr", "share", "doc", cfg.Name, "copyright")
	cfg.Logger.Infof("Reading license file from %s", src)

	license, err := os.ReadFile(src)
	if err != nil {
		return models.Wrap(models.ErrFileRead, "reading license file", err)
	}

	cfg.Logger.Infof("Creating copyright file at %s", dest)
	return utils.WriteFile(dest, license, 0644)
}

// createApplication copies the bundle to /usr/lib/<name>
func createApplication(_ context.Context, cfg *models.Configuration, dir string) error {
	dest := filepath.Join(buildRoot(dir), "usr", "lib", cfg.Name)
	cfg.Logger.Infof("Copying application to %s", dest)

	if err := utils.EnsureDir(dest); err != nil {
		return err
	}
	return utils.CopyDir(cfg.Src, dest)
}
