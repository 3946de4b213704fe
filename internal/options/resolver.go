package options

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/ralt/rpmbundle/internal/dependencies"
	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/scanner"
	"github.com/ralt/rpmbundle/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultRenameTemplate is the file name of a moved package
const DefaultRenameTemplate = "{{.Name}}-{{.Version}}.{{.Arch}}.rpm"

// DefaultRename places every package in dest under DefaultRenameTemplate
func DefaultRename(dest, _ string) string {
	return filepath.Join(dest, DefaultRenameTemplate)
}

// Prober reports whether the installed rpmbuild supports boolean
// dependency expressions
type Prober interface {
	SupportsBooleanDependencies(ctx context.Context) (bool, error)
}

// Resolver turns caller input into a fully resolved Configuration
type Resolver struct {
	scanner   scanner.Scanner
	prober    Prober
	mapping   dependencies.Map
	WrapWidth int
}

// NewResolver creates a resolver reading bundles with sc and probing
// rpmbuild with prober
func NewResolver(sc scanner.Scanner, prober Prober) *Resolver {
	return &Resolver{
		scanner:   sc,
		prober:    prober,
		mapping:   dependencies.DefaultMap,
		WrapWidth: DefaultWrapWidth,
	}
}

// Resolve merges defaults, the metadata detected in input.Src and the
// caller's options, in increasing order of precedence, then validates and
// normalizes the result.
func (r *Resolver) Resolve(ctx context.Context, input *models.Input) (*models.Configuration, error) {
	logger := input.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	// Metadata detection and the rpmbuild probe are independent
	var bundle *scanner.Bundle
	var booleanSupported bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bundle, err = r.scanner.Scan(gctx, input.Src)
		return err
	})
	g.Go(func() error {
		var err error
		booleanSupported, err = r.prober.SupportsBooleanDependencies(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	requires := dependencies.LegacyRequires
	if bundle.ElectronVersion != "" {
		resolver := &dependencies.Resolver{Map: r.mapping, Strict: input.StrictDependencies, Logger: logger}
		deps, err := resolver.ForElectron(bundle.ElectronVersion, booleanSupported)
		if err != nil {
			return nil, err
		}
		requires = deps.Requires
	} else {
		logger.Debugf("Electron version unknown, using default dependencies %s", strings.Join(requires, ", "))
	}

	merged := defaultOptions(requires).
		Override(bundle.Metadata.Options()).
		Override(input.UserOptions())

	cfg := &models.Configuration{
		Src:    input.Src,
		Dest:   input.Dest,
		Logger: logger,
		Rename: input.Rename,
	}
	if cfg.Rename == nil {
		cfg.Rename = DefaultRename
	}
	cfg.ApplyOptions(merged)

	if sanitized := utils.SanitizeName(cfg.Name); sanitized != cfg.Name {
		logger.Infof("Sanitized package name %q to %q", cfg.Name, sanitized)
		cfg.Name = sanitized
	}

	if cfg.Description == "" && cfg.ProductDescription == "" {
		return nil, models.Wrap(models.ErrValidation, "resolving options",
			errors.New("no description or productDescription provided"))
	}

	cfg.Description = strings.TrimRight(cfg.Description, ".")
	cfg.ProductDescription = WrapText(cfg.ProductDescription, r.WrapWidth)

	bodies, err := ReadScripts(ctx, merged.Scripts, logger)
	if err != nil {
		return nil, err
	}
	applyScripts(cfg, bodies)

	if adjusted := utils.NormalizeVersion(cfg.Version); adjusted != cfg.Version {
		logger.Warnf("Replacing disallowed characters in version to comply with SPEC format. Changing %s to %s",
			cfg.Version, adjusted)
		cfg.Version = adjusted
	}

	return cfg, nil
}
