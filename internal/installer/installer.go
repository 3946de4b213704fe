package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/rpmbundle/internal/generator"
	"github.com/ralt/rpmbundle/internal/generator/rpm"
	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/signer"
	"github.com/ralt/rpmbundle/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PublicKeyPrefix names the exported signing key, followed by the package name
const PublicKeyPrefix = "RPM-GPG-KEY-"

// Resolver turns caller input into a resolved configuration
type Resolver interface {
	Resolve(ctx context.Context, input *models.Input) (*models.Configuration, error)
}

// Installer runs a full packaging pass: resolve, stage, build, collect
type Installer struct {
	Resolver Resolver
	Target   generator.Target

	// Signer writes a detached signature next to every package when set
	Signer signer.Signer

	// Verify reads every collected package back and checks its header
	Verify bool

	// KeepStaging leaves the temporary staging tree on disk
	KeepStaging bool
}

// New creates an installer building target packages from options resolved
// by resolver
func New(resolver Resolver, target generator.Target) *Installer {
	return &Installer{
		Resolver: resolver,
		Target:   target,
		Verify:   true,
	}
}

// Run packages input.Src and returns the paths of the created packages
func (i *Installer) Run(ctx context.Context, input *models.Input) ([]string, error) {
	cfg, err := i.Resolver.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger

	if dump, err := json.MarshalIndent(cfg, "", "  "); err == nil {
		logger.Infof("Creating package with options\n%s", dump)
	}

	if err := i.Target.Validate(cfg); err != nil {
		return nil, err
	}

	root, err := os.MkdirTemp("", "electron-")
	if err != nil {
		return nil, models.Wrap(models.ErrFileOp, "creating temporary directory", err)
	}
	if i.KeepStaging {
		logger.Infof("Keeping staging tree at %s", root)
	} else {
		defer func() {
			if err := os.RemoveAll(root); err != nil {
				logger.Warnf("Failed to remove %s: %v", root, err)
			}
		}()
	}

	dir := i.Target.StagingDir(cfg, root)
	if err := i.stage(ctx, cfg, dir); err != nil {
		return nil, err
	}

	if err := i.Target.Build(ctx, cfg, dir); err != nil {
		return nil, err
	}

	files, err := i.Target.Collect(ctx, cfg, dir)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if err := i.finish(cfg, file); err != nil {
			return nil, err
		}
		logger.Infof("Successfully created package at %s", file)
	}

	if i.Signer != nil {
		if err := i.exportPublicKey(cfg); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// exportPublicKey writes the signing key to Dest so that users can import it
// with `rpm --import`
func (i *Installer) exportPublicKey(cfg *models.Configuration) error {
	key, err := i.Signer.PublicKey()
	if err != nil {
		return models.Wrap(models.ErrSigning, "exporting public key", err)
	}

	path := filepath.Join(cfg.Dest, PublicKeyPrefix+cfg.Name)
	if err := utils.WriteFile(path, key, 0644); err != nil {
		return models.Wrap(models.ErrFileOp, "exporting public key", err)
	}
	cfg.Logger.Infof("Exported public key to %s", path)
	return nil
}

// stage runs the target's content steps concurrently
func (i *Installer) stage(ctx context.Context, cfg *models.Configuration, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return models.Wrap(models.ErrFileOp, "creating staging directory", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, step := range i.Target.ContentSteps() {
		step := step
		g.Go(func() error {
			cfg.Logger.Debugf("Running step: %s", step.Name)
			return models.WrapStep(step.Name, models.ErrFileOp, step.Run(gctx, cfg, dir))
		})
	}
	return g.Wait()
}

func (i *Installer) finish(cfg *models.Configuration, file string) error {
	if i.Verify && i.Target.GetSupportedType() == "rpm" {
		if _, err := rpm.VerifyPackage(file, cfg); err != nil {
			return err
		}
	}

	if i.Signer != nil {
		sigPath, err := signer.SignFile(i.Signer, file)
		if err != nil {
			return models.Wrap(models.ErrSigning, "signing package", fmt.Errorf("%s: %w", file, err))
		}
		cfg.Logger.WithFields(logrus.Fields{"package": file, "signature": sigPath}).Info("Signed package")
	}
	return nil
}
