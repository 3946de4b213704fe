package rpmtool

import (
	"context"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// RPMBuildProgram is the package format tool
	RPMBuildProgram = "rpmbuild"

	// VersionArgument asks rpmbuild for its version
	VersionArgument = "--version"
)

// Probe queries the installed rpmbuild for its capabilities
type Probe struct {
	runner Runner
	logger logrus.FieldLogger
}

// NewProbe creates a probe executing commands through runner
func NewProbe(runner Runner, logger logrus.FieldLogger) *Probe {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Probe{runner: runner, logger: logger}
}

// RPMVersion returns the version token printed by `rpmbuild --version`
func (p *Probe) RPMVersion(ctx context.Context) (string, error) {
	output, err := p.runner.Run(ctx, RPMBuildProgram, VersionArgument)
	if err != nil {
		return "", models.WrapStep("probing rpmbuild version", models.ErrToolInvocation, err)
	}

	token, err := LastToken(output)
	if err != nil {
		return "", models.Wrap(models.ErrParse, "probing rpmbuild version", err)
	}
	return token, nil
}

// SupportsBooleanDependencies reports whether the installed rpmbuild is
// recent enough for boolean dependency expressions
func (p *Probe) SupportsBooleanDependencies(ctx context.Context) (bool, error) {
	version, err := p.RPMVersion(ctx)
	if err != nil {
		return false, err
	}

	supported, err := VersionSupportsBooleanDependencies(version)
	if err != nil {
		return false, models.Wrap(models.ErrParse, "parsing rpmbuild version", err)
	}

	p.logger.Debugf("rpmbuild version %s, boolean dependencies supported: %t", version, supported)
	return supported, nil
}
