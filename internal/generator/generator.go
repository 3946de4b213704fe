package generator

import (
	"context"

	"github.com/ralt/rpmbundle/internal/models"
)

// Step is one content-generation operation of a packaging target. Steps of
// a target do not depend on each other and may run concurrently.
type Step struct {
	Name string
	Run  func(ctx context.Context, cfg *models.Configuration, dir string) error
}

// Target interface for package formats
type Target interface {
	// Validate checks that the configuration can be packaged
	Validate(cfg *models.Configuration) error

	// StagingDir returns the staging tree location below root
	StagingDir(cfg *models.Configuration, root string) string

	// ContentSteps returns the ordered operations filling the staging tree
	ContentSteps() []Step

	// Build runs the package format tool over the staging tree
	Build(ctx context.Context, cfg *models.Configuration, dir string) error

	// Collect moves the built packages to their destination and returns
	// their final paths
	Collect(ctx context.Context, cfg *models.Configuration, dir string) ([]string, error)

	// GetSupportedType returns the package format this target produces
	GetSupportedType() string
}
