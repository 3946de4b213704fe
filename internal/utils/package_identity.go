package utils

import (
	"fmt"

	"github.com/ralt/rpmbundle/internal/models"
)

// PackageIdentity returns the name-version-release.arch identifier of a
// built package
func PackageIdentity(pkg models.Package) string {
	release := pkg.Release
	if release == "" {
		release = "1"
	}
	return fmt.Sprintf("%s-%s-%s.%s", pkg.Name, pkg.Version, release, pkg.Architecture)
}
