package rpm

import (
	"fmt"
	"strings"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/utils"
)

// VerifyPackage reads back a built package and checks that its header
// carries the configured identity. Requirements missing from the header are
// reported as warnings.
func VerifyPackage(path string, cfg *models.Configuration) (*models.Package, error) {
	pkg, err := ParsePackage(path)
	if err != nil {
		return nil, models.Wrap(models.ErrParse, "verifying package", fmt.Errorf("%s: %w", path, err))
	}

	if pkg.Name != cfg.Name || pkg.Version != cfg.Version {
		return nil, models.Wrap(models.ErrBuild, "verifying package",
			fmt.Errorf("%s is %s-%s, expected %s-%s", path, pkg.Name, pkg.Version, cfg.Name, cfg.Version))
	}

	if missing := MissingRequires(pkg, cfg.Requires); len(missing) > 0 {
		cfg.Logger.Warnf("Package %s does not require %s", utils.PackageIdentity(*pkg), strings.Join(missing, ", "))
	}

	cfg.Logger.Infof("Verified package %s (%d bytes, sha256 %s)", utils.PackageIdentity(*pkg), pkg.Size, pkg.SHA256Sum)
	return pkg, nil
}

// MissingRequires returns the expected requirements absent from the package
// header. rpmlib() requirements added by rpmbuild are ignored.
func MissingRequires(pkg *models.Package, expected []string) []string {
	present := make(map[string]bool, len(pkg.Requires))
	for _, r := range pkg.Requires {
		if strings.HasPrefix(r, "rpmlib(") {
			continue
		}
		present[r] = true
	}

	var missing []string
	for _, r := range expected {
		if !present[r] {
			missing = append(missing, r)
		}
	}
	return missing
}
