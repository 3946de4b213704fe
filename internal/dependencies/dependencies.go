package dependencies

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/rpmtool"
	"github.com/sirupsen/logrus"
)

// LegacyRequires is the dependency list used when the Electron version of a
// bundle is unknown
var LegacyRequires = []string{"lsb", "libXScrnSaver"}

// UnsupportedMessage is reported when rpmbuild predates boolean dependencies
const UnsupportedMessage = "Please upgrade to RPM 4.13 or above, which supports boolean dependencies.\n" +
	"This is used to express Electron dependencies for a wide variety of RPM-using distributions."

var (
	v1_4_1  = rpmtool.Version{1, 4, 1}
	v1_7_2  = rpmtool.Version{1, 7, 2}
	v2_0_0  = rpmtool.Version{2, 0, 0}
	v3_0_0  = rpmtool.Version{3, 0, 0}
	v4_0_0  = rpmtool.Version{4, 0, 0}
	v5_0_0  = rpmtool.Version{5, 0, 0}
	v9_0_0  = rpmtool.Version{9, 0, 0}
	v11_0_0 = rpmtool.Version{11, 0, 0}
)

// Capabilities returns the capabilities an Electron version needs, trash
// support excluded
func Capabilities(electron rpmtool.Version) []Capability {
	caps := []Capability{GTK2}
	if electron.AtLeast(v2_0_0) {
		caps[0] = GTK3
	}
	caps = append(caps, Notify, NSS, XSS, XTST, XDGUtils)

	if electron.AtLeast(v5_0_0) {
		caps = append(caps, ATSPI)
	}
	if electron.AtLeast(v9_0_0) {
		caps = append(caps, DRM, GBM)
	}
	if !electron.AtLeast(v3_0_0) {
		caps = append(caps, GConf)
	}
	if electron.AtLeast(v4_0_0) {
		caps = append(caps, UUID)
	}
	if electron.AtLeast(v11_0_0) {
		caps = append(caps, XcbDri3)
	}
	return caps
}

// TrashCapabilities returns the capabilities any one of which lets an
// Electron version move files to the trash
func TrashCapabilities(electron rpmtool.Version) []Capability {
	switch {
	case !electron.AtLeast(v1_4_1):
		return []Capability{GVFS}
	case !electron.AtLeast(v1_7_2):
		return []Capability{KDECliTools, KDERuntime, TrashCLI, GVFS}
	default:
		return []Capability{KDECliTools, KDERuntime, TrashCLI, Glib2, GVFS}
	}
}

// Render formats a list of alternative package names as one requirement.
// A single name is emitted bare; several become "(a or b)".
func Render(alternatives []string) string {
	if len(alternatives) == 1 {
		return alternatives[0]
	}
	return "(" + strings.Join(alternatives, " or ") + ")"
}

// Depends returns the requirements for an Electron version, trash support
// excluded. Without boolean support each capability falls back to its
// first package name.
func Depends(electron rpmtool.Version, m Map, boolean bool) []string {
	var requires []string
	for _, c := range Capabilities(electron) {
		alternatives := m[c]
		if len(alternatives) == 0 {
			continue
		}
		if boolean {
			requires = append(requires, Render(alternatives))
		} else {
			requires = append(requires, alternatives[0])
		}
	}
	return requires
}

// TrashRequires returns the trash requirement for an Electron version as a
// one-element list. Without boolean support a choice between several
// packages collapses to trash-cli.
func TrashRequires(electron rpmtool.Version, m Map, boolean bool) []string {
	alternatives := m.Alternatives(TrashCapabilities(electron)...)
	switch {
	case len(alternatives) == 0:
		return nil
	case len(alternatives) == 1 || boolean:
		return []string{Render(alternatives)}
	default:
		if fallback := m[TrashCLI]; len(fallback) > 0 {
			return []string{fallback[0]}
		}
		return []string{alternatives[0]}
	}
}

// Dependencies is the computed dependency list of one Electron version
type Dependencies struct {
	// Requires holds every requirement, trash included
	Requires []string
	// Trash holds the trash requirement on its own
	Trash []string
}

// Resolver computes Electron dependencies for the installed rpmbuild
type Resolver struct {
	Map Map

	// Strict makes an rpmbuild without boolean dependencies an error
	// instead of a warning with degraded dependencies.
	Strict bool

	Logger logrus.FieldLogger
}

// NewResolver creates a resolver using DefaultMap
func NewResolver(strict bool, logger logrus.FieldLogger) *Resolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Resolver{Map: DefaultMap, Strict: strict, Logger: logger}
}

// ForElectron returns the dependencies of the given Electron version.
// booleanSupported is the result of probing rpmbuild.
func (r *Resolver) ForElectron(electronVersion string, booleanSupported bool) (*Dependencies, error) {
	electron, err := rpmtool.ParseVersion(electronVersion)
	if err != nil {
		return nil, models.Wrap(models.ErrParse, "parsing Electron version",
			fmt.Errorf("%q: %w", electronVersion, err))
	}

	if !booleanSupported {
		if r.Strict {
			return nil, models.Wrap(models.ErrUnsupportedToolVersion, "computing Electron dependencies",
				errors.New(UnsupportedMessage))
		}
		r.Logger.Warnf("rpmbuild is older than %s and does not support boolean dependencies; "+
			"depending on the first package of each alternative and on %s for trash support",
			rpmtool.BooleanDependenciesVersion, strings.Join(r.Map[TrashCLI], ", "))
	}

	deps := &Dependencies{
		Trash: TrashRequires(electron, r.Map, booleanSupported),
	}
	deps.Requires = append(Depends(electron, r.Map, booleanSupported), deps.Trash...)
	return deps, nil
}
