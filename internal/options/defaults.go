package options

import (
	"runtime"

	"github.com/ralt/rpmbundle/internal/models"
)

const (
	// DefaultName is used when the bundle has no package.json
	DefaultName = "electron"

	// DefaultWrapWidth keeps description lines short enough for rpmlint's
	// description-line-too-long check
	DefaultWrapWidth = 100

	// DefaultCompressionLevel is the xz level of the package payload
	DefaultCompressionLevel = 2
)

// DefaultCategories are the desktop entry categories of an application
// that does not name its own
var DefaultCategories = []string{"GNOME", "GTK", "Utility"}

var goArchToRPMArch = map[string]string{
	"386":     "i386",
	"amd64":   "x86_64",
	"arm":     "armv7hl",
	"arm64":   "aarch64",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
}

// HostArch returns the RPM architecture of the running system
func HostArch() string {
	return RPMArch(runtime.GOARCH)
}

// RPMArch converts a GOARCH value into an RPM architecture; unknown values
// are returned unchanged
func RPMArch(goArch string) string {
	if arch, ok := goArchToRPMArch[goArch]; ok {
		return arch
	}
	return goArch
}

// defaultOptions builds the bottom configuration layer
func defaultOptions(requires []string) models.Options {
	return models.Options{
		Name:             models.String(DefaultName),
		Version:          models.String("0.0.0"),
		Revision:         models.String("1"),
		Arch:             models.String(HostArch()),
		Bin:              models.String(DefaultName),
		ExecArguments:    []string{},
		Categories:       append([]string(nil), DefaultCategories...),
		MimeType:         []string{},
		Requires:         requires,
		CompressionLevel: models.Int(DefaultCompressionLevel),
	}
}
