package scanner

import (
	"context"

	"github.com/ralt/rpmbundle/internal/models"
)

// BundleLayout represents how an Electron bundle stores its application
type BundleLayout int

const (
	LayoutUnknown BundleLayout = iota
	LayoutAsar
	LayoutUnpacked
)

// String returns the string representation of BundleLayout
func (l BundleLayout) String() string {
	switch l {
	case LayoutAsar:
		return "asar"
	case LayoutUnpacked:
		return "unpacked"
	default:
		return "unknown"
	}
}

// Bundle describes a pre-built application directory
type Bundle struct {
	Src    string
	Layout BundleLayout

	// MetadataPath is where package.json was read from
	MetadataPath string
	Metadata     *models.PackageMetadata

	// ElectronVersion is the content of the bundle's version file, empty
	// when the file does not exist
	ElectronVersion string
}

// Scanner interface for detecting and reading application bundles
type Scanner interface {
	// Scan reads the metadata of the bundle in dir
	Scan(ctx context.Context, dir string) (*Bundle, error)

	// DetectLayout determines how the bundle stores its application
	DetectLayout(dir string) (BundleLayout, error)
}
