package scanner

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
)

const (
	// AsarArchive is the packed application inside a bundle
	AsarArchive = "resources/app.asar"

	// UnpackedMetadata is package.json of an unpacked application
	UnpackedMetadata = "resources/app/package.json"

	// VersionFile holds the Electron version of a bundle
	VersionFile = "version"

	// LicenseFile is copied into the package as its copyright file
	LicenseFile = "LICENSE"
)

// asar archives start with a pickled uint32 holding the size of the header
// size field, which is always 4
var asarMagic = []byte{0x04, 0x00, 0x00, 0x00}

// DetectBundleLayout determines the bundle layout based on magic bytes and
// well-known paths
func DetectBundleLayout(dir string) (BundleLayout, error) {
	asarPath := filepath.Join(dir, AsarArchive)
	f, err := os.Open(asarPath)
	if err == nil {
		defer f.Close()

		header := make([]byte, len(asarMagic))
		if _, err := io.ReadFull(f, header); err != nil {
			return LayoutUnknown, err
		}
		if bytes.Equal(header, asarMagic) {
			return LayoutAsar, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return LayoutUnknown, err
	}

	if _, err := os.Stat(filepath.Join(dir, UnpackedMetadata)); err == nil {
		return LayoutUnpacked, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return LayoutUnknown, err
	}

	return LayoutUnknown, nil
}
