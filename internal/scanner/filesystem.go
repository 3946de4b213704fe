package scanner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner interface for bundles on disk
type FileSystemScanner struct {
	logger logrus.FieldLogger
}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner(logger logrus.FieldLogger) *FileSystemScanner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FileSystemScanner{logger: logger}
}

// Scan reads package.json and the Electron version of the bundle in dir.
// A bundle without package.json yields empty metadata.
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) (*Bundle, error) {
	bundle := &Bundle{Src: dir, Metadata: &models.PackageMetadata{}}
	if dir == "" {
		return bundle, nil
	}

	// Check context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	layout, err := s.DetectLayout(dir)
	if err != nil {
		return nil, models.Wrap(models.ErrFileRead, "reading package metadata", err)
	}
	bundle.Layout = layout

	var data []byte
	switch layout {
	case LayoutAsar:
		bundle.MetadataPath = filepath.Join(dir, AsarArchive)
		s.logger.Infof("Reading package metadata from %s", bundle.MetadataPath)
		data, err = ReadAsarFile(bundle.MetadataPath, "package.json")
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debugf("No package.json in %s", bundle.MetadataPath)
			data, err = nil, nil
		}
	case LayoutUnpacked:
		bundle.MetadataPath = filepath.Join(dir, UnpackedMetadata)
		s.logger.Infof("Reading package metadata from %s", bundle.MetadataPath)
		data, err = os.ReadFile(bundle.MetadataPath)
	default:
		s.logger.Debugf("No package metadata found in %s", dir)
	}

	switch {
	case errors.Is(err, ErrInvalidAsar):
		return nil, models.Wrap(models.ErrParse, "reading package metadata", err)
	case err != nil:
		return nil, models.Wrap(models.ErrFileRead, "reading package metadata", err)
	}

	if data != nil {
		if err := json.Unmarshal(data, bundle.Metadata); err != nil {
			return nil, models.Wrap(models.ErrParse, "reading package metadata",
				fmt.Errorf("%s: %w", bundle.MetadataPath, err))
		}
	}

	version, err := os.ReadFile(filepath.Join(dir, VersionFile))
	switch {
	case err == nil:
		bundle.ElectronVersion = strings.TrimPrefix(strings.TrimSpace(string(version)), "v")
		s.logger.Debugf("Electron version %s", bundle.ElectronVersion)
	case errors.Is(err, os.ErrNotExist):
		s.logger.Debugf("No Electron version file found in %s", dir)
	default:
		return nil, models.Wrap(models.ErrFileRead, "reading Electron version", err)
	}

	return bundle, nil
}

// DetectLayout determines the layout of the bundle in dir
func (s *FileSystemScanner) DetectLayout(dir string) (BundleLayout, error) {
	return DetectBundleLayout(dir)
}
