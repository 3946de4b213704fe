package options

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/scanner"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	bundle *scanner.Bundle
	err    error
}

func (f *fakeScanner) Scan(_ context.Context, dir string) (*scanner.Bundle, error) {
	if f.err != nil {
		return nil, f.err
	}
	b := *f.bundle
	b.Src = dir
	return &b, nil
}

func (f *fakeScanner) DetectLayout(string) (scanner.BundleLayout, error) {
	return f.bundle.Layout, nil
}

type fakeProber struct {
	supported bool
	err       error
}

func (f fakeProber) SupportsBooleanDependencies(context.Context) (bool, error) {
	return f.supported, f.err
}

func newTestResolver(meta *models.PackageMetadata, electron string) *Resolver {
	return NewResolver(
		&fakeScanner{bundle: &scanner.Bundle{Metadata: meta, ElectronVersion: electron}},
		fakeProber{supported: true},
	)
}

func TestResolveNormalizesVersion(t *testing.T) {
	logger, hook := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{
		Name:        "footest",
		Description: "Just a test.",
		Version:     "1.0.0-beta+internal-only.0",
	}, "")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{Src: "/tmp/footest", Dest: "/tmp/out", Logger: logger})
	require.NoError(t, err)

	assert.Equal(t, "1.0.0.beta+internal-only.0", cfg.Version)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "Changing 1.0.0-beta+internal-only.0 to 1.0.0.beta+internal-only.0") {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning about the version substitution")
}

func TestResolveDefaults(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{
		Name:        "footest",
		Description: "Just a test...",
		License:     "MIT",
	}, "")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{Src: "/src", Dest: "/dest", Logger: logger})
	require.NoError(t, err)

	assert.Equal(t, "footest", cfg.Name)
	assert.Equal(t, "footest", cfg.ProductName)
	assert.Equal(t, "footest", cfg.Bin)
	assert.Equal(t, "Just a test", cfg.Description)
	assert.Equal(t, "Just a test...", cfg.ProductDescription)
	assert.Equal(t, "1", cfg.Revision)
	assert.Equal(t, "MIT", cfg.License)
	assert.Equal(t, HostArch(), cfg.Arch)
	assert.Equal(t, DefaultCompressionLevel, cfg.CompressionLevel)
	assert.Equal(t, DefaultCategories, cfg.Categories)
	assert.Equal(t, []string{"lsb", "libXScrnSaver"}, cfg.Requires)
	assert.NotNil(t, cfg.Rename)
}

func TestResolveElectronDependencies(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{Name: "footest", Description: "Test"}, "12.0.0")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{Logger: logger})
	require.NoError(t, err)

	assert.Contains(t, cfg.Requires, "gtk3")
	assert.Contains(t, cfg.Requires, "(nss or mozilla-nss)")
	assert.NotContains(t, cfg.Requires, "lsb")
}

func TestResolveRequiresUnion(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{Name: "footest", Description: "Test"}, "")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{
		Options: models.Options{Requires: []string{"dbus", "dbus", "lsb"}},
		Logger:  logger,
	})
	require.NoError(t, err)

	requires := append([]string(nil), cfg.Requires...)
	sort.Strings(requires)
	assert.Equal(t, []string{"dbus", "libXScrnSaver", "lsb"}, requires)
}

func TestResolveUserOverrides(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{
		Name:        "footest",
		Description: "From metadata",
		Version:     "1.0.0",
	}, "")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{
		Options: models.Options{
			Description: models.String("From flat options"),
			Arch:        models.String("aarch64"),
		},
		Nested: &models.Options{
			Description: models.String("From nested options"),
			Version:     models.String("2.0.0"),
		},
		Logger: logger,
	})
	require.NoError(t, err)

	assert.Equal(t, "From flat options", cfg.Description)
	assert.Equal(t, "2.0.0", cfg.Version)
	assert.Equal(t, "aarch64", cfg.Arch)
}

func TestResolveSanitizesName(t *testing.T) {
	logger, hook := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{Name: "@scoped/myapp", Description: "Test"}, "")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{Logger: logger})
	require.NoError(t, err)

	assert.Equal(t, "scoped-myapp", cfg.Name)

	var logged bool
	for _, entry := range hook.AllEntries() {
		if strings.Contains(entry.Message, `"@scoped/myapp" to "scoped-myapp"`) {
			logged = true
		}
	}
	assert.True(t, logged, "expected the sanitized name to be logged")
}

func TestResolveRequiresDescription(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{Name: "footest"}, "")

	_, err := resolver.Resolve(context.Background(), &models.Input{Logger: logger})
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrValidation))
}

func TestResolveEmptyBundle(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{}, "")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{
		Options: models.Options{Description: models.String("Bare bundle")},
		Logger:  logger,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultName, cfg.Name)
	assert.Equal(t, DefaultName, cfg.Bin)
}

func TestResolvePropagatesErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	meta := &models.PackageMetadata{Name: "footest", Description: "Test"}

	probeErr := models.Wrap(models.ErrToolInvocation, "", errors.New("rpmbuild missing"))
	resolver := NewResolver(&fakeScanner{bundle: &scanner.Bundle{Metadata: meta}}, fakeProber{err: probeErr})
	_, err := resolver.Resolve(context.Background(), &models.Input{Logger: logger})
	assert.True(t, models.IsType(err, models.ErrToolInvocation))

	scanErr := models.Wrap(models.ErrParse, "reading package metadata", errors.New("bad json"))
	resolver = NewResolver(&fakeScanner{err: scanErr}, fakeProber{supported: true})
	_, err = resolver.Resolve(context.Background(), &models.Input{Logger: logger})
	assert.True(t, models.IsType(err, models.ErrParse))
}

func TestResolveStrictDependencies(t *testing.T) {
	logger, _ := test.NewNullLogger()
	meta := &models.PackageMetadata{Name: "footest", Description: "Test"}
	resolver := NewResolver(
		&fakeScanner{bundle: &scanner.Bundle{Metadata: meta, ElectronVersion: "12.0.0"}},
		fakeProber{supported: false},
	)

	_, err := resolver.Resolve(context.Background(), &models.Input{StrictDependencies: true, Logger: logger})
	assert.True(t, models.IsType(err, models.ErrUnsupportedToolVersion))

	cfg, err := resolver.Resolve(context.Background(), &models.Input{Logger: logger})
	require.NoError(t, err)
	assert.Contains(t, cfg.Requires, "trash-cli")
}

func TestResolveScripts(t *testing.T) {
	dir := t.TempDir()
	post := filepath.Join(dir, "post.sh")
	require.NoError(t, os.WriteFile(post, []byte("echo installed\n"), 0644))

	logger, _ := test.NewNullLogger()
	resolver := newTestResolver(&models.PackageMetadata{Name: "footest", Description: "Test"}, "")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{
		Options: models.Options{Scripts: map[string]string{
			"post":    post,
			"unknown": filepath.Join(dir, "missing.sh"),
		}},
		Logger: logger,
	})
	require.NoError(t, err)
	assert.Equal(t, "echo installed\n", cfg.Post)
	assert.Empty(t, cfg.Pre)

	_, err = resolver.Resolve(context.Background(), &models.Input{
		Options: models.Options{Scripts: map[string]string{"pre": filepath.Join(dir, "missing.sh")}},
		Logger:  logger,
	})
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrFileRead))
	assert.Contains(t, err.Error(), "reading pre script")
}

func TestResolveWrapsProductDescription(t *testing.T) {
	logger, _ := test.NewNullLogger()
	long := strings.Repeat("word ", 40) + "\n\nSecond paragraph."
	resolver := newTestResolver(&models.PackageMetadata{Name: "footest", Description: "Short", ProductDescription: long}, "")

	cfg, err := resolver.Resolve(context.Background(), &models.Input{Logger: logger})
	require.NoError(t, err)

	for _, line := range strings.Split(cfg.ProductDescription, "\n") {
		assert.LessOrEqual(t, len(line), DefaultWrapWidth)
	}
	assert.Contains(t, cfg.ProductDescription, "\n\nSecond paragraph.")
}
