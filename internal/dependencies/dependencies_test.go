package dependencies

import (
	"regexp"
	"testing"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/rpmtool"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var multipleAlternatives = regexp.MustCompile(`^\(.* or .*\)$`)

func TestRender(t *testing.T) {
	assert.Equal(t, "gvfs-client", Render([]string{"gvfs-client"}))
	assert.Equal(t, "(libnotify or libnotify4)", Render([]string{"libnotify", "libnotify4"}))
}

func TestTrashRequires(t *testing.T) {
	t.Run("single alternative is bare", func(t *testing.T) {
		trash := TrashRequires(rpmtool.Version{1, 0, 0}, DefaultMap, true)
		require.Len(t, trash, 1)
		assert.Equal(t, "gvfs-client", trash[0])
	})

	t.Run("multiple alternatives are grouped", func(t *testing.T) {
		trash := TrashRequires(rpmtool.Version{1, 5, 0}, DefaultMap, true)
		require.Len(t, trash, 1)
		assert.Regexp(t, multipleAlternatives, trash[0])
		assert.Equal(t, "(kde-cli-tools or kde-cli-tools5 or kde-runtime or trash-cli or gvfs-client)", trash[0])
	})

	t.Run("glib2 from 1.7.2", func(t *testing.T) {
		trash := TrashRequires(rpmtool.Version{1, 7, 2}, DefaultMap, true)
		require.Len(t, trash, 1)
		assert.Contains(t, trash[0], "glib2")

		trash = TrashRequires(rpmtool.Version{1, 7, 1}, DefaultMap, true)
		require.Len(t, trash, 1)
		assert.NotContains(t, trash[0], "glib2")
	})

	t.Run("falls back to trash-cli without boolean support", func(t *testing.T) {
		assert.Equal(t, []string{"trash-cli"}, TrashRequires(rpmtool.Version{12, 0, 0}, DefaultMap, false))
		assert.Equal(t, []string{"gvfs-client"}, TrashRequires(rpmtool.Version{1, 0, 0}, DefaultMap, false))
	})
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		version  rpmtool.Version
		contains []Capability
		excludes []Capability
	}{
		{
			version:  rpmtool.Version{1, 8, 0},
			contains: []Capability{GTK2, GConf, Notify, NSS, XSS, XTST, XDGUtils},
			excludes: []Capability{GTK3, ATSPI, DRM, GBM, UUID, XcbDri3},
		},
		{
			version:  rpmtool.Version{2, 0, 0},
			contains: []Capability{GTK3, GConf},
			excludes: []Capability{GTK2, UUID},
		},
		{
			version:  rpmtool.Version{4, 0, 0},
			contains: []Capability{GTK3, UUID},
			excludes: []Capability{GConf, ATSPI},
		},
		{
			version:  rpmtool.Version{9, 0, 0},
			contains: []Capability{ATSPI, DRM, GBM, UUID},
			excludes: []Capability{XcbDri3},
		},
		{
			version:  rpmtool.Version{11, 0, 0},
			contains: []Capability{ATSPI, DRM, GBM, UUID, XcbDri3},
			excludes: []Capability{GTK2, GConf},
		},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			caps := Capabilities(tt.version)
			for _, c := range tt.contains {
				assert.Contains(t, caps, c)
			}
			for _, c := range tt.excludes {
				assert.NotContains(t, caps, c)
			}
		})
	}
}

func TestDepends(t *testing.T) {
	requires := Depends(rpmtool.Version{12, 0, 0}, DefaultMap, true)
	assert.Contains(t, requires, "gtk3")
	assert.Contains(t, requires, "(nss or mozilla-nss)")
	assert.Contains(t, requires, "(libXtst or libXtst6)")

	degraded := Depends(rpmtool.Version{12, 0, 0}, DefaultMap, false)
	assert.Len(t, degraded, len(requires))
	for _, r := range degraded {
		assert.NotRegexp(t, multipleAlternatives, r)
	}
	assert.Contains(t, degraded, "nss")
	assert.Contains(t, degraded, "libXtst")
}

func TestResolverForElectron(t *testing.T) {
	logger, hook := test.NewNullLogger()
	resolver := NewResolver(false, logger)

	deps, err := resolver.ForElectron("v12.0.0", true)
	require.NoError(t, err)
	assert.Equal(t, deps.Trash, deps.Requires[len(deps.Requires)-len(deps.Trash):])
	assert.Contains(t, deps.Requires, "(libuuid or libuuid1)")
	assert.Empty(t, hook.AllEntries())
}

func TestResolverFallbackWarns(t *testing.T) {
	logger, hook := test.NewNullLogger()
	resolver := NewResolver(false, logger)

	deps, err := resolver.ForElectron("12.0.0", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"trash-cli"}, deps.Trash)
	for _, r := range deps.Requires {
		assert.NotRegexp(t, multipleAlternatives, r)
	}

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "boolean dependencies")
}

func TestResolverStrict(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := NewResolver(true, logger)

	_, err := resolver.ForElectron("12.0.0", false)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrUnsupportedToolVersion))
	assert.Contains(t, err.Error(), "Please upgrade to RPM 4.13 or above")

	_, err = resolver.ForElectron("12.0.0", true)
	assert.NoError(t, err)
}

func TestResolverInvalidVersion(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := NewResolver(false, logger).ForElectron("not-a-version", true)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrParse))
}
