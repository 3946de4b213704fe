package dependencies

// Capability is an abstract runtime need of an Electron application
type Capability string

const (
	ATSPI       Capability = "atspi"
	DRM         Capability = "drm"
	GBM         Capability = "gbm"
	GConf       Capability = "gconf"
	Glib2       Capability = "glib2"
	GTK2        Capability = "gtk2"
	GTK3        Capability = "gtk3"
	GVFS        Capability = "gvfs"
	KDECliTools Capability = "kdeCliTools"
	KDERuntime  Capability = "kdeRuntime"
	Notify      Capability = "notify"
	NSS         Capability = "nss"
	TrashCLI    Capability = "trashCli"
	UUID        Capability = "uuid"
	XcbDri3     Capability = "xcbDri3"
	XDGUtils    Capability = "xdgUtils"
	XSS         Capability = "xss"
	XTST        Capability = "xtst"
)

// Map lists, for each capability, the package names that satisfy it on the
// RPM-based distributions. The first name is the Fedora one.
type Map map[Capability][]string

// DefaultMap is the capability mapping for RPM-based distributions
var DefaultMap = Map{
	ATSPI:       {"at-spi2-core"},
	DRM:         {"libdrm"},
	GBM:         {"mesa-libgbm", "libgbm1"},
	GConf:       {"GConf2"},
	Glib2:       {"glib2"},
	GTK2:        {"gtk2"},
	GTK3:        {"gtk3"},
	GVFS:        {"gvfs-client"},
	KDECliTools: {"kde-cli-tools", "kde-cli-tools5"},
	KDERuntime:  {"kde-runtime"},
	Notify:      {"libnotify", "libnotify4"},
	NSS:         {"nss", "mozilla-nss"},
	TrashCLI:    {"trash-cli"},
	UUID:        {"libuuid", "libuuid1"},
	XcbDri3:     {"libxcb", "libxcb1"},
	XDGUtils:    {"xdg-utils"},
	XSS:         {"libXScrnSaver"},
	XTST:        {"libXtst", "libXtst6"},
}

// Alternatives returns the package names for the given capabilities,
// flattened in order
func (m Map) Alternatives(capabilities ...Capability) []string {
	var names []string
	for _, c := range capabilities {
		names = append(names, m[c]...)
	}
	return names
}
