package models

import (
	"github.com/sirupsen/logrus"
)

// Configuration is the fully resolved set of options for one packaging run.
// It is built once by the options resolver and read-only afterwards.
type Configuration struct {
	// Input/Output
	Src  string `json:"src"`
	Dest string `json:"dest"`

	// Identity
	Name        string `json:"name"`
	ProductName string `json:"productName"`
	GenericName string `json:"genericName"`
	Version     string `json:"version"`
	Revision    string `json:"revision"`

	// Descriptive
	Description        string `json:"description"`
	ProductDescription string `json:"productDescription"`
	License            string `json:"license"`
	Homepage           string `json:"homepage"`

	// Packaging
	Arch             string   `json:"arch"`
	OS               string   `json:"os,omitempty"`
	Group            string   `json:"group,omitempty"`
	Categories       []string `json:"categories"`
	MimeType         []string `json:"mimeType"`
	Icon             Icon     `json:"icon"`
	Bin              string   `json:"bin"`
	ExecArguments    []string `json:"execArguments"`
	CompressionLevel int      `json:"compressionLevel"`

	// Requires holds bare package names and "(a or b)" groups
	Requires []string `json:"requires"`

	// Lifecycle script bodies
	Pre    string `json:"pre,omitempty"`
	Post   string `json:"post,omitempty"`
	Preun  string `json:"preun,omitempty"`
	Postun string `json:"postun,omitempty"`

	Logger logrus.FieldLogger `json:"-"`
	Rename RenameFunc         `json:"-"`
}

// ApplyOptions copies every field set in o into the configuration
func (c *Configuration) ApplyOptions(o Options) {
	c.Name = deref(o.Name)
	c.ProductName = deref(o.ProductName)
	c.GenericName = deref(o.GenericName)
	c.Description = deref(o.Description)
	c.ProductDescription = deref(o.ProductDescription)
	c.Version = deref(o.Version)
	c.Revision = deref(o.Revision)
	c.License = deref(o.License)
	c.Homepage = deref(o.Homepage)
	c.Group = deref(o.Group)
	c.Arch = deref(o.Arch)
	c.OS = deref(o.OS)
	c.Bin = deref(o.Bin)
	c.ExecArguments = o.ExecArguments
	if o.Icon != nil {
		c.Icon = *o.Icon
	}
	c.Categories = o.Categories
	c.MimeType = o.MimeType
	c.Requires = o.Requires
	if o.CompressionLevel != nil {
		c.CompressionLevel = *o.CompressionLevel
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
