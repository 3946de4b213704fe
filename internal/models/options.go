package models

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Options is one sparse layer of packaging configuration. A nil pointer or
// nil slice means the layer does not set that field.
type Options struct {
	Name               *string           `yaml:"name" toml:"name"`
	ProductName        *string           `yaml:"productName" toml:"productName"`
	GenericName        *string           `yaml:"genericName" toml:"genericName"`
	Description        *string           `yaml:"description" toml:"description"`
	ProductDescription *string           `yaml:"productDescription" toml:"productDescription"`
	Version            *string           `yaml:"version" toml:"version"`
	Revision           *string           `yaml:"revision" toml:"revision"`
	License            *string           `yaml:"license" toml:"license"`
	Homepage           *string           `yaml:"homepage" toml:"homepage"`
	Group              *string           `yaml:"group" toml:"group"`
	Arch               *string           `yaml:"arch" toml:"arch"`
	OS                 *string           `yaml:"os" toml:"os"`
	Bin                *string           `yaml:"bin" toml:"bin"`
	ExecArguments      []string          `yaml:"execArguments" toml:"execArguments"`
	Icon               *Icon             `yaml:"icon" toml:"icon"`
	Categories         []string          `yaml:"categories" toml:"categories"`
	MimeType           []string          `yaml:"mimeType" toml:"mimeType"`
	Requires           []string          `yaml:"requires" toml:"requires"`
	CompressionLevel   *int              `yaml:"compressionLevel" toml:"compressionLevel"`
	Scripts            map[string]string `yaml:"scripts" toml:"scripts"`
}

// Override returns a copy of o where every field set in top replaces the
// value of o. Requires is the exception: both lists are unioned.
func (o Options) Override(top Options) Options {
	out := o

	overrideString(&out.Name, top.Name)
	overrideString(&out.ProductName, top.ProductName)
	overrideString(&out.GenericName, top.GenericName)
	overrideString(&out.Description, top.Description)
	overrideString(&out.ProductDescription, top.ProductDescription)
	overrideString(&out.Version, top.Version)
	overrideString(&out.Revision, top.Revision)
	overrideString(&out.License, top.License)
	overrideString(&out.Homepage, top.Homepage)
	overrideString(&out.Group, top.Group)
	overrideString(&out.Arch, top.Arch)
	overrideString(&out.OS, top.OS)
	overrideString(&out.Bin, top.Bin)

	if top.ExecArguments != nil {
		out.ExecArguments = top.ExecArguments
	}
	if top.Icon != nil {
		out.Icon = top.Icon
	}
	if top.Categories != nil {
		out.Categories = top.Categories
	}
	if top.MimeType != nil {
		out.MimeType = top.MimeType
	}
	if top.CompressionLevel != nil {
		out.CompressionLevel = top.CompressionLevel
	}

	if o.Requires != nil || top.Requires != nil {
		out.Requires = Union(o.Requires, top.Requires)
	}

	if top.Scripts != nil {
		scripts := make(map[string]string, len(o.Scripts)+len(top.Scripts))
		for hook, path := range o.Scripts {
			scripts[hook] = path
		}
		for hook, path := range top.Scripts {
			scripts[hook] = path
		}
		out.Scripts = scripts
	}

	return out
}

func overrideString(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

// Union returns the distinct entries of all lists in order of first appearance
func Union(lists ...[]string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, list := range lists {
		for _, entry := range list {
			if seen[entry] {
				continue
			}
			seen[entry] = true
			result = append(result, entry)
		}
	}
	return result
}

// String returns a pointer to s, for building Options literals
func String(s string) *string {
	return &s
}

// Int returns a pointer to i, for building Options literals
func Int(i int) *int {
	return &i
}

// Icon is either a single image file or a set of image files keyed by
// resolution ("256x256", "scalable", "symbolic").
type Icon struct {
	Path        string
	Resolutions map[string]string
}

// IsSet reports whether any icon file was configured
func (i Icon) IsSet() bool {
	return i.Path != "" || len(i.Resolutions) > 0
}

// IsHicolor reports whether the icon is a resolution-keyed set
func (i Icon) IsHicolor() bool {
	return len(i.Resolutions) > 0
}

// SortedResolutions returns the resolution labels in a stable order
func (i Icon) SortedResolutions() []string {
	keys := make([]string, 0, len(i.Resolutions))
	for k := range i.Resolutions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalYAML accepts either a scalar path or a mapping of resolutions
func (i *Icon) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		i.Path = value.Value
		return nil
	case yaml.MappingNode:
		return value.Decode(&i.Resolutions)
	default:
		return fmt.Errorf("icon must be a path or a mapping of resolutions to paths")
	}
}

// UnmarshalTOML accepts either a string path or a table of resolutions
func (i *Icon) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case string:
		i.Path = v
		return nil
	case map[string]interface{}:
		i.Resolutions = make(map[string]string, len(v))
		for res, path := range v {
			s, ok := path.(string)
			if !ok {
				return fmt.Errorf("icon %q must be a path", res)
			}
			i.Resolutions[res] = s
		}
		return nil
	default:
		return fmt.Errorf("icon must be a path or a table of resolutions to paths")
	}
}

// RenameFunc maps the destination directory and the name of a built package
// file to its final path. The result may contain template actions that are
// expanded against the Configuration.
type RenameFunc func(dest, file string) string

// Input is everything a caller supplies to a packaging run. The flat Options
// and the nested Options block follow the same precedence rules; a field set
// in the flat block wins over the nested one.
type Input struct {
	Src     string `yaml:"src" toml:"src"`
	Dest    string `yaml:"dest" toml:"dest"`
	Options `yaml:",inline"`
	Nested  *Options `yaml:"options" toml:"options"`

	// StrictDependencies turns a missing boolean dependency support in
	// rpmbuild into an error instead of a warning.
	StrictDependencies bool `yaml:"strictDependencies" toml:"strictDependencies"`

	Logger logrus.FieldLogger `yaml:"-" toml:"-"`
	Rename RenameFunc         `yaml:"-" toml:"-"`
}

// UserOptions collapses the nested and flat option blocks into one layer
func (in *Input) UserOptions() Options {
	if in.Nested == nil {
		return in.Options
	}
	return in.Nested.Override(in.Options)
}
