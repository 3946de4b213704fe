package models

import (
	"encoding/json"
	"regexp"
	"strings"
)

// authorURLPattern matches the "(url)" part of "Name <email> (url)"
var authorURLPattern = regexp.MustCompile(`\(([^)]+)\)\s*$`)

// PackageMetadata is the subset of an application's package.json used for
// packaging
type PackageMetadata struct {
	Name               string `json:"name"`
	ProductName        string `json:"productName"`
	GenericName        string `json:"genericName"`
	Description        string `json:"description"`
	ProductDescription string `json:"productDescription"`
	Version            string `json:"version"`
	Revision           string `json:"revision"`
	License            string `json:"license"`
	Homepage           string `json:"homepage"`
	Author             Author `json:"author"`
}

// Author is the package.json author field, which is either a string of the
// form "Name <email> (url)" or an object.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url"`
}

// UnmarshalJSON accepts both author notations
func (a *Author) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Name = strings.TrimSpace(s)
		if loc := authorURLPattern.FindStringSubmatchIndex(s); loc != nil {
			a.URL = strings.TrimSpace(s[loc[2]:loc[3]])
			a.Name = strings.TrimSpace(s[:loc[0]])
		}
		if i := strings.Index(a.Name, "<"); i >= 0 {
			if j := strings.Index(a.Name[i:], ">"); j >= 0 {
				a.Email = a.Name[i+1 : i+j]
				a.Name = strings.TrimSpace(a.Name[:i])
			}
		}
		return nil
	}

	type plain Author
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Author(p)
	return nil
}

// HomepageURL returns the homepage, falling back to the author URL
func (m *PackageMetadata) HomepageURL() string {
	if m.Homepage != "" {
		return m.Homepage
	}
	return m.Author.URL
}

// Options converts the detected metadata into a configuration layer. Derived
// names fall back the same way the application's own fields do.
func (m *PackageMetadata) Options() Options {
	var o Options
	if m == nil {
		return o
	}

	o.Name = nonEmpty(m.Name)
	o.ProductName = nonEmpty(firstNonEmpty(m.ProductName, m.Name))
	o.GenericName = nonEmpty(firstNonEmpty(m.GenericName, m.ProductName, m.Name))
	o.Description = nonEmpty(m.Description)
	o.ProductDescription = nonEmpty(firstNonEmpty(m.ProductDescription, m.Description))
	o.Version = nonEmpty(m.Version)
	o.Revision = nonEmpty(m.Revision)
	o.License = nonEmpty(m.License)
	o.Homepage = nonEmpty(m.HomepageURL())
	o.Bin = nonEmpty(m.Name)
	return o
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
