package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ralt/rpmbundle/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadFile reads caller options from a YAML or TOML file. The format is
// chosen by extension; anything other than .toml is parsed as YAML. Options
// may be written at the top level, under an "options" key, or both.
func LoadFile(path string) (*models.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.Wrap(models.ErrFileRead, "reading options file", err)
	}

	input := &models.Input{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(input)
		if err != nil {
			return nil, models.Wrap(models.ErrParse, "reading options file", fmt.Errorf("%s: %w", path, err))
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return nil, models.Wrap(models.ErrParse, "reading options file",
				fmt.Errorf("%s: unknown fields %s", path, strings.Join(keys, ", ")))
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(input); err != nil && !errors.Is(err, io.EOF) {
			return nil, models.Wrap(models.ErrParse, "reading options file", fmt.Errorf("%s: %w", path, err))
		}
	}

	// Relative paths in the file are relative to the file itself
	base := filepath.Dir(path)
	input.Src = resolvePath(base, input.Src)
	input.Dest = resolvePath(base, input.Dest)
	resolveOptionPaths(base, &input.Options)
	if input.Nested != nil {
		resolveOptionPaths(base, input.Nested)
	}

	return input, nil
}

func resolveOptionPaths(base string, o *models.Options) {
	if o.Icon != nil {
		icon := *o.Icon
		icon.Path = resolvePath(base, icon.Path)
		if icon.Resolutions != nil {
			resolutions := make(map[string]string, len(icon.Resolutions))
			for res, p := range icon.Resolutions {
				resolutions[res] = resolvePath(base, p)
			}
			icon.Resolutions = resolutions
		}
		o.Icon = &icon
	}
	for hook, p := range o.Scripts {
		o.Scripts[hook] = resolvePath(base, p)
	}
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
