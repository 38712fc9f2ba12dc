package scanner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/mhmt/navgen/internal/codegen/javatype"
	"github.com/mhmt/navgen/internal/codegen/meta"
)

// Manifest declares navigation fields without Java sources. It also teaches
// the type universe about application types so capability checks can see
// their supertypes.
type Manifest struct {
	Package string          `yaml:"package,omitempty" toml:"package,omitempty" json:"package,omitempty"`
	Types   []ManifestType  `yaml:"types,omitempty" toml:"types,omitempty" json:"types,omitempty"`
	Classes []ManifestClass `yaml:"classes" toml:"classes" json:"classes"`

	path string
}

// ManifestType is an application type and its direct supertypes.
type ManifestType struct {
	Name       string   `yaml:"name" toml:"name" json:"name"`
	Supertypes []string `yaml:"supertypes,omitempty" toml:"supertypes,omitempty" json:"supertypes,omitempty"`
}

// ManifestClass is an owning class and its annotated fields in declaration order.
type ManifestClass struct {
	Name   string          `yaml:"name" toml:"name" json:"name"`
	Fields []ManifestField `yaml:"fields" toml:"fields" json:"fields"`
}

type ManifestField struct {
	Name      string   `yaml:"name" toml:"name" json:"name"`
	Type      string   `yaml:"type" toml:"type" json:"type"`
	Modifiers []string `yaml:"modifiers,omitempty" toml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Bind      *bool    `yaml:"bind,omitempty" toml:"bind,omitempty" json:"bind,omitempty"`
}

// LoadManifest reads a manifest, choosing the decoder from the file extension.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	m.path = path
	return m, nil
}

// ParseManifest decodes a manifest in the format named by ext
// (".yaml", ".yml", ".toml" or ".json").
func ParseManifest(data []byte, ext string) (*Manifest, error) {
	m := &Manifest{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, m); err != nil {
			return nil, err
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}
	return m, nil
}

// Apply declares the manifest types in u and returns its fields as
// declarations. Fields without an explicit bind use bindDefault. All problems
// are reported together.
func (m *Manifest) Apply(u *javatype.StaticUniverse, bindDefault bool) ([]meta.Declaration, error) {
	var errs []error

	for i, t := range m.Types {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("types[%d]: missing name", i))
			continue
		}
		u.Declare(t.Name, t.Supertypes...)
	}

	var decls []meta.Declaration
	for ci, c := range m.Classes {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("classes[%d]: missing name", ci))
			continue
		}
		if _, err := javatype.Parse(c.Name); err != nil {
			errs = append(errs, fmt.Errorf("classes[%d]: %w", ci, err))
			continue
		}
		u.Declare(c.Name)

		for fi, f := range c.Fields {
			where := fmt.Sprintf("classes[%d].fields[%d]", ci, fi)
			if f.Name == "" {
				errs = append(errs, fmt.Errorf("%s: missing name", where))
				continue
			}
			t, err := javatype.Parse(f.Type)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s (%s): %w", where, f.Name, err))
				continue
			}
			t = t.MapNames(qualifyJavaLang)
			mods, err := parseModifiers(f.Modifiers)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s (%s): %w", where, f.Name, err))
				continue
			}
			bind := bindDefault
			if f.Bind != nil {
				bind = *f.Bind
			}
			decls = append(decls, meta.Declaration{
				Class: c.Name,
				Field: meta.FieldDescriptor{
					Name:      f.Name,
					Type:      t,
					Modifiers: mods,
					Bind:      bind,
				},
				Pos: meta.Position{File: m.path},
			})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return decls, nil
}

// qualifyJavaLang resolves a bare java.lang simple name the way a Java
// compilation unit would see it implicitly imported.
func qualifyJavaLang(name string) string {
	if javatype.IsJavaLang(name) {
		return "java.lang." + name
	}
	return name
}

func parseModifiers(raw []string) ([]meta.Modifier, error) {
	mods := make([]meta.Modifier, 0, len(raw))
	for _, r := range raw {
		switch m := meta.Modifier(strings.ToLower(strings.TrimSpace(r))); m {
		case meta.ModPublic, meta.ModProtected, meta.ModPrivate, meta.ModStatic, meta.ModFinal:
			mods = append(mods, m)
		default:
			return nil, fmt.Errorf("unknown modifier %q", r)
		}
	}
	return mods, nil
}
