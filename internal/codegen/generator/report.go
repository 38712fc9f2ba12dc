package generator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/mhmt/navgen/internal/codegen/javatype"
	"github.com/mhmt/navgen/internal/codegen/meta"
	"github.com/mhmt/navgen/internal/codegen/resolver"
)

// Report describes what a scan found and how each field would be read back.
type Report struct {
	Package string        `json:"package" yaml:"package" toml:"package"`
	Output  string        `json:"output" yaml:"output" toml:"output"`
	Classes []ClassReport `json:"classes" yaml:"classes" toml:"classes"`
}

type ClassReport struct {
	Name     string        `json:"name" yaml:"name" toml:"name"`
	Launcher string        `json:"launcher" yaml:"launcher" toml:"launcher"`
	Fields   []FieldReport `json:"fields" yaml:"fields" toml:"fields"`
}

type FieldReport struct {
	Name      string   `json:"name" yaml:"name" toml:"name"`
	Type      string   `json:"type" yaml:"type" toml:"type"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty" toml:"modifiers,omitempty"`
	Bind      bool     `json:"bind" yaml:"bind" toml:"bind"`
	Category  string   `json:"category" yaml:"category" toml:"category"`
	Accessor  string   `json:"accessor,omitempty" yaml:"accessor,omitempty" toml:"accessor,omitempty"`
	Position  string   `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
}

// Report classifies every scanned field without validating or emitting.
func (g *Generator) Report(md *meta.Metadata) *Report {
	pkg := g.Package(md)
	r := &Report{Package: pkg, Output: g.OutputPath(pkg)}

	positions := make(map[string]string, len(md.Declarations))
	for _, d := range md.Declarations {
		positions[d.Class+"#"+d.Field.Name] = d.Pos.String()
	}

	for _, group := range md.Groups() {
		cr := ClassReport{Name: group.Class.Name, Launcher: "start" + group.SimpleName()}
		for _, f := range group.Fields {
			d := javatype.Classify(f.Type, md.Universe)
			fr := FieldReport{
				Name:     f.Name,
				Type:     f.Type.String(),
				Bind:     f.Bind,
				Category: d.Category.String(),
				Position: positions[group.Class.Name+"#"+f.Name],
			}
			for _, m := range f.Modifiers {
				fr.Modifiers = append(fr.Modifiers, string(m))
			}
			if plan, err := resolver.Resolve(d); err == nil {
				fr.Accessor = plan.Accessor()
			}
			cr.Fields = append(cr.Fields, fr)
		}
		r.Classes = append(r.Classes, cr)
	}
	return r
}

// WriteReport encodes r to w as json, yaml or toml.
func WriteReport(w io.Writer, r *Report, format string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case "json":
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	case "yaml", "yml":
		data, err = yaml.Marshal(r)
	case "toml":
		data, err = toml.Marshal(*r)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = w.Write(data)
	return err
}
