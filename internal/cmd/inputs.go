package cmd

import (
	"github.com/mhmt/navgen/internal/codegen/generator"
)

// Inputs are the flags shared by every command that scans declarations.
type Inputs struct {
	Src              []string `help:"Java source roots to scan" env:"NAVGEN_SRC"`
	Manifest         []string `help:"Declaration manifests (.yaml, .toml or .json)" env:"NAVGEN_MANIFEST"`
	Annotation       string   `help:"Simple or qualified name of the marker annotation" default:"Required" env:"NAVGEN_ANNOTATION"`
	BindDefault      bool     `help:"Bind fields whose annotation does not set bind" env:"NAVGEN_BIND_DEFAULT"`
	Package          string   `help:"Package of the generated Navigator; defaults to the manifest package or com.mhmt.navigationprocessor.generated" env:"NAVGEN_PACKAGE"`
	Output           string   `help:"Root directory for generated sources" default:"./generated" env:"NAVGEN_OUTPUT"`
	AllowUnsupported bool     `help:"Warn about fields whose type cannot be carried as an extra instead of failing" env:"NAVGEN_ALLOW_UNSUPPORTED"`
}

// Options converts the flags into generator options.
func (in Inputs) Options() generator.Options {
	return generator.Options{
		Sources:          in.Src,
		Manifests:        in.Manifest,
		OutputDir:        in.Output,
		Package:          in.Package,
		Annotation:       in.Annotation,
		BindDefault:      in.BindDefault,
		AllowUnsupported: in.AllowUnsupported,
	}
}
