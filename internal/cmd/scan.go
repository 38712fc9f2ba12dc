package cmd

import (
	"io"
	"log/slog"

	"github.com/mhmt/navgen/internal/codegen/generator"
)

// Scan prints the scanned declarations and their read-back plans.
type Scan struct {
	Inputs `embed:""`
	Format string `help:"Report format" enum:"json,yaml,toml" default:"yaml" env:"NAVGEN_SCAN_FORMAT"`
}

// Run is called by Kong when the scan command is executed.
func (c *Scan) Run(logger *slog.Logger, out io.Writer) error {
	gen := generator.New(c.Options(), logger, nil)
	md, err := gen.ScanAll()
	if err != nil {
		return err
	}
	return generator.WriteReport(out, gen.Report(md), c.Format)
}
