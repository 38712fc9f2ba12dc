package cmd

import (
	"io"
	"log/slog"

	"github.com/mhmt/navgen/internal/codegen/generator"
	"github.com/mhmt/navgen/internal/log"
)

type Generate struct {
	Inputs `embed:""`
	DryRun bool `help:"Print the Navigator to stdout instead of writing it" env:"NAVGEN_DRY_RUN"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger, plans log.PlanLogger, out io.Writer) error {
	logger.Info("Starting navigator generation", "src", c.Src, "manifest", c.Manifest, "output", c.Output)

	gen := generator.New(c.Options(), logger, plans)
	if !c.DryRun {
		_, err := gen.Generate()
		return err
	}

	md, err := gen.ScanAll()
	if err != nil {
		return err
	}
	res, err := gen.Build(md)
	if err != nil {
		return err
	}
	logger.Debug("Dry run, not writing", "path", res.Path)
	_, err = out.Write(res.Content)
	return err
}
