package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mhmt/navgen/internal/codegen/generator"
	"github.com/mhmt/navgen/internal/log"
)

// Check fails when the Navigator on disk differs from what generate would write.
type Check struct {
	Inputs `embed:""`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger, plans log.PlanLogger, out io.Writer) error {
	gen := generator.New(c.Options(), logger, plans)
	status, path, err := gen.Check()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s: %s\n", path, status)
	if status != generator.StatusUpToDate {
		return fmt.Errorf("%s is %s; run navgen generate", path, status)
	}
	return nil
}
