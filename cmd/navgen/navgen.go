package main

import (
	"io"
	"os"
	"strings"

	"github.com/mhmt/navgen/internal/config"
	"github.com/mhmt/navgen/internal/configpaths"
	"github.com/mhmt/navgen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("navgen"),
		kong.Description("Generate a type-safe Navigator for annotated Android screens"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, cli.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var plans log.PlanLogger
	if cli.Log.PlanFile != "" {
		f, err := os.OpenFile(cli.Log.PlanFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open plan log file", "file", cli.Log.PlanFile, "error", err)
			plans = log.NewPlanLogger(nil)
		} else {
			plans = log.NewPlanLogger(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		plans = log.NewPlanLogger(os.Stderr)
	} else {
		plans = log.NewPlanLogger(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(plans, (*log.PlanLogger)(nil))
	ctx.BindTo(os.Stdout, (*io.Writer)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("NAVGEN_CONFIG")
}
