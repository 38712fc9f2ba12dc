// Package config holds the command-line surface of navgen.
package config

import "github.com/mhmt/navgen/internal/cmd"

// CLI is the root kong model. Config files supply defaults for any flag;
// explicit flags and environment variables override them.
type CLI struct {
	Config string `help:"Path to a configuration file (json, yaml or toml)" env:"NAVGEN_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" help:"Generate the Navigator class"`
	Check    cmd.Check         `cmd:"" help:"Verify the generated Navigator is up to date"`
	Scan     cmd.Scan          `cmd:"" help:"Print scanned navigation fields and their read-back plans"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

type Log struct {
	Level    string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"NAVGEN_LOG_LEVEL"`
	File     string `help:"Write logs to this file as well" env:"NAVGEN_LOG_FILE"`
	Format   string `help:"Log format; auto uses text on a terminal and json otherwise" enum:"auto,text,json" default:"auto" env:"NAVGEN_LOG_FORMAT"`
	PlanFile string `help:"Write one line per bound field with its category and accessor" env:"NAVGEN_LOG_PLAN_FILE"`
}
