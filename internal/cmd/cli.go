package cmd

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/umlconf/internal/log"
)

// CLI is the root command tree parsed by kong.
type CLI struct {
	ConfigFile string           `name:"config" help:"Path to a JSON, YAML or TOML configuration file" type:"path" env:"UMLCONF_CONFIG"`
	Log        log.Config       `embed:"" prefix:"log."`
	Version    kong.VersionFlag `help:"Print version and exit"`

	Generate Generate      `cmd:"" default:"withargs" help:"Generate the config and metadata artifacts from a class model"`
	Inspect  Inspect       `cmd:"" help:"Print the loaded class model"`
	Config   ConfigCommand `cmd:"" help:"Configuration file helpers"`
}
