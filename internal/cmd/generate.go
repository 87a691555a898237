package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Alia5/umlconf/internal/codegen/generator"
)

type Generate struct {
	Input             string `arg:"" name:"input" help:"Class model XML file" type:"existingfile"`
	Output            string `help:"Output directory for generated artifacts" default:"out" env:"UMLCONF_OUTPUT"`
	ConfigFile        string `help:"File name of the config artifact" default:"config.xml" env:"UMLCONF_CONFIG_FILE"`
	MetaFile          string `help:"File name of the metadata artifact" default:"meta.json" env:"UMLCONF_META_FILE"`
	ConfigFormat      string `help:"Config artifact format" default:"xml" enum:"xml,yaml,json" env:"UMLCONF_CONFIG_FORMAT"`
	MetaFormat        string `help:"Metadata artifact format" default:"json" enum:"json,yaml" env:"UMLCONF_META_FORMAT"`
	Indent            int    `help:"Indentation width of the config artifact (0 for compact)" default:"2" env:"UMLCONF_INDENT"`
	MetaIndent        int    `help:"Indentation width of the metadata artifact" default:"4" env:"UMLCONF_META_INDENT"`
	AggregationBounds bool   `help:"Keep per-aggregation bounds in metadata records" env:"UMLCONF_AGGREGATION_BOUNDS"`
}

func (g *Generate) options() generator.Options {
	return generator.Options{
		Input:             g.Input,
		OutputDir:         g.Output,
		ConfigFile:        g.ConfigFile,
		MetaFile:          g.MetaFile,
		ConfigFormat:      g.ConfigFormat,
		MetaFormat:        g.MetaFormat,
		Indent:            spaces(g.Indent),
		MetaIndent:        spaces(g.MetaIndent),
		AggregationBounds: g.AggregationBounds,
	}
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting artifact generation", "input", g.Input, "output", g.Output)

	res, err := generator.New(g.options(), logger).Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Artifact generation complete",
		"config", res.ConfigPath,
		"meta", res.MetaPath,
		"entities", res.Entities,
		"aggregations", res.Relationships,
		"unresolved", res.Unresolved)
	return nil
}

func spaces(n int) string {
	return strings.Repeat(" ", max(n, 0))
}
