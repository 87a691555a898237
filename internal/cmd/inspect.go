package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/umlconf/internal/codegen/loader"
	"github.com/Alia5/umlconf/internal/codegen/model"
)

// Inspect prints the loaded model without generating anything.
type Inspect struct {
	Input  string `arg:"" name:"input" help:"Class model XML file" type:"existingfile"`
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml" env:"UMLCONF_INSPECT_FORMAT"`

	out io.Writer `kong:"-"`
}

type aggregationView struct {
	Source             string `json:"source" yaml:"source" toml:"source"`
	Target             string `json:"target" yaml:"target" toml:"target"`
	SourceMultiplicity string `json:"sourceMultiplicity" yaml:"sourceMultiplicity" toml:"sourceMultiplicity"`
	TargetMultiplicity string `json:"targetMultiplicity" yaml:"targetMultiplicity" toml:"targetMultiplicity"`
	Min                string `json:"min" yaml:"min" toml:"min"`
	Max                string `json:"max" yaml:"max" toml:"max"`
}

type modelView struct {
	Root         string            `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty"`
	Entities     []model.Entity    `json:"entities" yaml:"entities" toml:"entities,omitempty"`
	Aggregations []aggregationView `json:"aggregations" yaml:"aggregations" toml:"aggregations,omitempty"`
	Unresolved   []string          `json:"unresolved,omitempty" yaml:"unresolved,omitempty" toml:"unresolved,omitempty"`
}

func newModelView(m *model.Model) modelView {
	v := modelView{
		Entities:     []model.Entity{},
		Aggregations: []aggregationView{},
	}
	for _, e := range m.Entities() {
		v.Entities = append(v.Entities, *e)
	}
	if root, err := m.Root(); err == nil {
		v.Root = root.Name
	}
	for _, r := range m.Relationships() {
		lower, upper := r.SourceMultiplicity.Bounds()
		v.Aggregations = append(v.Aggregations, aggregationView{
			Source:             r.Source,
			Target:             r.Target,
			SourceMultiplicity: string(r.SourceMultiplicity),
			TargetMultiplicity: string(r.TargetMultiplicity),
			Min:                lower,
			Max:                upper,
		})
	}
	for _, ref := range m.UnresolvedReferences() {
		v.Unresolved = append(v.Unresolved, ref.Error())
	}
	return v
}

// Run is called by Kong when the inspect command is executed.
func (i *Inspect) Run(logger *slog.Logger) error {
	m, stats, err := loader.LoadFile(i.Input)
	if err != nil {
		return err
	}
	logger.Debug("Loaded model", "classes", stats.Classes, "aggregations", stats.Aggregations, "ignored", len(stats.Ignored))

	if roots := m.Roots(); len(roots) != 1 {
		logger.Warn("Model has no single root entity", "roots", len(roots))
	}

	view := newModelView(m)

	var data []byte
	switch i.Format {
	case "json":
		data, err = json.MarshalIndent(view, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(view)
	case "toml":
		data, err = toml.Marshal(view)
	default:
		return fmt.Errorf("unsupported format: %s", i.Format)
	}
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	out := i.out
	if out == nil {
		out = os.Stdout
	}
	_, err = out.Write(data)
	return err
}
