// Package metadata flattens a model into one descriptive record per entity.
package metadata

import (
	"github.com/Alia5/umlconf/internal/codegen/model"
)

// ClassParameterType marks a parameter that stands for an aggregated class.
const ClassParameterType = "class"

// Parameter is one entry of a record's parameter list.
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// AggregationBounds are the bounds contributed by one incoming aggregation.
type AggregationBounds struct {
	Source string `json:"source" yaml:"source"`
	Min    string `json:"min" yaml:"min"`
	Max    string `json:"max" yaml:"max"`
}

// Record describes one entity. Min and Max are set only when the entity is
// the target of at least one aggregation.
type Record struct {
	Class         string              `json:"class" yaml:"class"`
	Documentation string              `json:"documentation" yaml:"documentation"`
	IsRoot        bool                `json:"isRoot" yaml:"isRoot"`
	Parameters    []Parameter         `json:"parameters" yaml:"parameters"`
	Min           *string             `json:"min,omitempty" yaml:"min,omitempty"`
	Max           *string             `json:"max,omitempty" yaml:"max,omitempty"`
	Aggregations  []AggregationBounds `json:"aggregations,omitempty" yaml:"aggregations,omitempty"`
}

// IsAggregationTarget reports whether the record carries bounds.
func (r *Record) IsAggregationTarget() bool {
	return r.Min != nil
}

type Options struct {
	// AggregationBounds keeps the bounds of every incoming aggregation in
	// Record.Aggregations. Min and Max always hold the last one.
	AggregationBounds bool
}

// Flatten returns one record per entity in model order. Each record lists
// the entity's own attributes followed by one class parameter per incoming
// aggregation; when an entity is aggregated several times the last
// aggregation's bounds win.
func Flatten(m *model.Model, opts Options) []Record {
	entities := m.Entities()
	records := make([]Record, 0, len(entities))
	for _, e := range entities {
		records = append(records, flattenEntity(m, e, opts))
	}
	return records
}

func flattenEntity(m *model.Model, e *model.Entity, opts Options) Record {
	rec := Record{
		Class:         e.Name,
		Documentation: e.Documentation,
		IsRoot:        e.IsRoot,
		Parameters:    make([]Parameter, 0, len(e.Attributes)),
	}
	for _, a := range e.Attributes {
		rec.Parameters = append(rec.Parameters, Parameter{Name: a.Name, Type: a.Type})
	}

	for _, rel := range m.IncomingTo(e.Name) {
		rec.Parameters = append(rec.Parameters, Parameter{Name: rel.Source, Type: ClassParameterType})
		lower, upper := rel.SourceMultiplicity.Bounds()
		rec.Min, rec.Max = &lower, &upper
		if opts.AggregationBounds {
			rec.Aggregations = append(rec.Aggregations, AggregationBounds{Source: rel.Source, Min: lower, Max: upper})
		}
	}
	return rec
}
