package testing

import (
	"strings"
	"testing"

	"github.com/Alia5/umlconf/internal/codegen/loader"
	"github.com/Alia5/umlconf/internal/codegen/model"
)

// BTSModelXML is a base station model: BTS is the root and aggregates Antenna.
const BTSModelXML = `<?xml version="1.0" encoding="utf-8"?>
<Model>
  <Class name="BTS" isRoot="true" documentation="Base transceiver station">
    <Attribute name="frequency" type="int"/>
    <Attribute name="id" type="string"/>
  </Class>
  <Class name="Antenna">
    <Attribute name="height" type="float"/>
  </Class>
  <Aggregation source="Antenna" target="BTS" sourceMultiplicity="1..10" targetMultiplicity="1"/>
</Model>
`

// LoadModel parses doc and fails the test on any error.
func LoadModel(t *testing.T, doc string) *model.Model {
	t.Helper()
	m, _, err := loader.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load model failed: %v", err)
	}
	return m
}

// NewModel builds a model directly from entities and relationships.
func NewModel(entities []*model.Entity, relationships ...model.Relationship) *model.Model {
	m := model.New()
	for _, e := range entities {
		m.AddEntity(e)
	}
	for _, r := range relationships {
		m.AddRelationship(r)
	}
	return m
}
