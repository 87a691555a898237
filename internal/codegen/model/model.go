// Package model holds the in-memory class model shared by all generators:
// entities keyed by name in declaration order, and the aggregation list.
package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attribute is a single (name, type) pair of an entity. Types are opaque.
type Attribute struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

// Entity is one modeled class.
type Entity struct {
	Name          string      `json:"name" yaml:"name" toml:"name"`
	IsRoot        bool        `json:"isRoot" yaml:"isRoot" toml:"isRoot"`
	Documentation string      `json:"documentation" yaml:"documentation" toml:"documentation"`
	Attributes    []Attribute `json:"attributes" yaml:"attributes" toml:"attributes"`
}

// Relationship is a directed aggregation: Target has SourceMultiplicity Sources.
type Relationship struct {
	Source             string       `json:"source" yaml:"source" toml:"source"`
	Target             string       `json:"target" yaml:"target" toml:"target"`
	SourceMultiplicity Multiplicity `json:"sourceMultiplicity" yaml:"sourceMultiplicity" toml:"sourceMultiplicity"`
	TargetMultiplicity Multiplicity `json:"targetMultiplicity" yaml:"targetMultiplicity" toml:"targetMultiplicity"`
}

// Model is the index all generation logic queries. It is populated once by
// the loader and only read afterwards.
type Model struct {
	entities      *orderedmap.OrderedMap[string, *Entity]
	relationships []Relationship
}

func New() *Model {
	return &Model{
		entities: orderedmap.New[string, *Entity](),
	}
}

// AddEntity records e under its name. A repeated name replaces the earlier
// definition but keeps the earlier position.
func (m *Model) AddEntity(e *Entity) {
	m.entities.Set(e.Name, e)
}

// AddRelationship appends r in declaration order.
func (m *Model) AddRelationship(r Relationship) {
	m.relationships = append(m.relationships, r)
}

// Entity looks up an entity by name.
func (m *Model) Entity(name string) (*Entity, bool) {
	return m.entities.Get(name)
}

// Entities returns all entities in insertion order.
func (m *Model) Entities() []*Entity {
	out := make([]*Entity, 0, m.entities.Len())
	for pair := m.entities.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Relationships returns all relationships in declaration order.
func (m *Model) Relationships() []Relationship {
	out := make([]Relationship, len(m.relationships))
	copy(out, m.relationships)
	return out
}

func (m *Model) Len() int {
	return m.entities.Len()
}

// Roots returns every entity flagged as root, in insertion order.
func (m *Model) Roots() []*Entity {
	var roots []*Entity
	for pair := m.entities.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.IsRoot {
			roots = append(roots, pair.Value)
		}
	}
	return roots
}

// Root returns the single root entity. It fails with ErrNoRootEntity when
// none is flagged and with a *MultipleRootsError when several are.
func (m *Model) Root() (*Entity, error) {
	roots := m.Roots()
	switch len(roots) {
	case 0:
		return nil, ErrNoRootEntity
	case 1:
		return roots[0], nil
	default:
		names := make([]string, len(roots))
		for i, r := range roots {
			names[i] = r.Name
		}
		return nil, &MultipleRootsError{Names: names}
	}
}

// IncomingTo returns the relationships whose target is name, in declaration order.
func (m *Model) IncomingTo(name string) []Relationship {
	var out []Relationship
	for _, r := range m.relationships {
		if r.Target == name {
			out = append(out, r)
		}
	}
	return out
}

// UnresolvedReferences lists every relationship endpoint that does not name
// a known entity.
func (m *Model) UnresolvedReferences() []*UnresolvedReferenceError {
	var out []*UnresolvedReferenceError
	for _, r := range m.relationships {
		if _, ok := m.entities.Get(r.Source); !ok {
			out = append(out, &UnresolvedReferenceError{Role: RoleSource, Name: r.Source, Source: r.Source, Target: r.Target})
		}
		if _, ok := m.entities.Get(r.Target); !ok {
			out = append(out, &UnresolvedReferenceError{Role: RoleTarget, Name: r.Target, Source: r.Source, Target: r.Target})
		}
	}
	return out
}
