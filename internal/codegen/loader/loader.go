// Package loader reads a class model from its XML representation.
//
// The document element is a container whose direct children are either
// Class or Aggregation declarations:
//
//	<Model>
//	  <Class name="BTS" isRoot="true" documentation="Base station">
//	    <Attribute name="frequency" type="int"/>
//	  </Class>
//	  <Aggregation source="Antenna" target="BTS" sourceMultiplicity="1..10" targetMultiplicity="1"/>
//	</Model>
//
// Any other element is skipped.
package loader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/Alia5/umlconf/internal/codegen/model"
)

const (
	tagClass       = "Class"
	tagAttribute   = "Attribute"
	tagAggregation = "Aggregation"
)

// Stats counts what the loader saw at the top level of the document.
type Stats struct {
	Classes      int
	Aggregations int
	Ignored      []string // tags of skipped top-level elements
}

// element is a generic XML element; only attributes and child elements matter.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
}

func (e *element) attr(name, def string) string {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return def
}

func (e *element) lookupAttr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *element) is(tag string) bool {
	return e.XMLName.Space == "" && e.XMLName.Local == tag
}

// LoadFile opens path and loads the model it contains.
func LoadFile(path string) (*model.Model, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open model %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses r into a model index. Class and Aggregation attributes are
// taken verbatim; multiplicities are not interpreted here.
func Load(r io.Reader) (*model.Model, Stats, error) {
	var stats Stats

	root, err := decodeDocument(r)
	if err != nil {
		return nil, stats, err
	}

	m := model.New()
	for i := range root.Children {
		el := &root.Children[i]
		switch {
		case el.is(tagClass):
			name, ok := el.lookupAttr("name")
			if !ok {
				return nil, stats, &model.MissingNameError{Index: stats.Classes}
			}
			m.AddEntity(&model.Entity{
				Name:          name,
				IsRoot:        el.attr("isRoot", "false") == "true",
				Documentation: el.attr("documentation", ""),
				Attributes:    collectAttributes(el),
			})
			stats.Classes++
		case el.is(tagAggregation):
			m.AddRelationship(model.Relationship{
				Source:             el.attr("source", ""),
				Target:             el.attr("target", ""),
				SourceMultiplicity: model.Multiplicity(el.attr("sourceMultiplicity", "")),
				TargetMultiplicity: model.Multiplicity(el.attr("targetMultiplicity", "")),
			})
			stats.Aggregations++
		default:
			stats.Ignored = append(stats.Ignored, el.XMLName.Local)
		}
	}
	return m, stats, nil
}

func collectAttributes(class *element) []model.Attribute {
	attrs := []model.Attribute{}
	for i := range class.Children {
		child := &class.Children[i]
		if !child.is(tagAttribute) {
			continue
		}
		attrs = append(attrs, model.Attribute{
			Name: child.attr("name", ""),
			Type: child.attr("type", ""),
		})
	}
	return attrs
}

// decodeDocument decodes the single document element and rejects anything
// but whitespace, comments and processing instructions after it. Documents
// declaring a non-UTF-8 encoding are transcoded while decoding.
func decodeDocument(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root element
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &model.MalformedInputError{Message: "document has no root element"}
		}
		return nil, &model.MalformedInputError{Cause: err}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return &root, nil
		}
		if err != nil {
			return nil, &model.MalformedInputError{Cause: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil, &model.MalformedInputError{Message: fmt.Sprintf("unexpected element <%s> after document element", t.Name.Local)}
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, &model.MalformedInputError{Message: "unexpected text after document element"}
			}
		}
	}
}
