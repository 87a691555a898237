package configtree

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	yaml "gopkg.in/yaml.v3"
)

// Encoder serializes a config tree. indent is the per-level indentation.
type Encoder func(w io.Writer, root *Node, indent string) error

var encoders = map[string]Encoder{
	"xml":  EncodeXML,
	"yaml": EncodeYAML,
	"json": EncodeJSON,
}

// Formats returns the supported output formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(encoders))
	for k := range encoders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Encode writes root to w in the named format.
func Encode(w io.Writer, format string, root *Node, indent string) error {
	enc, ok := encoders[format]
	if !ok {
		return fmt.Errorf("unsupported config format '%s' (supported: %v)", format, Formats())
	}
	return enc(w, root, indent)
}

// EncodeXML writes root as an XML document with a declaration. Leaves become
// elements whose text is the attribute type.
func EncodeXML(w io.Writer, root *Node, indent string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", indent)
	if err := encodeXMLNode(enc, root); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeXMLNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.leaf {
		if n.Value != "" {
			if err := enc.EncodeToken(xml.CharData(n.Value)); err != nil {
				return err
			}
		}
	} else {
		for _, c := range n.Children {
			if err := encodeXMLNode(enc, c); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(start.End())
}

// MarshalYAML renders leaves as string scalars and containers as ordered mappings.
func (n *Node) MarshalYAML() (any, error) {
	return n.yamlValue(), nil
}

func (n *Node) yamlValue() *yaml.Node {
	if n.leaf {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Value}
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, c := range n.Children {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
			c.yamlValue(),
		)
	}
	return m
}

// EncodeYAML writes root as a single-key YAML mapping.
func EncodeYAML(w io.Writer, root *Node, indent string) error {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: root.Name},
		root.yamlValue(),
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(max(len(indent), 2))
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// MarshalJSON renders leaves as strings and containers as objects whose keys
// keep child order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.leaf {
		return json.Marshal(n.Value)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range n.Children {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := c.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeJSON writes root as a single-key JSON object.
func EncodeJSON(w io.Writer, root *Node, indent string) error {
	body, err := Container("", root).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	var out bytes.Buffer
	if indent == "" {
		out.Write(body)
	} else if err := json.Indent(&out, body, "", indent); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	out.WriteByte('\n')
	_, err = w.Write(out.Bytes())
	return err
}
