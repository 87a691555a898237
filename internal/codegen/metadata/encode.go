package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	yaml "gopkg.in/yaml.v3"
)

// Encoder serializes the record list. indent is the per-level indentation.
type Encoder func(w io.Writer, records []Record, indent string) error

var encoders = map[string]Encoder{
	"json": EncodeJSON,
	"yaml": EncodeYAML,
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

// Encode writes records to w in the named format.
func Encode(w io.Writer, format string, records []Record, indent string) error {
	enc, ok := encoders[format]
	if !ok {
		return fmt.Errorf("unsupported metadata format '%s' (supported: %v)", format, Formats())
	}
	return enc(w, records, indent)
}

// EncodeJSON writes records as a JSON array. HTML escaping is off so type
// names such as "map<string,int>" stay readable.
func EncodeJSON(w io.Writer, records []Record, indent string) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func EncodeYAML(w io.Writer, records []Record, indent string) error {
	if records == nil {
		records = []Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(max(len(indent), 2))
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
