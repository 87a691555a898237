package model

import "strings"

// RangeSeparator splits the lower and upper bound of a multiplicity.
const RangeSeparator = ".."

// Multiplicity is a verbatim UML multiplicity such as "1", "0..5" or "1..*".
type Multiplicity string

// IsRange reports whether m contains a range separator.
func (m Multiplicity) IsRange() bool {
	return strings.Contains(string(m), RangeSeparator)
}

// Bounds splits m into its lower and upper bound. m is cut at every
// non-overlapping separator, scanning left to right; the lower bound is the
// first piece and the upper bound the last. A single value is used for both
// ends.
// Example: "0..5" => ("0", "5"), "1..*" => ("1", "*"), "0...5" => ("0", ".5").
func (m Multiplicity) Bounds() (lower, upper string) {
	s := string(m)
	if !m.IsRange() {
		return s, s
	}
	parts := strings.Split(s, RangeSeparator)
	return parts[0], parts[len(parts)-1]
}
