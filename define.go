package muon

import "fmt"

// definition is the atomic parsed unit of MuON input: one `key: value`
// line together with its nesting depth and source line number. A
// malformed line carries a non-nil err instead of a key/value pair.
//
// The key and value fields are sub-slices of the input buffer; a
// definition never copies text.
type definition struct {
	indent int // nesting depth, 0 for top-level lines
	line   int // 1-based source line number
	key    string
	value  string
	err    *ParseError
}

// String returns a human-readable representation of the definition.
func (d definition) String() string {
	if d.err != nil {
		return fmt.Sprintf("Invalid(%v)", d.err)
	}
	return fmt.Sprintf("Define(%d, %q: %q)", d.indent, d.key, d.value)
}
