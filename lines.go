package muon

import "strings"

// lineScanner splits an input buffer into logical lines, skipping blank
// lines and comment lines, and tracking 1-based line numbers. It is
// forward-only; restart by constructing a new scanner over the buffer.
type lineScanner struct {
	input string
	pos   int
	num   int // line number of the most recently read line
}

func newLineScanner(input string) *lineScanner {
	return &lineScanner{input: input}
}

// next returns the next non-blank, non-comment line without its trailing
// newline. ok is false at end of input.
func (s *lineScanner) next() (text string, num int, ok bool) {
	for s.pos < len(s.input) {
		start := s.pos
		if end := strings.IndexByte(s.input[start:], '\n'); end < 0 {
			s.pos = len(s.input)
			text = s.input[start:]
		} else {
			s.pos = start + end + 1
			text = s.input[start : start+end]
		}
		s.num++

		trimmed := strings.TrimSpace(text)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}
		return text, s.num, true
	}
	return "", s.num, false
}

// defScanner lazily converts logical lines into definitions: one
// definition per line, valid or invalid, in source order. Malformed
// lines do not stop the scan; the consumer decides whether they are
// fatal.
type defScanner struct {
	lines *lineScanner

	// unit is the indentation unit, fixed by the leading whitespace run
	// of the first indented line. Depth is the number of unit
	// repetitions; the unit may be any run of spaces or tabs.
	unit string
}

func newDefScanner(input string) *defScanner {
	return &defScanner{lines: newLineScanner(input)}
}

// next produces the next definition. ok is false at end of input.
func (s *defScanner) next() (definition, bool) {
	text, num, ok := s.lines.next()
	if !ok {
		return definition{}, false
	}

	body := strings.TrimLeft(text, " \t")
	depth, perr := s.depthOf(text[:len(text)-len(body)], num)
	if perr != nil {
		return definition{line: num, err: perr}, true
	}

	sep := strings.IndexByte(body, ':')
	if sep < 0 {
		return invalid(num, "missing ':' separator"), true
	}

	key := strings.TrimSpace(body[:sep])
	if key == "" {
		return invalid(num, "empty key"), true
	}

	return definition{
		indent: depth,
		line:   num,
		key:    key,
		value:  strings.TrimSpace(body[sep+1:]),
	}, true
}

// depthOf converts a leading whitespace run into a nesting depth by
// ordinal comparison against the established indent unit.
func (s *defScanner) depthOf(lead string, num int) (int, *ParseError) {
	if lead == "" {
		return 0, nil
	}
	if s.unit == "" {
		s.unit = lead
	}
	if len(lead)%len(s.unit) == 0 {
		n := len(lead) / len(s.unit)
		for i := 0; i < len(lead); i += len(s.unit) {
			if lead[i:i+len(s.unit)] != s.unit {
				return 0, &ParseError{Line: num, Msg: "inconsistent indentation"}
			}
		}
		return n, nil
	}
	return 0, &ParseError{Line: num, Msg: "inconsistent indentation"}
}

func invalid(num int, msg string) definition {
	return definition{line: num, err: &ParseError{Line: num, Msg: msg}}
}
