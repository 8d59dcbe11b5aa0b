package muon

// defCursor wraps the definition stream with a single slot of lookahead.
// It is the only component the decoding engine reads from, and it never
// advances the underlying scanner more than one definition past the last
// consumed one. A cursor belongs to exactly one decode session.
type defCursor struct {
	defs   *defScanner
	peeked *definition
}

func newDefCursor(defs *defScanner) *defCursor {
	return &defCursor{defs: defs}
}

// peek returns the current definition without consuming it. Repeated
// peeks return the same definition. ok is false at end of input.
func (c *defCursor) peek() (*definition, bool) {
	if c.peeked == nil {
		d, ok := c.defs.next()
		if !ok {
			return nil, false
		}
		c.peeked = &d
	}
	return c.peeked, true
}

// hasCurrent reports whether a usable definition is available. A
// buffered malformed line surfaces as its parse error, never silently
// skipped.
func (c *defCursor) hasCurrent() (bool, error) {
	d, ok := c.peek()
	if !ok {
		return false, nil
	}
	if d.err != nil {
		return false, d.err
	}
	return true, nil
}

// peekKey returns the current key without consuming the definition. A
// takeValue immediately after refers to the same definition.
func (c *defCursor) peekKey() (string, error) {
	d, ok := c.peek()
	if !ok {
		return "", ErrEndOfInput
	}
	if d.err != nil {
		return "", d.err
	}
	return d.key, nil
}

// takeValue consumes the current definition and returns its value text.
func (c *defCursor) takeValue() (string, error) {
	d, ok := c.peek()
	if !ok {
		return "", ErrEndOfInput
	}
	c.peeked = nil
	if d.err != nil {
		return "", d.err
	}
	return d.value, nil
}
