package muon

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the decoder. Test for them with errors.Is;
// they may arrive wrapped with key and line context.
var (
	// ErrEndOfInput is returned when a value was expected but no
	// definitions remain.
	ErrEndOfInput = errors.New("muon: end of input")

	// ErrExpectedBool is returned when a boolean was requested but the
	// value text was not exactly "true" or "false".
	ErrExpectedBool = errors.New("muon: expected boolean")

	// ErrExpectedChar is returned when a character was requested but the
	// value text was not exactly one character.
	ErrExpectedChar = errors.New("muon: expected character")

	// ErrExpectedInt is returned when an integer was requested but the
	// value text was non-numeric or out of range for the target width.
	ErrExpectedInt = errors.New("muon: expected integer")

	// ErrExpectedEnum is returned for every enum-shaped decode request.
	// Enums cannot be represented in the notation's grammar.
	ErrExpectedEnum = errors.New("muon: expected enum, none available")

	// ErrUnsupported wraps decode requests for shapes the decoder
	// deliberately does not implement: floats, byte buffers, and untyped
	// targets. These fail outright rather than produce a default.
	ErrUnsupported = errors.New("muon: unsupported shape")
)

// ParseError describes a malformed input line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// errUnsupported reports a decode request for a shape that is
// deliberately unimplemented.
func errUnsupported(shape string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, shape)
}
