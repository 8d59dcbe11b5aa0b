// Package muon provides functionality for decoding MuON (Micro Object
// Notation) documents into strongly-typed Go values.
//
// MuON is a human-readable, line-oriented notation: records are
// `key: value` lines, a value is a scalar or a run of
// whitespace-separated scalars, and deeper indentation nests records.
// There are no type tags in the grammar; the shape of the destination
// value is the schema, and the decoder satisfies each request from the
// remaining definition stream without building an intermediate tree.
package muon

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Char is the character shape of the notation: a scalar that must decode
// from exactly one character. Go reflection cannot tell rune apart from
// int32, so character fields are declared with this type.
type Char rune

var charType = reflect.TypeOf(Char(0))

// A Decoder reads and decodes a MuON document from an input stream. The
// input is buffered in full before decoding begins; each Decoder drives
// exactly one decode session over its definition cursor.
type Decoder struct {
	r    io.Reader
	defs *defCursor
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the MuON document from the input stream and stores the
// result in the value pointed to by v. The declared type of v drives the
// decode: the decoder never infers shape from content, so a mismatch
// between the document and v surfaces as a typed error, not a coercion.
func (dec *Decoder) Decode(v any) error {
	if dec.defs == nil {
		data, err := io.ReadAll(dec.r)
		if err != nil {
			return err
		}
		dec.defs = newDefCursor(newDefScanner(string(data)))
	}
	return dec.decode(v)
}

// Unmarshal parses MuON data and stores the result in the value pointed
// to by v. If v is nil or not a pointer, Unmarshal returns an error.
//
// It maps MuON content onto the destination as follows:
//   - `key: value` scalars decode into bool ("true"/"false" exactly),
//     string (verbatim value text), signed and unsigned integers of any
//     width, and Char (exactly one character)
//   - a key repeated at one depth, or a value of several
//     whitespace-separated tokens, decodes into a slice
//   - a key with an empty value followed by a child-indented block
//     decodes into a struct (honoring `muon:"name"` tags) or into a
//     map with string keys
//   - pointer fields decode eagerly; a missing key leaves them nil
//
// Floats, byte buffers, and untyped (interface) destinations are not
// representable in the notation and fail with ErrUnsupported.
func Unmarshal(data []byte, v any) error {
	dec := &Decoder{defs: newDefCursor(newDefScanner(string(data)))}
	return dec.decode(v)
}

// Check scans data and returns the first malformed-line error, or nil if
// every line tokenizes cleanly. It validates line structure only, not
// conformance to any destination shape.
func Check(data []byte) error {
	s := newDefScanner(string(data))
	for {
		d, ok := s.next()
		if !ok {
			return nil
		}
		if d.err != nil {
			return d.err
		}
	}
}

func (dec *Decoder) decode(v any) error {
	if v == nil {
		return errors.New("cannot unmarshal into a nil value")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return errors.New("destination is not a pointer")
	}
	if rv.IsNil() {
		return errors.New("destination pointer is nil")
	}
	return dec.decodeRoot(rv.Elem())
}

// decodeRoot decodes the whole document into rv at depth 0.
func (dec *Decoder) decodeRoot(rv reflect.Value) error {
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return dec.decodeRecord(rv, 0)
	case reflect.Map:
		return dec.decodeMapping(rv, 0)
	case reflect.Slice:
		d, ok := dec.defs.peek()
		if !ok {
			rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
			return nil
		}
		if d.err != nil {
			return d.err
		}
		return dec.decodeSequence(rv, d.key, d.indent)
	default:
		text, err := dec.defs.takeValue()
		if err != nil {
			return err
		}
		return dec.decodeScalar(rv, text)
	}
}

// decodeRecord decodes definitions at the given depth into the fields of
// a struct, in source order. A key with no matching field is an error:
// the notation carries no type tags, so unknown content cannot be
// decoded generically.
func (dec *Decoder) decodeRecord(rv reflect.Value, depth int) error {
	fields := fieldIndex(rv.Type())
	for {
		ok, err := dec.defs.hasCurrent()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		d, _ := dec.defs.peek()
		if d.indent < depth {
			// Dedent ends this record.
			return nil
		}
		if d.indent > depth {
			return &ParseError{Line: d.line, Msg: fmt.Sprintf("unexpected indent before key %q", d.key)}
		}
		idx, found := fields[d.key]
		if !found {
			return fmt.Errorf("line %d: %w: unknown key %q", d.line, ErrUnsupported, d.key)
		}
		if err := dec.decodeField(rv.Field(idx), d); err != nil {
			return fmt.Errorf("key %q: %w", d.key, err)
		}
	}
}

// decodeMapping decodes definitions at the given depth into a map with
// string keys. Entries are pulled in source order; the Go map itself
// does not retain that order.
func (dec *Decoder) decodeMapping(rv reflect.Value, depth int) error {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return errors.New("maps with non-string keys are not supported")
	}

	out := reflect.MakeMap(t)
	for {
		ok, err := dec.defs.hasCurrent()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		d, _ := dec.defs.peek()
		if d.indent < depth {
			break
		}
		if d.indent > depth {
			return &ParseError{Line: d.line, Msg: fmt.Sprintf("unexpected indent before key %q", d.key)}
		}
		key, err := dec.defs.peekKey()
		if err != nil {
			return err
		}
		ev := reflect.New(t.Elem()).Elem()
		if err := dec.decodeField(ev, d); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), ev)
	}
	rv.Set(out)
	return nil
}

// decodeField decodes the value of one definition into rv. def is the
// peeked definition carrying the field's key and depth: scalar shapes
// consume exactly that definition, containers may consume more.
func (dec *Decoder) decodeField(rv reflect.Value, def *definition) error {
	// Optional shape: decode eagerly into a fresh value. Absence is a
	// missing key, which never reaches this point.
	if rv.Kind() == reflect.Ptr {
		p := reflect.New(rv.Type().Elem())
		if err := dec.decodeField(p.Elem(), def); err != nil {
			return err
		}
		rv.Set(p)
		return nil
	}

	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		v, err := dec.defs.takeValue()
		if err != nil {
			return err
		}
		if rv.Kind() == reflect.Struct && rv.NumField() == 0 {
			// Unit shape: succeeds without reading anything further.
			return nil
		}
		if v != "" {
			return &ParseError{Line: def.line, Msg: fmt.Sprintf("expected nested record after key %q", def.key)}
		}
		if rv.Kind() == reflect.Struct {
			return dec.decodeRecord(rv, def.indent+1)
		}
		return dec.decodeMapping(rv, def.indent+1)
	case reflect.Slice:
		return dec.decodeSequence(rv, def.key, def.indent)
	case reflect.Interface:
		return errUnsupported("untyped value")
	default:
		text, err := dec.defs.takeValue()
		if err != nil {
			return err
		}
		return dec.decodeScalar(rv, text)
	}
}

// decodeSequence decodes a slice opened by key at the given depth. Every
// definition with the same key at the same depth extends the sequence: a
// scalar element type splits each value into whitespace-separated
// tokens, a record element type expects one child-indented block per
// definition. A dedent, a different key at the same depth, or end of
// input terminates the sequence.
func (dec *Decoder) decodeSequence(rv reflect.Value, key string, depth int) error {
	elem := rv.Type().Elem()
	if elem.Kind() == reflect.Uint8 {
		return errUnsupported("byte buffer")
	}

	out := reflect.MakeSlice(rv.Type(), 0, 0)
	for {
		d, ok := dec.defs.peek()
		if !ok {
			break
		}
		if d.err != nil {
			return d.err
		}
		if d.indent != depth || d.key != key {
			break
		}

		switch elem.Kind() {
		case reflect.Struct, reflect.Map, reflect.Ptr:
			ev := reflect.New(elem).Elem()
			if err := dec.decodeField(ev, d); err != nil {
				return err
			}
			out = reflect.Append(out, ev)
		case reflect.Slice:
			return errUnsupported("nested sequence")
		default:
			text, err := dec.defs.takeValue()
			if err != nil {
				return err
			}
			for _, tok := range strings.Fields(text) {
				ev := reflect.New(elem).Elem()
				if err := dec.decodeScalar(ev, tok); err != nil {
					return err
				}
				out = reflect.Append(out, ev)
			}
		}
	}
	rv.Set(out)
	return nil
}

// decodeScalar converts one scalar token into rv.
func (dec *Decoder) decodeScalar(rv reflect.Value, text string) error {
	if rv.Type() == charType {
		r, size := utf8.DecodeRuneInString(text)
		if size == 0 || size != len(text) || (r == utf8.RuneError && size == 1) {
			return ErrExpectedChar
		}
		rv.SetInt(int64(r))
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		switch text {
		case "true":
			rv.SetBool(true)
		case "false":
			rv.SetBool(false)
		default:
			return ErrExpectedBool
		}
		return nil
	case reflect.String:
		rv.SetString(text)
		return nil
	case reflect.Int8:
		return setSigned[int8](rv, text)
	case reflect.Int16:
		return setSigned[int16](rv, text)
	case reflect.Int32:
		return setSigned[int32](rv, text)
	case reflect.Int64, reflect.Int:
		return setSigned[int64](rv, text)
	case reflect.Uint8:
		return setUnsigned[uint8](rv, text)
	case reflect.Uint16:
		return setUnsigned[uint16](rv, text)
	case reflect.Uint32:
		return setUnsigned[uint32](rv, text)
	case reflect.Uint64, reflect.Uint:
		return setUnsigned[uint64](rv, text)
	case reflect.Float32, reflect.Float64:
		return errUnsupported("float")
	case reflect.Interface:
		return errUnsupported("untyped value")
	default:
		return errUnsupported(rv.Kind().String())
	}
}

// decodeEnum handles enum-shaped requests. The notation's grammar has no
// way to write a variant, so this always fails.
func (dec *Decoder) decodeEnum() error {
	return ErrExpectedEnum
}

// setSigned parses text for the width of T and stores it into rv.
func setSigned[T signedInt](rv reflect.Value, text string) error {
	n, ok := parseSigned[T](text)
	if !ok {
		return ErrExpectedInt
	}
	if rv.OverflowInt(int64(n)) {
		return ErrExpectedInt
	}
	rv.SetInt(int64(n))
	return nil
}

// setUnsigned parses text for the width of T and stores it into rv.
func setUnsigned[T unsignedInt](rv reflect.Value, text string) error {
	n, ok := parseUnsigned[T](text)
	if !ok {
		return ErrExpectedInt
	}
	if rv.OverflowUint(uint64(n)) {
		return ErrExpectedInt
	}
	rv.SetUint(uint64(n))
	return nil
}

// fieldIndex maps notation keys to exported field indices, honoring
// `muon:"name"` tags. A "-" tag skips the field.
func fieldIndex(t reflect.Type) map[string]int {
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			// Unexported.
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("muon"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		m[name] = i
	}
	return m
}
