package muon

import "strconv"

// signedInt and unsignedInt cover the integer widths the notation's
// decoder supports.
type signedInt interface {
	~int8 | ~int16 | ~int32 | ~int64
}

type unsignedInt interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// parseSigned parses a decimal integer literal and range-checks it
// against T. Base prefixes and grouping separators are not recognized.
// The narrowing round-trip catches values that fit in 64 bits but not
// in T.
func parseSigned[T signedInt](s string) (T, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	n := T(v)
	if int64(n) != v {
		return 0, false
	}
	return n, true
}

// parseUnsigned is the unsigned counterpart of parseSigned.
func parseUnsigned[T unsignedInt](s string) (T, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	n := T(v)
	if uint64(n) != v {
		return 0, false
	}
	return n, true
}
