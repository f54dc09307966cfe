package model

import (
	"strings"

	"github.com/spf13/cast"
)

// Annotations is a free-form key/value map populated from the input
// grammar's preamble (spec §6). Values are stored as strings; typed
// accessors coerce them on demand with spf13/cast so that a single map
// can back integers, floats and booleans without the parser needing to
// guess a value's intended type up front.
type Annotations map[string]string

// Bool coerces key to a boolean. The recognised truthy/falsy tokens are
// "true"/"false", case-insensitive (spec §9's Open Question, resolved
// conservatively rather than left to cast's broader coercion rules, which
// also accept "1"/"0"/"yes"/"no" and would silently widen the grammar).
func (a Annotations) Bool(key string) (bool, bool) {
	raw, ok := a[key]
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// BoolOr returns Bool(key) or def if key is absent or not a recognised
// truthy/falsy token.
func (a Annotations) BoolOr(key string, def bool) bool {
	v, ok := a.Bool(key)
	if !ok {
		return def
	}
	return v
}

// Int coerces key to an int via cast.ToIntE.
func (a Annotations) Int(key string) (int, bool) {
	raw, ok := a[key]
	if !ok {
		return 0, false
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float coerces key to a float64 via cast.ToFloat64E.
func (a Annotations) Float(key string) (float64, bool) {
	raw, ok := a[key]
	if !ok {
		return 0, false
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// String returns the raw annotation value.
func (a Annotations) String(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}
