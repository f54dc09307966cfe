package grammar

import errors "gopkg.in/src-d/go-errors.v1"

// Error taxonomy for the input-grammar boundary (spec §6, §7's
// ParseError row).
var (
	// ErrLex is returned when the raw character stream cannot be
	// tokenized: an unexpected character or a malformed number literal.
	ErrLex = errors.NewKind("grammar: line %d: %s")

	// ErrParse is returned when the token stream does not conform to the
	// grammar: a missing `=`, an unterminated type block, and so on.
	ErrParse = errors.NewKind("grammar: line %d: %s")

	// ErrDuplicateType is returned when the same type name is declared
	// twice.
	ErrDuplicateType = errors.NewKind("grammar: line %d: type %q declared more than once")
)
