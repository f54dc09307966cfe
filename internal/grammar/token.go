// Package grammar implements the textual input language spec §6
// describes: a preamble of key/value annotations followed by a set of
// type blocks, each declaring its constructors, their arguments, and an
// optional weight/frequency annotation.
package grammar

import "fmt"

// TokenType classifies a lexed token.
type TokenType int

const (
	ErrorToken TokenType = iota
	EOFToken
	NewlineToken
	IntToken
	FloatToken
	IdentifierToken
	EqualsToken
	ColonToken
	PipeToken
	AtToken
	SlashToken
	LeftParenToken
	RightParenToken
	CommaToken
)

func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "error"
	case EOFToken:
		return "eof"
	case NewlineToken:
		return "newline"
	case IntToken:
		return "int"
	case FloatToken:
		return "float"
	case IdentifierToken:
		return "identifier"
	case EqualsToken:
		return "'='"
	case ColonToken:
		return "':'"
	case PipeToken:
		return "'|'"
	case AtToken:
		return "'@'"
	case SlashToken:
		return "'/'"
	case LeftParenToken:
		return "'('"
	case RightParenToken:
		return "')'"
	case CommaToken:
		return "','"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is one lexed unit: its type, its literal text, and the line it
// started on (for diagnostics).
type Token struct {
	Type  TokenType
	Value string
	Line  int
}
