package sparkle

import "fmt"

// --- Grammar symbols --------------------------------------------------------

// Symbol is a grammar symbol, i.e. a textual name. A symbol is a non-terminal
// if it appears as the left-hand side of some production, and a terminal
// otherwise. Which of the two it is can only be decided by a rule table, not
// by the symbol itself.
type Symbol string

// Two reserved symbols exist. Start is the left-hand side of the synthetic
// start production which a rule table installs around the user's start symbol,
// and EOF is the end-of-input sentinel terminating every token run.
const (
	Start Symbol = "START"
	EOF   Symbol = "EOF"
)

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token. Tokens are usually produced by a scanner
// and reflect terminals in a language.
//
// An example would be a token for a floating point number:
//
//    Kind    = "number"     // terminal symbol this token matches
//    Lexeme  = "3.1416"     // lexeme as it appeared in the input stream
//    Value   = 3.1416       // is a float64 value
//    Span    = 67…73        // occured from position 67 in the input stream
//
// Token.Value() could either have been set by the scanner, or converted from
// Token.Lexeme() by a grammar action.
type Token interface {
	Kind() Symbol
	Lexeme() string
	Value() interface{}
	Span() Span
}

// Matches is the token-to-symbol equality contract between scanner and
// parser: a token is compared to a grammar symbol by its kind.
func Matches(sym Symbol, token Token) bool {
	return token != nil && token.Kind() == sym
}

// --- Spans ------------------------------------------------------------------

// Span is a small type for capturing a length of input. For every token, a
// span denotes its start position (a byte offset) and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
