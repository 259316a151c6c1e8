package sparkle

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import "fmt"

// Errors terminate the current tokenize- or parse-call immediately; no
// partial result is returned. All errors carry an integer position, either
// into the original input (scanner) or into the token stream (parser).

// LexicalError reports that no scanner rule (including the default rule)
// matched at an input position.
type LexicalError struct {
	Pos uint64 // byte offset into the input
	msg string
}

func (e LexicalError) Error() string {
	return e.msg
}

// Lexical creates a LexicalError for an input position.
func Lexical(pos uint64, format string, args ...interface{}) LexicalError {
	return LexicalError{Pos: pos, msg: fmt.Sprintf(format, args...)}
}

// SyntaxError reports that the parser did not accept the token run. The
// position points to the token before the failure.
type SyntaxError struct {
	Pos   uint64 // index into the token stream
	Token Token  // token at or near the failure, may be nil
	msg   string
}

func (e SyntaxError) Error() string {
	return e.msg
}

// Syntax creates a SyntaxError for a token position.
func Syntax(pos uint64, token Token, format string, args ...interface{}) SyntaxError {
	return SyntaxError{Pos: pos, Token: token, msg: fmt.Sprintf(format, args...)}
}

// InternalError reports a violated invariant, e.g. a scanner rule matching
// the empty string or a scanner state without a pattern-table entry. It
// indicates a bug in the grammar definition rather than in the input.
type InternalError struct {
	Pos uint64
	msg string
}

func (e InternalError) Error() string {
	return e.msg
}

// Internal creates an InternalError for an input position.
func Internal(pos uint64, format string, args ...interface{}) InternalError {
	return InternalError{Pos: pos, msg: fmt.Sprintf(format, args...)}
}
