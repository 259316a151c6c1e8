package scanner

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"strings"

	"github.com/npillmayer/sparkle"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter
//
// lexmachine compiles all rules into a single DFA. That rules out mutable
// scanner states and per-rule longest-match arbitration, but for grammars
// that need neither it is a fast batch tokenizer with the same output
// token type as the regex scanner.

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	kinds map[int]sparkle.Symbol
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token kind names to their lexmachine ids.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{
		kinds: make(map[int]sparkle.Symbol, len(tokenIds)),
	}
	for name, id := range tokenIds {
		adapter.kinds[id] = sparkle.Symbol(name)
	}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Tokenize runs the DFA over the input and returns the recognized tokens.
// Unmatched input produces a LexicalError carrying the failure position.
func (lm *LMAdapter) Tokenize(input string) ([]sparkle.Token, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []sparkle.Token
	tok, err, eof := s.Next()
	for !eof {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, sparkle.Lexical(uint64(ui.FailTC), "Lexical error at position %d", ui.FailTC)
			}
			return nil, err
		}
		if tok != nil { // skipped matches deliver nil
			token := tok.(*lexmachine.Token)
			tokens = append(tokens, MakeDefaultToken(
				lm.kinds[token.Type],
				string(token.Lexeme),
				string(token.Lexeme),
				sparkle.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
			))
		}
		tok, err, eof = s.Next()
	}
	return tokens, nil
}

// SkipMatch is a pre-defined lexmachine action which ignores the scanned match.
func SkipMatch(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined lexmachine action which wraps a scanned match
// into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
