/*
Package scanner implements a longest-match, multi-state tokenizer.

The scanner drives a position through an input string. At each step it
tries every regex rule registered for the current scanner state, anchored
at the position, and selects the longest match; among matches of the same
length, the rule whose name sorts first alphabetically wins. The winning
rule's action is invoked with the matched substring, and may emit tokens
and/or switch the scanner state to implement context-sensitive lexing
(e.g. string-interior vs. program body).

There is a subtlety in regular expression libraries with leftmost-first
alternation semantics: a combined expression such as /in|init/ will never
use its second alternative as a match. POSIX says the largest match should
win, and that is the behavior used in Lex. This package does the right
thing and finds the longest match available among the different rules, but
it cannot differentiate between the alternatives within a single rule.

A second implementation, backed by lexmachine, lives in lexmachine.go.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"regexp"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sparkle"
)

// tracer traces with key 'sparkle.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("sparkle.scanner")
}

// DefaultState is the unnamed scanner state. Rules registered without a
// state are active in the default state only.
const DefaultState = ""

// Action is the callable associated with a scanner rule. It receives the
// matched substring, the full input, and the byte position of the match.
// Returning a non-nil error terminates the tokenize-run immediately.
type Action func(match string, input string, pos uint64) error

// --- Rules ------------------------------------------------------------------

// A rule pairs a regex with an action, under a display name which is used
// for tie-breaking, and a state tag controlling when the rule is active.
type rule struct {
	name   string
	state  string
	re     *regexp.Regexp // anchored pattern; nil if the regex did not compile
	srcErr error          // compile error, surfaced on first use
	action Action
}

// RuleSet collects scanner rules. Registration never errors; a malformed
// regex surfaces on first use. Rules added after a scanner has been
// created are picked up by that scanner's next tokenize-run.
type RuleSet struct {
	rules   []*rule
	changed bool
}

// NewRuleSet creates an empty rule collection.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Add registers a rule for the default state.
func (rs *RuleSet) Add(name string, pattern string, action Action) *RuleSet {
	return rs.AddInState(name, DefaultState, pattern, action)
}

// AddInState registers a rule active in the given scanner state only.
func (rs *RuleSet) AddInState(name string, state string, pattern string, action Action) *RuleSet {
	r := &rule{
		name:   name,
		state:  state,
		action: action,
	}
	r.re, r.srcErr = regexp.Compile(`\A(?:` + pattern + `)`)
	rs.rules = append(rs.rules, r)
	rs.changed = true
	return rs
}

// --- Scanner ----------------------------------------------------------------

// Scanner tokenizes input strings based on a set of rules. Token delivery
// happens through rule actions; see TokenizingScanner for a variant that
// collects tokens into a list.
type Scanner struct {
	// State is the current scanner state. Actions may assign it to
	// implement context-sensitive lexing.
	State string

	rules         *RuleSet
	patterns      map[string][]*rule
	defaultAction Action
}

// NewScanner creates a scanner over a rule collection. The pattern table
// is built lazily at the start of the next tokenize-run after any rule
// registration: per-state rule lists ordered by ascending alphabetical
// rule name (the ordering which breaks ties between matches of equal
// length), with a default rule appended to every state's list. The
// default rule matches any single character (including newline); its
// stock action fails with an unmatched-input error and may be replaced
// with the DefaultRule option.
func NewScanner(rules *RuleSet, opts ...Option) *Scanner {
	s := &Scanner{
		rules:         rules,
		defaultAction: unmatchedInput,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// The stock default action.
func unmatchedInput(match string, input string, pos uint64) error {
	return sparkle.Lexical(pos, "Found unmatched input at position %d", pos)
}

var anyChar = regexp.MustCompile(`\A(?:.|\n)`)

// buildPatterns materializes the per-state pattern table.
func (s *Scanner) buildPatterns() {
	s.patterns = make(map[string][]*rule)
	names := treeset.NewWithStringComparator()
	for _, r := range s.rules.rules {
		names.Add(r.name)
	}
	names.Each(func(_ int, name interface{}) {
		for _, r := range s.rules.rules {
			if r.name == name.(string) {
				s.patterns[r.state] = append(s.patterns[r.state], r)
			}
		}
	})
	if _, ok := s.patterns[DefaultState]; !ok {
		s.patterns[DefaultState] = nil
	}
	def := &rule{
		name: "default",
		re:   anyChar,
		action: func(match string, input string, pos uint64) error {
			return s.defaultAction(match, input, pos)
		},
	}
	for state := range s.patterns {
		s.patterns[state] = append(s.patterns[state], def)
	}
	s.rules.changed = false
}

// Tokenize drives left-to-right, position-advancing lexing over the input,
// starting in the given state. It returns no value; the rule actions are
// responsible for emitting tokens.
func (s *Scanner) Tokenize(input string, initialState string) error {
	if s.patterns == nil || s.rules.changed {
		s.buildPatterns()
	}
	s.State = initialState
	var pos uint64
	n := uint64(len(input))
	for pos < n {
		rules, ok := s.patterns[s.State]
		if !ok {
			return sparkle.Internal(pos, "scanner state %q has no entry in the pattern table", s.State)
		}
		// Try each possible token regexp on this bit of string and find
		// the longest match. Rules are name-sorted, so among matches of
		// equal length the first one tried wins.
		longest := 0
		var best *rule
		for _, r := range rules {
			if r.re == nil {
				return sparkle.Internal(pos, "rule %q has a malformed regex: %v", r.name, r.srcErr)
			}
			if loc := r.re.FindStringIndex(input[pos:]); loc != nil {
				if loc[1] > longest {
					longest = loc[1]
					best = r
				}
			}
		}
		if best == nil {
			return sparkle.Lexical(pos, "Lexical error at position %d", pos)
		}
		match := input[pos : pos+uint64(longest)]
		tracer().Debugf("scan %q matched %q @ %d", best.name, match, pos)
		if err := best.action(match, input, pos); err != nil {
			return err
		}
		if longest == 0 {
			return sparkle.Internal(pos, "Found empty match at %d", pos)
		}
		pos += uint64(longest)
	}
	return nil
}

// --- Scanner options --------------------------------------------------------

// Option configures a scanner.
type Option func(s *Scanner)

// DefaultRule replaces the action of the single-character default rule.
// Because the default rule matches only one character, any proper rule
// producing a longer match wins; among same-length matches it loses to
// every name-sorted rule, which are tried before it.
func DefaultRule(action Action) Option {
	return func(s *Scanner) {
		s.defaultAction = action
	}
}

// --- Tokenizing scanner -----------------------------------------------------

// TokenizingScanner is a scanner that builds up tokens into a list
// internally. It is intended for use with actions created by Emit.
type TokenizingScanner struct {
	Scanner
	tokens []sparkle.Token
}

// NewTokenizingScanner creates a tokenizing scanner over a rule collection.
func NewTokenizingScanner(rules *RuleSet, opts ...Option) *TokenizingScanner {
	ts := &TokenizingScanner{}
	ts.Scanner = *NewScanner(rules, opts...)
	return ts
}

// Tokenize tokenizes the input and returns the list of collected tokens.
func (ts *TokenizingScanner) Tokenize(input string, initialState string) ([]sparkle.Token, error) {
	ts.tokens = nil
	if err := ts.Scanner.Tokenize(input, initialState); err != nil {
		return nil, err
	}
	return ts.tokens, nil
}

// Append adds a token to the scanner's internal token list.
func (ts *TokenizingScanner) Append(token sparkle.Token) {
	ts.tokens = append(ts.tokens, token)
}

// Emit wraps a value converter into an action that constructs a token of
// the declared kind and appends it to the scanner's token list. A nil
// converter uses the matched substring as the token value.
func (ts *TokenizingScanner) Emit(kind sparkle.Symbol, convert func(lexeme string) interface{}) Action {
	return func(match string, input string, pos uint64) error {
		var value interface{} = match
		if convert != nil {
			value = convert(match)
		}
		span := sparkle.Span{pos, pos + uint64(len(match))}
		ts.Append(MakeDefaultToken(kind, match, value, span))
		return nil
	}
}

// Skip is a pre-defined action which ignores the scanned match.
func Skip(match string, input string, pos uint64) error {
	return nil
}

// --- Default tokens ---------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the
// tokenizing scanner as well as the lexmachine adapter.
type DefaultToken struct {
	kind   sparkle.Symbol
	lexeme string
	Val    interface{}
	span   sparkle.Span
}

// MakeDefaultToken creates a token value.
func MakeDefaultToken(kind sparkle.Symbol, lexeme string, value interface{}, span sparkle.Span) DefaultToken {
	return DefaultToken{
		kind:   kind,
		lexeme: lexeme,
		Val:    value,
		span:   span,
	}
}

func (t DefaultToken) Kind() sparkle.Symbol {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Span() sparkle.Span {
	return t.span
}

var _ sparkle.Token = DefaultToken{}
