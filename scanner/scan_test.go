package scanner

import (
	"strconv"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sparkle"
	"github.com/timtadh/lexmachine"
)

// A scanner for a small expression language: numbers, identifiers and
// operators, whitespace skipped.
func exprScanner() *TokenizingScanner {
	rules := NewRuleSet()
	ts := NewTokenizingScanner(rules)
	rules.Add("t_number", `[0-9]+`, ts.Emit("number", func(lexeme string) interface{} {
		n, _ := strconv.Atoi(lexeme)
		return n
	}))
	rules.Add("t_ident", `[a-z]+`, ts.Emit("ident", nil))
	rules.Add("t_op", `[+*()]`, func(match string, input string, pos uint64) error {
		span := sparkle.Span{pos, pos + uint64(len(match))}
		ts.Append(MakeDefaultToken(sparkle.Symbol(match), match, match, span))
		return nil
	})
	rules.Add("t_ws", `[ \t\n]+`, Skip)
	return ts
}

var inputStrings = []string{
	"1",
	"1+12",
	"1 * (2+3)",
	"init in",
}

var tokenCounts = []int{1, 3, 7, 2}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		ts := exprScanner()
		tokens, err := ts.Tokenize(input, DefaultState)
		if err != nil {
			t.Errorf("input #%d: %v", i, err)
			continue
		}
		for _, token := range tokens {
			t.Logf(" %8s | %8s | @%3d", token.Kind(), token.Lexeme(), token.Span().From())
		}
		if len(tokens) != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], len(tokens))
		}
	}
	t.Logf("------+-----------------+--------")
}

// Longest match: on input "init", a keyword rule for "in" must lose to an
// identifier rule matching all 4 characters.
func TestLongestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	rules := NewRuleSet()
	ts := NewTokenizingScanner(rules)
	rules.Add("t_in", `in`, ts.Emit("in", nil))
	rules.Add("t_ident", `[a-z]+`, ts.Emit("ident", nil))
	tokens, err := ts.Tokenize("init", DefaultState)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Kind() != "ident" {
		t.Errorf("expected a single ident token, got %v", tokens)
	}
}

// Among rules of equal match length, the rule whose name sorts first
// alphabetically wins.
func TestAlphabeticalTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	rules := NewRuleSet()
	ts := NewTokenizingScanner(rules)
	rules.Add("t_if", `if`, ts.Emit("if", nil))
	rules.Add("t_ident", `[a-z]+`, ts.Emit("ident", nil))
	tokens, err := ts.Tokenize("if", DefaultState)
	if err != nil {
		t.Fatal(err)
	}
	// Both rules match all of "if"; "t_ident" sorts before "t_if".
	if len(tokens) != 1 || tokens[0].Kind() != "ident" {
		t.Errorf("expected tie to resolve to t_ident, got %v", tokens)
	}
}

// Input with no matching rule: the stock default rule reports unmatched
// input at the offending position.
func TestUnmatchedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	rules := NewRuleSet()
	ts := NewTokenizingScanner(rules)
	rules.Add("t_ident", `[a-z]+`, ts.Emit("ident", nil))
	_, err := ts.Tokenize("in init", DefaultState)
	lexerr, ok := err.(sparkle.LexicalError)
	if !ok {
		t.Fatalf("expected a LexicalError, got %v", err)
	}
	if lexerr.Pos != 2 {
		t.Errorf("expected lexical error at position 2, is at %d", lexerr.Pos)
	}
}

// The default rule may be replaced, e.g. to silently skip unknown input.
func TestDefaultRuleOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	rules := NewRuleSet()
	ts := NewTokenizingScanner(rules, DefaultRule(Skip))
	rules.Add("t_ident", `[a-z]+`, ts.Emit("ident", nil))
	tokens, err := ts.Tokenize("in init", DefaultState)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 {
		t.Errorf("expected 2 ident tokens, got %d", len(tokens))
	}
}

// Scanner states: a string-interior state with its own rules, entered and
// left by rule actions.
func TestScannerStates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	rules := NewRuleSet()
	ts := NewTokenizingScanner(rules)
	var text string
	rules.Add("t_quote", `"`, func(match string, input string, pos uint64) error {
		text = ""
		ts.State = "str"
		return nil
	})
	rules.Add("t_ident", `[a-z]+`, ts.Emit("ident", nil))
	rules.Add("t_ws", `[ ]+`, Skip)
	rules.AddInState("t_strchar", "str", `[^"]+`, func(match string, input string, pos uint64) error {
		text += match
		return nil
	})
	rules.AddInState("t_strend", "str", `"`, func(match string, input string, pos uint64) error {
		span := sparkle.Span{pos - uint64(len(text)) - 1, pos + 1}
		ts.Append(MakeDefaultToken("string", text, text, span))
		ts.State = DefaultState
		return nil
	})
	tokens, err := ts.Tokenize(`abc "hello world" def`, DefaultState)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[1].Kind() != "string" || tokens[1].Value() != "hello world" {
		t.Errorf("expected a string token 'hello world', got %v", tokens[1])
	}
}

// Tokenizing advances strictly monotonically.
func TestMonotonicAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	rules := NewRuleSet()
	ts := NewTokenizingScanner(rules)
	var positions []uint64
	rules.Add("t_any", `[a-z]`, func(match string, input string, pos uint64) error {
		positions = append(positions, pos)
		return nil
	})
	if _, err := ts.Tokenize("abcde", DefaultState); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			t.Errorf("scanner position did not advance: %v", positions)
		}
	}
	if len(positions) != 5 {
		t.Errorf("expected 5 scan steps, got %d", len(positions))
	}
}

// A single-character input exercises the length-1 default rule.
func TestSingleCharDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	rules := NewRuleSet()
	s := NewScanner(rules)
	err := s.Tokenize("x", DefaultState)
	lexerr, ok := err.(sparkle.LexicalError)
	if !ok {
		t.Fatalf("expected a LexicalError, got %v", err)
	}
	if lexerr.Pos != 0 {
		t.Errorf("expected lexical error at position 0, is at %d", lexerr.Pos)
	}
}

// --- lexmachine adapter -----------------------------------------------------

func TestLMAdapter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.scanner")
	defer teardown()
	//
	tokenIds := map[string]int{"+": 1, "*": 2, "number": 3}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[0-9]+`), MakeToken("number", tokenIds["number"]))
		lexer.Add([]byte(`( |\t|\n)+`), SkipMatch)
	}
	lm, err := NewLMAdapter(init, []string{"+", "*"}, nil, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := lm.Tokenize("1 + 2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(tokens))
	}
	expect := []sparkle.Symbol{"number", "+", "number", "*", "number"}
	for i, token := range tokens {
		if token.Kind() != expect[i] {
			t.Errorf("expected token #%d to be %s, is %s", i, expect[i], token.Kind())
		}
	}
}
