/*
Package earley provides an Earley-Parser.

Earleys algorithm for parsing ambiguous grammars has been known since 1968.
Despite its benefits, until recently it has lead a reclusive life outside
the mainstream discussion about parsers. Many textbooks on parsing do not
even discuss it (the "Dragon book" only mentions it in the appendix).

The parser of this package operates on a rule table from package grammar
and on a token run produced by a scanner, e.g. one from package scanner.
Tokens are compared to grammar symbols by their kind; anything satisfying
the sparkle.Token interface will do.

A thorough introduction to Earley-parsing may be found in
"Parsing Techniques" by Dick Grune and Ceriel J.H. Jacobs
(https://dickgrune.com/Books/PTAPG_2nd_Edition/), section 7.2. A very
accessible and practical discussion has been done by Loup Vaillant
in a superb blog series (http://loup-vaillant.fr/tutorials/earley-parsing/).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"github.com/cnf/structhash"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sparkle"
	"github.com/npillmayer/sparkle/grammar"
	"github.com/npillmayer/sparkle/iteratable"
	"github.com/npillmayer/sparkle/scanner"
)

// tracer traces with key 'sparkle.earley'.
func tracer() tracing.Trace {
	return tracing.Select("sparkle.earley")
}

// An Earley item: a production, a dot position ∈ [0, |RHS|], and the input
// position at which the item was first predicted. Items are small value
// types and double as chart-cell set elements.
type item struct {
	rule   int // production serial within the table
	dot    int
	origin uint64
}

// extentRef is an item pinned to a state index. The back-pointer map
// records, for each completer-advanced item, the completed sub-item(s)
// as extentRefs; more than one entry for the same key indicates ambiguity.
type extentRef struct {
	it    item
	state uint64
}

// Parser is an Earley-parser type. Create and initialize one with
// earley.NewParser(...).
//
// A single Parse call owns its chart and back-pointer map for its
// duration; nothing is shared across calls. A rule table may be shared
// between parsers, provided table.Freeze() has been called before
// concurrent entry.
type Parser struct {
	// TypeOf, when set, tells the parser the terminal kind of a lookahead
	// token, enabling FIRST-filtered prediction. Returning "" means
	// "unknown" and falls back to the weaker filter.
	TypeOf func(sparkle.Token) sparkle.Symbol

	table    *grammar.Table
	resolver Resolver
	states   []*iteratable.Set // chart: S0 … Sn+1
	tree     map[string][]extentRef
	tokens   []sparkle.Token // input run incl. the EOF sentinel
}

// NewParser creates and initializes an Earley parser for a rule table.
func NewParser(table *grammar.Table, opts ...Option) *Parser {
	p := &Parser{
		table:    table,
		resolver: DefaultResolver,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// --- Option handling ---------------------------------------------------

// Option configures a parser.
type Option func(p *Parser)

// WithResolver sets the parser's ambiguity resolution policy.
func WithResolver(r Resolver) Option {
	return func(p *Parser) {
		if r != nil {
			p.resolver = r
		}
	}
}

// WithTokenTypes sets the token-typing hook, see Parser.TypeOf.
func WithTokenTypes(typeOf func(sparkle.Token) sparkle.Symbol) Option {
	return func(p *Parser) {
		p.TypeOf = typeOf
	}
}

// --- Parsing -----------------------------------------------------------

// From "Practical Earley Parsing" by John Aycock and R. Nigel Horspool:
//
// Earley parsers operate by constructing a sequence of sets, sometimes
// called Earley sets. Given an input x1 x2 … xn, the parser builds n+1
// sets: an initial set S0 and one set Si for each input symbol xi.
// […] each set is typically represented as a list of items, as suggested
// by Earley. This list representation of a set is particularly
// convenient, because the list of items acts as a 'work queue' when
// building the set: items are examined in order, applying Scanner,
// Predictor and Completer as necessary; items added to the set are
// appended onto the end of the list.

// Parse recognizes a token run and materializes a parse result: the value
// returned by the start production's action, which in turn receives the
// values of its children, and so on downwards.
//
// A synthetic EOF token is appended to the run before recognition. If the
// chart does not accept, Parse returns a SyntaxError referencing the token
// before the failure position. The chart and the back-pointer map are
// discarded when Parse returns.
func (p *Parser) Parse(tokens []sparkle.Token) (result interface{}, err error) {
	p.table.Freeze() // recompute FIRST if rules changed
	run := make([]sparkle.Token, len(tokens), len(tokens)+1)
	copy(run, tokens)
	run = append(run, eofToken(tokens))
	p.tokens = run
	n := len(run)
	p.states = make([]*iteratable.Set, 1, n+1)
	p.states[0] = iteratable.NewSet(0)
	p.states[0].Add(item{rule: 0, dot: 0, origin: 0}) // S0 = { [START→•S EOF, 0] }
	p.tree = make(map[string][]extentRef)
	defer func() { // chart and back-pointers are per-parse
		p.states = nil
		p.tree = nil
		p.tokens = nil
	}()

	i, early := 0, false
	for ; i < n; i++ {
		p.states = append(p.states, iteratable.NewSet(0))
		if p.states[i].Empty() {
			early = true // input is unrecognizable beyond here
			break
		}
		p.buildState(run[i], uint64(i))
		dumpState(p, uint64(i))
	}

	acceptItem := item{rule: 0, dot: 2, origin: 0} // [START→S EOF•, 0]
	if early || !p.states[n].Contains(acceptItem) {
		if !early {
			i = n - 1
		}
		errPos := i - 1
		if errPos < 0 {
			errPos = 0
		}
		bad := run[errPos]
		return nil, sparkle.Syntax(uint64(errPos), bad, "Syntax error at or near '%s'", bad.Lexeme())
	}
	return p.buildTree(run, acceptItem, uint64(n))
}

// eofToken creates the end-of-input sentinel, positioned behind the last
// input token.
func eofToken(tokens []sparkle.Token) sparkle.Token {
	var end uint64
	if len(tokens) > 0 {
		end = tokens[len(tokens)-1].Span().To()
	}
	return scanner.MakeDefaultToken(sparkle.EOF, "", nil, sparkle.Span{end, end})
}

// buildState processes the items of Si in append order, applying
// Completer, Predictor and Scanner. Appended items are reached by the same
// linear traversal, so predictor/completer work within the cell reaches a
// fixpoint in a single pass.
func (p *Parser) buildState(token sparkle.Token, i uint64) {
	// Empty-RHS completions observed within this cell. Prediction of such
	// a non-terminal later in the same pass advances over it immediately.
	needsCompletion := make(map[sparkle.Symbol]extentRef)
	predicted := make(map[sparkle.Symbol]bool)
	S := p.states[i]
	S1 := p.states[i+1]
	S.IterateOnce()
	for S.Next() {
		it := S.Item().(item)
		cursor := S.Position()
		prod := p.table.Production(it.rule)
		rhs := prod.RHS()

		// A → a •  (completer)
		if it.dot == len(rhs) {
			if len(rhs) == 0 {
				needsCompletion[prod.LHS] = extentRef{it: it, state: i}
			}
			parents := p.states[it.origin]
			limit := parents.Size()
			if it.origin == i {
				// The parent cell is the one we are appending to; walking
				// past the current item would feed the completer its own
				// output mid-fixpoint.
				limit = cursor
			}
			for j := 0; j < limit; j++ {
				pit := parents.At(j).(item)
				prhs := p.table.Production(pit.rule).RHS()
				if pit.dot < len(prhs) && prhs[pit.dot] == prod.LHS {
					adv := item{rule: pit.rule, dot: pit.dot + 1, origin: pit.origin}
					S.Add(adv)
					p.pushBacklink(adv, i, extentRef{it: it, state: i})
				}
			}
			continue
		}

		next := rhs[it.dot]

		// A → a • B  (predictor)
		if !p.table.IsTerminal(next) {
			// Work on the completer step some more: for rules with empty
			// RHS, the "parent state" is the current state we're adding
			// Earley items to, so the items the completer step needs may
			// not all have been present when it ran.
			if ref, ok := needsCompletion[next]; ok {
				adv := item{rule: it.rule, dot: it.dot + 1, origin: it.origin}
				S.Add(adv)
				p.pushBacklink(adv, i, ref)
			}
			if predicted[next] {
				continue
			}
			predicted[next] = true

			if ttype := p.typeOf(token); ttype != "" {
				// FIRST-filtered prediction, when the token's type is
				// known. Three cases: empty RHS; RHS head is a terminal;
				// RHS head is a non-terminal.
				for _, cand := range p.table.ProductionsFor(next) {
					newItem := item{rule: cand.Serial, dot: 0, origin: i}
					crhs := cand.RHS()
					if len(crhs) == 0 {
						S.Add(newItem)
						continue
					}
					head := crhs[0]
					if p.table.IsTerminal(head) {
						if head == ttype {
							S.Add(newItem)
						}
						continue
					}
					first := p.table.First(head)
					if !first.Nullable() && !first.Contains(ttype) {
						continue
					}
					S.Add(newItem)
				}
				continue
			}
			// Weaker filter, as per Grune & Jacobs' "Parsing Techniques":
			// skip productions whose RHS head is a terminal unequal to the
			// current token. This compares by token equality, not type
			// equality — preserved from the source.
			for _, cand := range p.table.ProductionsFor(next) {
				crhs := cand.RHS()
				if len(crhs) > 0 && p.table.IsTerminal(crhs[0]) && !sparkle.Matches(crhs[0], token) {
					continue
				}
				S.Add(item{rule: cand.Serial, dot: 0, origin: i})
			}
			continue
		}

		// A → a • c  (scanner)
		if sparkle.Matches(next, token) {
			S1.Add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
			// No back-pointer for scanner advances; the terminal is
			// recovered from the token stream during reconstruction.
		}
	}
}

func (p *Parser) typeOf(token sparkle.Token) sparkle.Symbol {
	if p.TypeOf == nil || token.Kind() == sparkle.EOF {
		return ""
	}
	return p.TypeOf(token)
}

// pushBacklink records a derivation child for an item at a state index.
// Entries for the same key accumulate on re-derivation.
func (p *Parser) pushBacklink(it item, state uint64, child extentRef) {
	key := backlinkKey(it, state)
	p.tree[key] = append(p.tree[key], child)
}

func backlinkKey(it item, state uint64) string {
	key, err := structhash.Hash(struct {
		Rule   int
		Dot    int
		Origin uint64
		State  uint64
	}{
		Rule:   it.rule,
		Dot:    it.dot,
		Origin: it.origin,
		State:  state,
	}, 1)
	if err != nil { // no reason for this to happen, but the API demands it
		panic(err)
	}
	return key
}
