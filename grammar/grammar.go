/*
Package grammar collects the rules of a context-free grammar into a rule
table, suitable for driving the Earley parser of package earley.

Building a Rule Table

Clients add productions to a table, either programmatically or as grammar
strings of the form

    LHS ::= sym sym … | sym …  [ LHS2 ::= … ]

Splitting happens at each `::=` (the symbol immediately preceding a `::=`
is the left-hand side for the alternates that follow) and at `|`
(alternates sharing the preceding left-hand side). The empty right-hand
side is permitted. Symbols may be quoted ('a'); quotes are stripped.

Every production carries an action, a callable which the parse-tree
reconstructor invokes with the production's children, and a display name,
which drives ambiguity resolution. A table installs a synthetic start
production START ::= start EOF around the user's start symbol.

A terminal is simply any symbol that never appears as a left-hand side;
the table performs no validation of the symbol vocabulary. Malformed
grammar strings surface as parser-time failures.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sparkle"
)

// tracer traces with key 'sparkle.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("sparkle.grammar")
}

// Action is the callable associated with a production. The reconstructor
// calls it with the |RHS| children of the production, in left-to-right
// order, and uses the returned value as the node for the production's LHS.
type Action func(children []interface{}) interface{}

// PreprocessFunc is a hook invoked once per production at registration
// time. It may rewrite either the production or the action; this allows a
// client to centrally build an AST, for example. The synthetic start
// production is exempt from preprocessing.
type PreprocessFunc func(p *Production, action Action) (*Production, Action)

// --- Productions ------------------------------------------------------------

// Production is a rewrite rule LHS → RHS. The RHS may be empty
// (an epsilon-production).
type Production struct {
	Serial int            // position of this production in its table
	LHS    sparkle.Symbol // left-hand side symbol, never empty
	Name   string         // display name, used for ambiguity resolution
	rhs    []sparkle.Symbol
	action Action
}

// RHS returns the right-hand side symbols of a production.
func (p *Production) RHS() []sparkle.Symbol {
	return p.rhs
}

// Action returns the action associated with a production.
func (p *Production) Action() Action {
	return p.action
}

func (p *Production) String() string {
	return fmt.Sprintf("%d: [%s] ::= %v", p.Serial, p.LHS, p.rhs)
}

// --- Rule table -------------------------------------------------------------

// Table is a rule table for a grammar: productions in registration order,
// indexed by their left-hand sides, plus lazily computed FIRST sets.
//
// A table is immutable after the last AddProduction call, apart from the
// rules-changed latch which triggers FIRST recomputation on the next
// Freeze. Concurrent parses from the same table are safe once Freeze has
// been called (explicitly, or by a warm-up parse).
type Table struct {
	// Preprocess, when non-nil, is applied to every registered production.
	Preprocess PreprocessFunc

	start        sparkle.Symbol
	productions  []*Production
	rules        map[sparkle.Symbol][]*Production
	first        map[sparkle.Symbol]*FirstSet
	rulesChanged bool
}

// NewTable creates a rule table for a grammar with the given start symbol.
// An empty start symbol defaults to "root".
func NewTable(start sparkle.Symbol) *Table {
	if start == "" {
		start = "root"
	}
	t := &Table{
		start: start,
		rules: make(map[sparkle.Symbol][]*Production),
	}
	// Tempting though it is, this isn't routed through install(), because
	// the start production shouldn't be subject to preprocessing.
	startProd := &Production{
		Serial: 0,
		LHS:    sparkle.Start,
		Name:   "",
		rhs:    []sparkle.Symbol{start, sparkle.EOF},
		action: func(children []interface{}) interface{} {
			return children[0]
		},
	}
	t.productions = append(t.productions, startProd)
	t.rules[sparkle.Start] = []*Production{startProd}
	t.rulesChanged = true
	return t
}

// Start returns the user's start symbol.
func (t *Table) Start() sparkle.Symbol {
	return t.start
}

// StartProduction returns the synthetic start production START ::= start EOF.
func (t *Table) StartProduction() *Production {
	return t.productions[0]
}

// Production returns the production with the given serial number.
func (t *Table) Production(serial int) *Production {
	if serial < 0 || serial >= len(t.productions) {
		return nil
	}
	return t.productions[serial]
}

// Size returns the number of productions in the table, including the
// synthetic start production.
func (t *Table) Size() int {
	return len(t.productions)
}

// ProductionsFor returns all productions with the given left-hand side,
// in registration order.
func (t *Table) ProductionsFor(lhs sparkle.Symbol) []*Production {
	return t.rules[lhs]
}

// IsTerminal returns true if sym never appears as a left-hand side.
func (t *Table) IsTerminal(sym sparkle.Symbol) bool {
	_, ok := t.rules[sym]
	return !ok
}

// AddProduction parses a grammar string and registers its alternates under
// the given display name. Registration never errors; a malformed grammar
// string results in productions which simply won't derive anything useful,
// surfacing as a syntax error on first use.
func (t *Table) AddProduction(name string, rule string, action Action) {
	for _, alt := range splitAlternates(rule) {
		t.install(name, alt.lhs, alt.rhs, action)
	}
}

// InstallProduction registers a single production programmatically.
func (t *Table) InstallProduction(name string, lhs sparkle.Symbol, rhs []sparkle.Symbol, action Action) {
	t.install(name, lhs, rhs, action)
}

func (t *Table) install(name string, lhs sparkle.Symbol, rhs []sparkle.Symbol, action Action) {
	p := &Production{
		LHS:  lhs,
		Name: name,
		rhs:  rhs,
	}
	if t.Preprocess != nil {
		p, action = t.Preprocess(p, action)
	}
	p.Serial = len(t.productions)
	p.action = action
	t.productions = append(t.productions, p)
	t.rules[p.LHS] = append(t.rules[p.LHS], p)
	t.rulesChanged = true
}

// Dump logs all productions of the table at debug level.
func (t *Table) Dump() {
	tracer().Debugf("--- table ----------------------------------------")
	for _, p := range t.productions {
		tracer().Debugf("%s", p)
	}
	tracer().Debugf("--------------------------------------------------")
}

// --- Grammar string parsing -------------------------------------------------

type alternate struct {
	lhs sparkle.Symbol
	rhs []sparkle.Symbol
}

// splitAlternates splits a grammar string at each `::=` and `|`. The LHS
// for alternate k is the symbol immediately preceding the k-th `::=`; a
// `|` starts a new alternate under the same LHS.
func splitAlternates(rule string) []alternate {
	fields := strings.Fields(rule)
	var index []int // positions of LHS symbols, one per `::=`
	for i, f := range fields {
		if f == "::=" && i > 0 {
			index = append(index, i-1)
		}
	}
	index = append(index, len(fields))
	var alts []alternate
	for k := 0; k+1 < len(index); k++ {
		lhs := unquote(fields[index[k]])
		body := fields[index[k]+2 : index[k+1]]
		rhs := []sparkle.Symbol{}
		for _, f := range body {
			if f == "|" {
				alts = append(alts, alternate{lhs: lhs, rhs: rhs})
				rhs = []sparkle.Symbol{}
				continue
			}
			rhs = append(rhs, unquote(f))
		}
		alts = append(alts, alternate{lhs: lhs, rhs: rhs})
	}
	return alts
}

func unquote(field string) sparkle.Symbol {
	if len(field) >= 2 && field[0] == '\'' && field[len(field)-1] == '\'' {
		field = field[1 : len(field)-1]
	}
	return sparkle.Symbol(field)
}
