package grammar

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/npillmayer/sparkle"
)

// FirstSet is the FIRST set of a non-terminal N: the terminals that can
// begin a sentential form derived from N, plus a nullable marker. The
// marker is set for N with an empty production and copied along with the
// set from the head of a production to its LHS (see makeFirst), so it
// approximates, but does not decide, whether N derives the empty string.
type FirstSet struct {
	syms     map[sparkle.Symbol]struct{}
	nullable bool
}

func newFirstSet() *FirstSet {
	return &FirstSet{syms: make(map[sparkle.Symbol]struct{})}
}

// Contains returns true if a terminal is element of the FIRST set.
func (fs *FirstSet) Contains(sym sparkle.Symbol) bool {
	if fs == nil {
		return false
	}
	_, ok := fs.syms[sym]
	return ok
}

// Nullable returns true if the set carries the nullable marker.
func (fs *FirstSet) Nullable() bool {
	return fs != nil && fs.nullable
}

// Symbols returns the terminals of the FIRST set. Order is unspecified.
func (fs *FirstSet) Symbols() []sparkle.Symbol {
	if fs == nil {
		return nil
	}
	syms := make([]sparkle.Symbol, 0, len(fs.syms))
	for s := range fs.syms {
		syms = append(syms, s)
	}
	return syms
}

// update copies src into fs and reports whether fs grew.
func (fs *FirstSet) update(src *FirstSet) bool {
	grew := false
	for s := range src.syms {
		if _, ok := fs.syms[s]; !ok {
			fs.syms[s] = struct{}{}
			grew = true
		}
	}
	if src.nullable && !fs.nullable {
		fs.nullable = true
		grew = true
	}
	return grew
}

// --- Lazy FIRST computation ---------------------------------------------

// Freeze recomputes the FIRST sets if any rule has been added since the
// last computation. Parsers call it before recognizing; clients that want
// to share a table between concurrent parses call it once up front.
func (t *Table) Freeze() {
	if t.rulesChanged {
		t.makeFirst()
		t.rulesChanged = false
	}
}

// First returns FIRST(sym). It is only meaningful after Freeze, and only
// for non-terminals; terminals have no entry.
func (t *Table) First(sym sparkle.Symbol) *FirstSet {
	return t.first[sym]
}

// makeFirst computes the FIRST sets of all non-terminals.
//
// For each production (L, R): an empty R marks L nullable; a terminal head
// of R is added to FIRST(L); a non-terminal head s records a propagation
// edge s→L. The edges are then iterated to fixpoint, each pass copying
// FIRST(source) into FIRST(destination), until no set grows. The nullable
// marker travels with the set.
//
// Propagation of FIRST past nullable leading symbols is not computed; the
// predictor of the Earley engine falls back to a less precise filter when
// FIRST is uninformative.
func (t *Table) makeFirst() {
	type edge struct {
		src, dest sparkle.Symbol
	}
	union := make(map[edge]struct{})
	t.first = make(map[sparkle.Symbol]*FirstSet)

	for _, rulelist := range t.rules {
		for _, p := range rulelist {
			if _, ok := t.first[p.LHS]; !ok {
				t.first[p.LHS] = newFirstSet()
			}
			if len(p.rhs) == 0 {
				t.first[p.LHS].nullable = true
				continue
			}
			head := p.rhs[0]
			if t.IsTerminal(head) {
				t.first[p.LHS].syms[head] = struct{}{}
			} else {
				union[edge{src: head, dest: p.LHS}] = struct{}{}
			}
		}
	}

	changes := true
	for changes {
		changes = false
		for e := range union {
			if t.first[e.dest].update(t.first[e.src]) {
				changes = true
			}
		}
	}
	tracer().Debugf("FIRST sets recomputed for %d non-terminals", len(t.first))
}
