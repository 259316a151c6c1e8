package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sparkle"
)

func TestSplitAlternates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.grammar")
	defer teardown()
	//
	tests := []struct {
		rule string
		alts []alternate
	}{
		{"root ::= 'a' 'b'", []alternate{
			{"root", []sparkle.Symbol{"a", "b"}},
		}},
		{"root ::=", []alternate{
			{"root", []sparkle.Symbol{}},
		}},
		{"root ::= | root 'x'", []alternate{
			{"root", []sparkle.Symbol{}},
			{"root", []sparkle.Symbol{"root", "x"}},
		}},
		{"expr ::= expr '+' expr | '1'", []alternate{
			{"expr", []sparkle.Symbol{"expr", "+", "expr"}},
			{"expr", []sparkle.Symbol{"1"}},
		}},
		{"A ::= 'x' B ::= 'y'", []alternate{
			{"A", []sparkle.Symbol{"x"}},
			{"B", []sparkle.Symbol{"y"}},
		}},
	}
	for _, test := range tests {
		alts := splitAlternates(test.rule)
		if len(alts) != len(test.alts) {
			t.Errorf("%q: expected %d alternates, got %d", test.rule, len(test.alts), len(alts))
			continue
		}
		for i, alt := range alts {
			if alt.lhs != test.alts[i].lhs {
				t.Errorf("%q: alternate %d has LHS %q, expected %q", test.rule, i, alt.lhs, test.alts[i].lhs)
			}
			if len(alt.rhs) != len(test.alts[i].rhs) {
				t.Errorf("%q: alternate %d has %d RHS symbols, expected %d", test.rule, i,
					len(alt.rhs), len(test.alts[i].rhs))
				continue
			}
			for j, sym := range alt.rhs {
				if sym != test.alts[i].rhs[j] {
					t.Errorf("%q: alternate %d RHS[%d] is %q, expected %q", test.rule, i, j,
						sym, test.alts[i].rhs[j])
				}
			}
		}
	}
}

func TestTableInstallsStartProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.grammar")
	defer teardown()
	//
	table := NewTable("")
	start := table.StartProduction()
	if start.LHS != sparkle.Start {
		t.Errorf("expected start production LHS to be START, is %s", start.LHS)
	}
	rhs := start.RHS()
	if len(rhs) != 2 || rhs[0] != "root" || rhs[1] != sparkle.EOF {
		t.Errorf("expected start production RHS to be [root EOF], is %v", rhs)
	}
	if v := start.Action()([]interface{}{42}); v != 42 {
		t.Errorf("expected start action to be the identity on child 0, returned %v", v)
	}
}

func TestTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.grammar")
	defer teardown()
	//
	table := NewTable("root")
	table.AddProduction("p_root", "root ::= A 'a'", nil)
	table.AddProduction("p_a", "A ::= 'b'", nil)
	if table.IsTerminal("root") || table.IsTerminal("A") {
		t.Errorf("root and A appear as LHS, should not be terminals")
	}
	if !table.IsTerminal("a") || !table.IsTerminal("b") {
		t.Errorf("a and b never appear as LHS, should be terminals")
	}
}

func TestPreprocessHook(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.grammar")
	defer teardown()
	//
	table := NewTable("root")
	hooked := 0
	table.Preprocess = func(p *Production, action Action) (*Production, Action) {
		hooked++
		return p, action
	}
	table.AddProduction("p_root", "root ::= 'a' | 'b'", nil)
	if hooked != 2 {
		t.Errorf("expected preprocess hook to run once per alternate (2), ran %d times", hooked)
	}
	// The synthetic start production is exempt.
	if table.Size() != 3 {
		t.Errorf("expected 3 productions in the table, got %d", table.Size())
	}
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.grammar")
	defer teardown()
	//
	table := NewTable("S")
	table.AddProduction("p_s", "S ::= A 'a'", nil)
	table.AddProduction("p_a", "A ::= B", nil)
	table.AddProduction("p_b", "B ::= 'b' | ", nil)
	table.Freeze()
	//
	first := table.First("B")
	if !first.Contains("b") || !first.Nullable() {
		t.Errorf("expected FIRST(B) = {b, ε}, got %v nullable=%v", first.Symbols(), first.Nullable())
	}
	first = table.First("A") // propagated from B, including the nullable marker
	if !first.Contains("b") || !first.Nullable() {
		t.Errorf("expected FIRST(A) = {b, ε}, got %v nullable=%v", first.Symbols(), first.Nullable())
	}
	first = table.First("S") // propagated through the chain
	if !first.Contains("b") {
		t.Errorf("expected FIRST(S) to contain b, got %v", first.Symbols())
	}
	if table.First("a") != nil {
		t.Errorf("terminals have no FIRST entry")
	}
}

func TestRulesChangedLatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sparkle.grammar")
	defer teardown()
	//
	table := NewTable("S")
	table.AddProduction("p_s", "S ::= 'a'", nil)
	table.Freeze()
	if table.First("S").Contains("b") {
		t.Errorf("FIRST(S) should not contain b yet")
	}
	table.Freeze() // no change, no recompute
	table.AddProduction("p_s2", "S ::= 'b'", nil)
	table.Freeze() // latch flipped, recompute
	if !table.First("S").Contains("b") {
		t.Errorf("expected FIRST(S) to contain b after adding S ::= 'b'")
	}
}
