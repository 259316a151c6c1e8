package earley

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/sparkle"
)

// --- Ambiguity resolution ----------------------------------------------

// Resolver is an ambiguity resolution policy. When the back-pointer map
// holds more than one derivation child for an item, the resolver receives
// the display names of the candidate productions, pre-sorted by ascending
// (RHS length, name), and picks one.
//
// The default policy returns the first candidate: shortest RHS wins, ties
// broken alphabetically. Since the tree is walked from the top down, this
// effectively resolves in favor of a "shift". Clients may inject a
// different strategy, e.g. one driven by priority tables.
type Resolver func(candidates []string) string

// DefaultResolver resolves ambiguity in favor of the shortest RHS.
func DefaultResolver(candidates []string) string {
	return candidates[0]
}

// ambiguity picks one of several derivation children via the resolver.
//
// If distinct productions carry identical display names, resolution may
// select unpredictably among them; among same-named candidates the last
// one encountered wins. This is an accepted limitation.
func (p *Parser) ambiguity(children []extentRef) extentRef {
	type candidate struct {
		rhsLen int
		name   string
	}
	sortlist := make([]candidate, len(children))
	name2index := make(map[string]int, len(children))
	for i, c := range children {
		prod := p.table.Production(c.it.rule)
		sortlist[i] = candidate{rhsLen: len(prod.RHS()), name: prod.Name}
		name2index[prod.Name] = i
	}
	sort.Slice(sortlist, func(a, b int) bool {
		if sortlist[a].rhsLen != sortlist[b].rhsLen {
			return sortlist[a].rhsLen < sortlist[b].rhsLen
		}
		return sortlist[a].name < sortlist[b].name
	})
	names := make([]string, len(sortlist))
	for i, c := range sortlist {
		names[i] = c.name
	}
	return children[name2index[p.resolver(names)]]
}

// --- Tree materialization ----------------------------------------------

// buildTree walks the back-pointer map top-down from the accepting item
// and materializes the parse result, i.e. the value returned by the start
// production's action.
func (p *Parser) buildTree(tokens []sparkle.Token, root item, state uint64) (interface{}, error) {
	var stack []interface{}
	if _, err := p.buildTreeRec(&stack, tokens, len(tokens)-1, root, state); err != nil {
		return nil, err
	}
	return stack[0], nil
}

// buildTreeRec processes one item: while the dot is right of position 0,
// each advance was either a scanner step (no back-pointer entry: pop a
// token, walking the token cursor right-to-left) or a completer step
// (recurse into the chosen sub-item). Finally the production's action is
// invoked with the collected |RHS| children in left-to-right order.
func (p *Parser) buildTreeRec(stack *[]interface{}, tokens []sparkle.Token, tokpos int,
	it item, state uint64) (int, error) {
	//
	dot := it.dot
	prod := p.table.Production(it.rule)
	for dot > 0 {
		want := item{rule: it.rule, dot: dot, origin: it.origin}
		children, ok := p.tree[backlinkKey(want, state)]
		if !ok {
			// Since dot > 0, and the item isn't in the back-pointer map,
			// there must be a terminal symbol to the left of the dot.
			// (It must be from a "scanner" step.)
			if tokpos < 0 || state == 0 {
				return tokpos, stuck(fmt.Sprintf("token run exhausted while materializing %v", prod))
			}
			dot--
			state--
			*stack = append([]interface{}{tokens[tokpos]}, *stack...)
			tokpos--
			continue
		}
		// There's a non-terminal to the left of the dot. Follow the
		// back-pointer (more than one entry indicates ambiguity). Since
		// the item came about from a "completer" step, the state to
		// continue at is the origin of the chosen sub-item.
		child := children[0]
		if len(children) > 1 {
			child = p.ambiguity(children)
		}
		var err error
		if tokpos, err = p.buildTreeRec(stack, tokens, tokpos, child.it, child.state); err != nil {
			return tokpos, err
		}
		dot--
		state = child.it.origin
	}
	rhsLen := len(prod.RHS())
	children := append([]interface{}(nil), (*stack)[:rhsLen]...)
	result := p.invoke(prod.Action(), children)
	*stack = append([]interface{}{result}, (*stack)[rhsLen:]...)
	return tokpos, nil
}

// invoke calls a production's action. A nil action defaults to the
// identity: the single child, or the child slice for other arities.
func (p *Parser) invoke(action func([]interface{}) interface{}, children []interface{}) interface{} {
	if action == nil {
		if len(children) == 1 {
			return children[0]
		}
		return children
	}
	return action(children)
}

func stuck(msg string) error {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`Earley-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return sparkle.Internal(0, "parser is stuck: %s", msg)
}
