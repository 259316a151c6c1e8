/*
Package ast provides generic syntax-tree nodes for grammar actions.

Grammar actions may return anything; this package offers a reasonable
default: a Node holds a name and the child values collected during
reduction. Walk visits nodes in pre-order, descending through nested
child slices. Builder is a preprocess hook for a grammar table which
replaces every production's action with one constructing Nodes, so that
a parse run materializes an AST without per-production plumbing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import (
	"fmt"
	"strings"

	"github.com/npillmayer/sparkle/grammar"
)

// Node is a node in a generated AST. Children hold whatever the actions
// of sub-productions returned: nested *Nodes, tokens, or plain values.
type Node struct {
	Name     string
	Children []interface{}
}

func (n *Node) String() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Name)
	for _, child := range n.Children {
		fmt.Fprintf(&b, " %v", child)
	}
	b.WriteString(">")
	return b.String()
}

// Walk visits the subtree below n in pre-order, calling visit once for
// each Node. Non-node children are skipped; slices of children are
// descended into.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		walkValue(child, visit)
	}
}

func walkValue(value interface{}, visit func(*Node)) {
	switch c := value.(type) {
	case *Node:
		c.Walk(visit)
	case []interface{}:
		for _, e := range c {
			walkValue(e, visit)
		}
	}
}

// Complexity returns a number indicating the complexity of this node:
// the count of Nodes in its subtree.
func (n *Node) Complexity() int {
	total := 0
	n.Walk(func(*Node) {
		total++
	})
	return total
}

// Builder returns a preprocess hook which replaces every production's
// action with one building a *Node. The node name is taken from the
// production's display name, falling back to its LHS. Assign the result
// to a table's Preprocess field before registering rules; previously
// registered actions are unaffected.
func Builder() grammar.PreprocessFunc {
	return func(p *grammar.Production, _ grammar.Action) (*grammar.Production, grammar.Action) {
		return p, func(children []interface{}) interface{} {
			name := p.Name
			if name == "" {
				name = string(p.LHS)
			}
			return &Node{Name: name, Children: children}
		}
	}
}
