/*
Package dtree implements derivation trees, as built by a predictive parser.

A derivation tree records the expansions a top-down parser applied to accept
(or reject) a sentence. Every inner node is a non-terminal, labeled with the
production it has been expanded with; leaves are terminals matched against the
input, epsilon markers, or the end-of-input marker.

The tree is single-owner: every node belongs to exactly one parent, the root
belongs to the Tree. Once the parser is done with it, a tree is read-only and
may be walked by any number of goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dtree

import (
	"fmt"

	"github.com/npillmayer/llgram"
	"github.com/npillmayer/llgram/ll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llgram.ll'.
func tracer() tracing.Trace {
	return tracing.Select("llgram.ll")
}

// Kind is the category of a tree node.
type Kind int

// Node kinds
const (
	Terminal Kind = iota
	NonTerminal
	Finish
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "TERMINAL"
	case NonTerminal:
		return "NONTERMINAL"
	case Finish:
		return "FINISH"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// RootSymbol is the symbol of the synthetic root node, which has the start
// symbol and the Finish marker as children.
const RootSymbol = "⊤"

// Node is a node of a derivation tree. Children are ordered left to right,
// matching the right-hand side of Production.
type Node struct {
	Symbol     string
	Kind       Kind
	Production ll.Handle   // production this node has been expanded with, or ll.NoHandle
	Span       llgram.Span // input positions covered, null for epsilon
	Children   []*Node
}

// NewNode creates a leaf node without a production.
func NewNode(sym string, kind Kind) *Node {
	return &Node{Symbol: sym, Kind: kind, Production: ll.NoHandle}
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsEpsilon is true for epsilon leaves.
func (n *Node) IsEpsilon() bool {
	return n.Symbol == ll.Epsilon
}

func (n *Node) String() string {
	if n.Production != ll.NoHandle {
		return fmt.Sprintf("%s/%d%v", n.Symbol, n.Production, n.Span)
	}
	return fmt.Sprintf("%s%v", n.Symbol, n.Span)
}

// --- Tree ------------------------------------------------------------------

// Tree is a derivation tree, the result of a single parse.
type Tree struct {
	Root      *Node
	rejection *Rejection
}

// Rejection describes why a sentence has not been accepted.
type Rejection struct {
	Position int    // index of the input token where parsing stopped
	Token    string // input token at Position, Finish if input was exhausted
	Symbol   string // symbol on top of the stack, "" if the stack was empty
	Reason   string
}

func (r *Rejection) String() string {
	return fmt.Sprintf("rejected at token #%d %q (stack top %q): %s", r.Position, r.Token, r.Symbol, r.Reason)
}

// Finished wraps the root of a completed parse into a tree. A nil rejection
// means the sentence has been accepted. Spans of inner nodes are computed from
// their children.
func Finished(root *Node, rejection *Rejection) *Tree {
	if root != nil {
		spanOf(root)
	}
	return &Tree{Root: root, rejection: rejection}
}

func spanOf(n *Node) llgram.Span {
	for _, ch := range n.Children {
		n.Span = n.Span.Extend(spanOf(ch))
	}
	return n.Span
}

// Accepted is true if the parser consumed the complete input exactly when
// its stack became empty.
func (t *Tree) Accepted() bool {
	return t.rejection == nil
}

// Rejection returns the reason for rejecting the sentence, or nil.
func (t *Tree) Rejection() *Rejection {
	return t.rejection
}

// Depth returns the number of edges on the longest path from the root to a leaf.
func (t *Tree) Depth() int {
	if t.Root == nil {
		return 0
	}
	var depth func(*Node) int
	depth = func(n *Node) int {
		d := 0
		for _, ch := range n.Children {
			if dd := depth(ch) + 1; dd > d {
				d = dd
			}
		}
		return d
	}
	return depth(t.Root)
}

// Size returns the number of nodes.
func (t *Tree) Size() int {
	n := 0
	t.Walk(func(*Node, int) { n++ })
	return n
}

// Leaves returns all leaves, left to right.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	t.Walk(func(n *Node, _ int) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	})
	return leaves
}

// Yield returns the terminals matched, left to right. Epsilon and Finish
// leaves are not part of the yield, neither are unexpanded non-terminals.
// Terminals of a rejected tree which were predicted but never matched have
// a null span and are left out as well.
func (t *Tree) Yield() []string {
	var y []string
	for _, n := range t.Leaves() {
		if n.Kind == Terminal && !n.IsEpsilon() && !n.Span.IsNull() {
			y = append(y, n.Symbol)
		}
	}
	return y
}

// Walk visits all nodes depth-first, left to right, parents before children.
func (t *Tree) Walk(f func(n *Node, level int)) {
	if t.Root == nil {
		return
	}
	var walk func(*Node, int)
	walk = func(n *Node, level int) {
		f(n, level)
		for _, ch := range n.Children {
			walk(ch, level+1)
		}
	}
	walk(t.Root, 0)
}
