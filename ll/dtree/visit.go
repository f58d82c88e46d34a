package dtree

import "github.com/npillmayer/llgram"

// TopDown traverses the tree top-down, applying Listener-methods for all nodes
// encountered. It returns a user-defined value, calculated by the listener.
func (t *Tree) TopDown(listener Listener, dir Direction, breakmode Breakmode) interface{} {
	if t.Root == nil {
		return nil
	}
	tracer().Debugf("TopDown starting at node %v", t.Root)
	return traverseTopDown(t.Root, listener, dir, breakmode, 0)
}

func traverseTopDown(n *Node, listener Listener, dir Direction, breakmode Breakmode, level int) interface{} {
	if n.IsLeaf() && n.Kind != NonTerminal {
		return listener.Leaf(n, makeCtxt(n.Span, level))
	}
	ctxt := makeCtxt(n.Span, level)
	values := make([]interface{}, len(n.Children))
	doContinue := listener.EnterNode(n, ctxt)
	if doContinue || breakmode == Continue { // listener signalled us to traverse children nodes
		i := 0
		if dir == RtoL {
			i = len(n.Children) - 1
		}
		for ; i >= 0 && i < len(n.Children); i += int(dir) {
			values[i] = traverseTopDown(n.Children[i], listener, dir, breakmode, level+1)
		}
	}
	return listener.ExitNode(n, values, ctxt)
}

// Direction lets clients decide wether children nodes should be traversed left-to-right
// (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// --- Listener --------------------------------------------------------------

// Listener is a type for walking a derivation tree.
//
// EnterNode is called for inner nodes (and for non-terminals left unexpanded by
// a rejected parse) and returns a boolean value indicating if the traversal
// should continue to the children of this node. ExitNode receives the values
// calculated for the children and may return a user-defined value to be
// propagated upwards. Leaf is called for terminal, epsilon and finish leaves.
type Listener interface {
	EnterNode(*Node, NodeCtxt) bool
	ExitNode(*Node, []interface{}, NodeCtxt) interface{}
	Leaf(*Node, NodeCtxt) interface{}
}

// NodeCtxt is a context structure for Listeners.
type NodeCtxt struct {
	Span  llgram.Span // span of input tokens covered by this node
	Level int         // nesting level
}

func makeCtxt(span llgram.Span, level int) NodeCtxt {
	return NodeCtxt{
		Span:  span,
		Level: level,
	}
}
