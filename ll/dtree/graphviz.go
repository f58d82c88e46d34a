package dtree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/llgram/ll"
)

// ToGraphViz exports a derivation tree to the Graphviz Dot format.
func ToGraphViz(tree *Tree, w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	ids := make(map[*Node]int)
	tree.Walk(func(n *Node, _ int) {
		id := len(ids)
		ids[n] = id
		bw.WriteString(fmt.Sprintf("n%04d [fillcolor=%s label=\"%s\"]\n", id, nodecolor(n), nodelabel(n)))
	})
	tree.Walk(func(n *Node, _ int) {
		for _, ch := range n.Children {
			bw.WriteString(fmt.Sprintf("n%04d -> n%04d\n", ids[n], ids[ch]))
		}
	})
	bw.WriteString("}\n")
	return bw.Flush()
}

func nodecolor(n *Node) string {
	switch {
	case n.Kind == NonTerminal && n.Production == ll.NoHandle && n.Symbol != RootSymbol:
		return "lightpink" // left unexpanded by a rejected parse
	case n.Kind == NonTerminal:
		return "white"
	case n.IsEpsilon() || n.Kind == Finish:
		return "lightgray"
	}
	return "lightblue"
}

func nodelabel(n *Node) string {
	sym := forGraphviz(n.Symbol)
	if n.Kind == NonTerminal && n.Production != ll.NoHandle {
		return fmt.Sprintf("{%s | %d}", sym, n.Production)
	}
	return sym
}

var dotEscaper = strings.NewReplacer(
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

func forGraphviz(s string) string {
	return dotEscaper.Replace(s)
}
