/*
Package predict provides a table-driven predictive LL(1)-parser. Clients have
to use the tools of package ll to prepare the necessary parse table. The
parser utilizes this table to create a left-most derivation for a given
input, provided either as a sequence of words or through a scanner interface.

The parser is driven by an explicit symbol stack, not by recursion. It will
never backtrack: for every non-terminal on top of the stack the current input
token selects exactly one production, or the sentence is rejected.

Tables with conflicts may be used, but a parse with such a table may run into
an expansion cycle: a non-terminal gets expanded again below its own
expansion, without any token consumed in between. As the table is
deterministic, this would repeat forever. The parser rejects the sentence
instead (ReasonNoProgress).

Usage

Clients construct a grammar, usually by using a grammar builder, and make it
suitable for LL(1) parsing:

	b := ll.NewGrammarBuilder("a^n b^n")
	b.LHS("S").T("a").N("S").T("b").End()   // S -> a S b
	b.LHS("S").Epsilon()                    // S -> #
	g, err := b.Grammar()
	g = ll.LeftFactor(ll.EliminateLeftRecursion(g))

This grammar is subjected to grammar analysis and table generation.

	gen := ll.NewTableGenerator(ll.Analysis(g))
	gen.CreateTable()
	if gen.HasConflicts { ... }  // parse results will be unreliable

Finally parse some input:

	p := predict.NewParser(g, gen.Table())
	tree, err := p.Parse([]string{"a", "a", "b", "b"})
	if err == nil && tree.Accepted() { ... }

A rejected sentence is not an error. The tree of a rejected sentence holds
the derivation up to the point of failure, and the rejection tells why the
parser gave up.

A parser does not change after creation. It may be used by any number of
goroutines concurrently, as long as nobody modifies its grammar.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package predict

import (
	"errors"
	"strings"

	"github.com/npillmayer/llgram"
	"github.com/npillmayer/llgram/ll"
	"github.com/npillmayer/llgram/ll/dtree"
	"github.com/npillmayer/llgram/ll/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llgram.ll'.
func tracer() tracing.Trace {
	return tracing.Select("llgram.ll")
}

// ErrNotInitialized is returned for parsers lacking a grammar or a table.
var ErrNotInitialized = errors.New("LL(1)-parser not initialized")

// Reasons for rejecting a sentence.
const (
	ReasonNoStart      = "grammar has no start symbol"
	ReasonMismatch     = "unexpected token"
	ReasonNoEntry      = "no table entry"
	ReasonInputLeft    = "input left after derivation completed"
	ReasonStackNotDone = "input exhausted before derivation completed"
	ReasonNoProgress   = "expansion cycle without consuming input"
)

// Parser is an LL(1)-parser type. Create and initialize one with predict.NewParser(...)
type Parser struct {
	G          *ll.Grammar
	table      *ll.LL1Table
	traceSteps bool
}

// Option configures a parser.
type Option func(p *Parser)

// TraceSteps sets or clears tracing of every single parser step.
func TraceSteps(b bool) Option {
	return func(p *Parser) {
		p.traceSteps = b
	}
}

// NewParser creates an LL(1) parser.
func NewParser(g *ll.Grammar, table *ll.LL1Table, opts ...Option) *Parser {
	parser := &Parser{
		G:     g,
		table: table,
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// ParseTokens reads tokens from a scanner until EOF and parses their lexemes.
func (p *Parser) ParseTokens(scan scanner.Tokenizer) (*dtree.Tree, error) {
	if scan == nil {
		return nil, errors.New("LL(1)-parser called without a scanner")
	}
	return p.Parse(scanner.Collect(scan))
}

// Parse starts a new parse for a sentence, given as a sequence of terminals.
// The parser must have been initialized.
//
// The parser returns a derivation tree, which is accepted if the sentence
// belongs to the language of the grammar. An error is returned only for
// a parser without grammar or table.
func (p *Parser) Parse(sentence []string) (*dtree.Tree, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.table == nil {
		tracer().Errorf("LL(1)-parser not initialized")
		return nil, ErrNotInitialized
	}
	input := make([]string, len(sentence), len(sentence)+1)
	copy(input, sentence)
	input = append(input, ll.Finish)
	root := dtree.NewNode(dtree.RootSymbol, dtree.NonTerminal)
	start := p.G.Start()
	if start == "" {
		return rejected(root, 0, input[0], "", ReasonNoStart), nil
	}
	S := dtree.NewNode(start, dtree.NonTerminal)
	F := dtree.NewNode(ll.Finish, dtree.Finish)
	root.Children = []*dtree.Node{S, F}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{node: F}, frame{node: S}) // Finish is below start
	pos := 0
	for len(stack) > 0 && pos < len(input) {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1] // pop TOS
		tos := top.node
		token := input[pos]
		if p.traceSteps {
			tracer().Infof("%-20s | %-8s | %s", stackString(stack, tos), token, strings.Join(input[pos+1:], " "))
		}
		if tos.IsEpsilon() {
			continue
		}
		if tos.Kind != dtree.NonTerminal {
			if tos.Symbol != token {
				return rejected(root, pos, token, tos.Symbol, ReasonMismatch), nil
			}
			if tos.Kind == dtree.Terminal {
				tos.Span = llgram.Span{uint64(pos), uint64(pos + 1)}
			}
			tracer().Debugf("match %q at %d", token, pos)
			pos++
			continue
		}
		h, ok := p.table.Lookup(tos.Symbol, token)
		if !ok {
			tracer().Debugf("no entry for [%s,%s]", tos.Symbol, token)
			return rejected(root, pos, token, tos.Symbol, ReasonNoEntry), nil
		}
		if top.up.cycles(tos.Symbol, pos) {
			tracer().Errorf("%s re-expanded at %d without consuming input", tos.Symbol, pos)
			return rejected(root, pos, token, tos.Symbol, ReasonNoProgress), nil
		}
		prod := p.G.Production(h)
		tracer().Debugf("expand %v", prod)
		exp := &expansion{symbol: tos.Symbol, pos: pos, parent: top.up}
		tos.Production = h
		tos.Children = make([]*dtree.Node, len(prod.RHS))
		for i, sym := range prod.RHS {
			tos.Children[i] = dtree.NewNode(sym, p.kindOf(sym))
		}
		for i := len(tos.Children) - 1; i >= 0; i-- { // push in reverse order
			stack = append(stack, frame{node: tos.Children[i], up: exp})
		}
	}
	if len(stack) == 0 && pos == len(input) {
		tracer().Debugf("accepted sentence of length %d", len(sentence))
		return dtree.Finished(root, nil), nil
	}
	if len(stack) == 0 {
		return rejected(root, pos, input[pos], "", ReasonInputLeft), nil
	}
	return rejected(root, pos, ll.Finish, stack[len(stack)-1].node.Symbol, ReasonStackNotDone), nil
}

func (p *Parser) kindOf(sym string) dtree.Kind {
	if p.G.IsNonTerminal(sym) {
		return dtree.NonTerminal
	} else if sym == ll.Finish {
		return dtree.Finish
	}
	return dtree.Terminal // terminals and epsilon
}

func rejected(root *dtree.Node, pos int, token, sym, reason string) *dtree.Tree {
	r := &dtree.Rejection{
		Position: pos,
		Token:    token,
		Symbol:   sym,
		Reason:   reason,
	}
	tracer().Infof("%v", r)
	return dtree.Finished(root, r)
}

// --- Helpers ----------------------------------------------------------

// frame is a stack entry: a tree node waiting to be matched or expanded,
// together with the expansion which created it.
type frame struct {
	node *dtree.Node
	up   *expansion
}

// expansion records where a non-terminal has been expanded. Expansions link
// to the expansion of their parent node.
type expansion struct {
	symbol string
	pos    int
	parent *expansion
}

// cycles is true if sym has already been expanded at input position pos by
// an ancestor. Positions never decrease from parent to child, so the search
// stops at the first ancestor expanded before pos.
func (e *expansion) cycles(sym string, pos int) bool {
	for ; e != nil && e.pos == pos; e = e.parent {
		if e.symbol == sym {
			return true
		}
	}
	return false
}

// stackString is a short helper to stringify the parser stack, top of stack
// first.
func stackString(stack []frame, tos *dtree.Node) string {
	var b strings.Builder
	b.WriteString(tos.Symbol)
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(' ')
		b.WriteString(stack[i].node.Symbol)
	}
	return b.String()
}
