package ll

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/slices"
)

// Reserved symbols.
const (
	Epsilon = "#" // marker for the empty right-hand side
	Finish  = "$" // end of input
)

// Handle identifies a production. Handles are assigned from a monotonically
// increasing counter and are never reused, even after the production they
// denote has been removed.
type Handle int

// NoHandle is the null value for handles.
const NoHandle Handle = -1

// Production is a grammar rule
//
//     LHS -> RHS[0] RHS[1] …
//
// An epsilon production has the right-hand side [Epsilon].
// Productions are immutable once they are part of a grammar. Rewriting a
// production means removing it and inserting a new one.
type Production struct {
	ID  Handle
	LHS string
	RHS []string
}

// IsEpsilon is true for productions LHS -> #.
func (p *Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && p.RHS[0] == Epsilon
}

func (p *Production) String() string {
	return fmt.Sprintf("%s -> %s", p.LHS, strings.Join(p.RHS, " "))
}

// --- Production store ------------------------------------------------------

// productionStore is an arena of productions, indexed by handle. Removed
// productions leave a nil slot behind, so a handle always denotes the same
// production or none at all.
type productionStore struct {
	arena []*Production
	byLHS map[string][]Handle // alternatives per non-terminal, in insertion order
}

func newProductionStore() *productionStore {
	return &productionStore{
		arena: make([]*Production, 0, 32),
		byLHS: make(map[string][]Handle),
	}
}

func (ps *productionStore) add(lhs string, rhs []string) Handle {
	h := Handle(len(ps.arena))
	ps.arena = append(ps.arena, &Production{ID: h, LHS: lhs, RHS: rhs})
	ps.byLHS[lhs] = append(ps.byLHS[lhs], h)
	return h
}

func (ps *productionStore) lookup(h Handle) (*Production, bool) {
	if h < 0 || int(h) >= len(ps.arena) || ps.arena[h] == nil {
		return nil, false
	}
	return ps.arena[h], true
}

func (ps *productionStore) remove(h Handle) *Production {
	p, ok := ps.lookup(h)
	if !ok {
		panic(fmt.Sprintf("ll: remove of unknown or removed production handle %d", h))
	}
	ps.arena[h] = nil
	alts := ps.byLHS[p.LHS]
	if i := slices.Index(alts, h); i >= 0 {
		alts = slices.Delete(alts, i, i+1)
	}
	if len(alts) == 0 {
		delete(ps.byLHS, p.LHS)
	} else {
		ps.byLHS[p.LHS] = alts
	}
	return p
}

// copy duplicates the bookkeeping. Productions are immutable and therefore shared.
func (ps *productionStore) copy() *productionStore {
	c := &productionStore{
		arena: slices.Clone(ps.arena),
		byLHS: make(map[string][]Handle, len(ps.byLHS)),
	}
	for lhs, alts := range ps.byLHS {
		c.byLHS[lhs] = slices.Clone(alts)
	}
	return c
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar: a set of non-terminals, a set of
// terminals, a production store and a start symbol.
//
// Symbols are plain strings, classified by set membership. The reserved
// symbols Epsilon and Finish are neither terminals nor non-terminals.
//
// A grammar is mutated in place by the rewriting stages. It must not be shared
// between goroutines while it is being rewritten; after analysis it is read-only.
type Grammar struct {
	Name      string
	start     string
	nonterms  []string        // in construction order
	ntset     map[string]bool // membership of nonterms
	terminals *treeset.Set    // ordered set of strings
	prods     *productionStore
	fresh     map[string]int  // counters for fresh non-terminal names, per base name
	noBase    map[string]bool // self-recursive non-terminals without a base alternative
}

// NewGrammar creates an empty grammar. Clients usually create grammars
// with a GrammarBuilder.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:      name,
		ntset:     make(map[string]bool),
		terminals: treeset.NewWith(utils.StringComparator),
		prods:     newProductionStore(),
		fresh:     make(map[string]int),
		noBase:    make(map[string]bool),
	}
}

// Copy creates a deep copy of g. Production handles are preserved.
func (g *Grammar) Copy() *Grammar {
	c := &Grammar{
		Name:      g.Name,
		start:     g.start,
		nonterms:  slices.Clone(g.nonterms),
		ntset:     make(map[string]bool, len(g.ntset)),
		terminals: treeset.NewWith(utils.StringComparator, g.terminals.Values()...),
		prods:     g.prods.copy(),
		fresh:     make(map[string]int, len(g.fresh)),
		noBase:    make(map[string]bool, len(g.noBase)),
	}
	for k, v := range g.ntset {
		c.ntset[k] = v
	}
	for k, v := range g.fresh {
		c.fresh[k] = v
	}
	for k, v := range g.noBase {
		c.noBase[k] = v
	}
	return c
}

// Start returns the start symbol, or "" for an empty grammar.
func (g *Grammar) Start() string {
	return g.start
}

// SetStart makes a non-terminal the start symbol.
func (g *Grammar) SetStart(nt string) {
	if !g.IsNonTerminal(nt) {
		panic(fmt.Sprintf("ll: start symbol %q is not a non-terminal", nt))
	}
	g.start = nt
}

// AddNonTerminal declares a non-terminal. Declaring a known non-terminal is a no-op.
// The first non-terminal declared becomes the start symbol.
func (g *Grammar) AddNonTerminal(nt string) {
	if g.ntset[nt] {
		return
	}
	if isReserved(nt) || g.IsTerminal(nt) {
		panic(fmt.Sprintf("ll: cannot declare %q as a non-terminal", nt))
	}
	g.ntset[nt] = true
	g.nonterms = append(g.nonterms, nt)
	if g.start == "" {
		g.start = nt
	}
}

// AddTerminal declares a terminal. Declaring a known terminal is a no-op.
func (g *Grammar) AddTerminal(t string) {
	if isReserved(t) || g.IsNonTerminal(t) {
		panic(fmt.Sprintf("ll: cannot declare %q as a terminal", t))
	}
	g.terminals.Add(t)
}

// removeNonTerminal drops a non-terminal without productions from the grammar.
func (g *Grammar) removeNonTerminal(nt string) {
	if len(g.prods.byLHS[nt]) > 0 {
		panic(fmt.Sprintf("ll: non-terminal %q still has productions", nt))
	}
	delete(g.ntset, nt)
	delete(g.noBase, nt)
	if i := slices.Index(g.nonterms, nt); i >= 0 {
		g.nonterms = slices.Delete(g.nonterms, i, i+1)
	}
}

// IsTerminal is true if sym is in the terminal set.
func (g *Grammar) IsTerminal(sym string) bool {
	return g.terminals.Contains(sym)
}

// IsNonTerminal is true if sym is in the non-terminal set.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.ntset[sym]
}

// NonTerminals returns the non-terminals in construction order. Non-terminals
// introduced by rewriting are appended at the end.
func (g *Grammar) NonTerminals() []string {
	return slices.Clone(g.nonterms)
}

// Terminals returns the terminals in lexicographic order.
func (g *Grammar) Terminals() []string {
	return stringValues(g.terminals)
}

// AddProduction inserts a production lhs -> rhs and returns its handle.
// lhs has to be a non-terminal and every symbol of rhs has to be declared
// (or be Epsilon). An empty rhs is stored as [Epsilon].
func (g *Grammar) AddProduction(lhs string, rhs []string) Handle {
	if !g.IsNonTerminal(lhs) {
		panic(fmt.Sprintf("ll: left-hand side %q of production is not a non-terminal", lhs))
	}
	for _, sym := range rhs {
		if sym != Epsilon && !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
			panic(fmt.Sprintf("ll: undeclared symbol %q in production for %s", sym, lhs))
		}
	}
	if len(rhs) == 0 {
		rhs = []string{Epsilon}
	}
	h := g.prods.add(lhs, slices.Clone(rhs))
	tracer().Debugf("add  %3d: %s", h, g.prods.arena[h])
	return h
}

// RemoveProduction removes a production. Using h afterwards is an error.
func (g *Grammar) RemoveProduction(h Handle) {
	p := g.prods.remove(h)
	tracer().Debugf("drop %3d: %s", h, p)
}

// Production returns the production for a handle. It panics if h denotes
// no production or a removed one, as this is a programming error.
func (g *Grammar) Production(h Handle) *Production {
	p, ok := g.prods.lookup(h)
	if !ok {
		panic(fmt.Sprintf("ll: production handle %d is unknown or has been removed", h))
	}
	return p
}

// LookupProduction returns the production for a handle, if it exists.
func (g *Grammar) LookupProduction(h Handle) (*Production, bool) {
	return g.prods.lookup(h)
}

// Alternatives returns the productions of a non-terminal, in insertion order.
func (g *Grammar) Alternatives(nt string) []*Production {
	alts := g.prods.byLHS[nt]
	r := make([]*Production, len(alts))
	for i, h := range alts {
		r[i] = g.prods.arena[h]
	}
	return r
}

// EachProduction calls f for every production, in handle order.
func (g *Grammar) EachProduction(f func(p *Production)) {
	for _, p := range g.prods.arena {
		if p != nil {
			f(p)
		}
	}
}

// Productions returns all productions in handle order.
func (g *Grammar) Productions() []*Production {
	r := make([]*Production, 0, len(g.prods.arena))
	g.EachProduction(func(p *Production) {
		r = append(r, p)
	})
	return r
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	n := 0
	for _, alts := range g.prods.byLHS {
		n += len(alts)
	}
	return n
}

// freshNonTerminal allocates a new non-terminal, named after base.
// A trailing number of base is replaced, so splitting off from A1 results in
// A2 rather than A11.
func (g *Grammar) freshNonTerminal(base string) string {
	stem := strings.TrimRight(base, "0123456789")
	if stem == "" {
		stem = base
	}
	for {
		g.fresh[stem]++
		name := fmt.Sprintf("%s%d", stem, g.fresh[stem])
		if !g.IsNonTerminal(name) && !g.IsTerminal(name) {
			g.AddNonTerminal(name)
			return name
		}
	}
}

// Dump is a debugging helper, writing the productions to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s --------------------------------", g.Name)
	for _, nt := range g.nonterms {
		for _, p := range g.Alternatives(nt) {
			tracer().Debugf("%3d: %s", p.ID, p)
		}
	}
	tracer().Debugf("-------------------------------------------------")
}

// String lists the productions grouped by non-terminal, in construction order.
func (g *Grammar) String() string {
	var b bytes.Buffer
	b.WriteString(g.Name)
	b.WriteString("\n")
	for _, nt := range g.nonterms {
		for _, p := range g.Alternatives(nt) {
			b.WriteString(fmt.Sprintf("%3d: %s\n", p.ID, p))
		}
	}
	return b.String()
}

// Augment wraps the start symbol S of g into a new start symbol S' with the
// single production S' -> S.
func Augment(g *Grammar) *Grammar {
	if g.start == "" {
		return g
	}
	name := g.start + "'"
	for g.IsNonTerminal(name) || g.IsTerminal(name) {
		name += "'"
	}
	inner := g.start
	g.AddNonTerminal(name)
	g.AddProduction(name, []string{inner})
	g.SetStart(name)
	return g
}

func isReserved(sym string) bool {
	return sym == Epsilon || sym == Finish || sym == ""
}

func stringValues(set *treeset.Set) []string {
	r := make([]string, set.Size())
	for i, v := range set.Values() {
		r[i] = v.(string)
	}
	return r
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Use it like this:
//
//     b := NewGrammarBuilder("G")
//     b.LHS("S").N("A").T("a").End()
//     b.LHS("A").Epsilon()
//     g, err := b.Grammar()
//
// The first LHS will become the start symbol.
type GrammarBuilder struct {
	name  string
	rules []*RuleBuilder
}

// RuleBuilder is a production under construction.
type RuleBuilder struct {
	lhs     string
	rhs     []string
	isTerm  []bool
	b       *GrammarBuilder
	handle  Handle
	epsilon bool
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// LHS starts a production given the left hand side symbol (non-terminal).
func (b *GrammarBuilder) LHS(nt string) *RuleBuilder {
	r := &RuleBuilder{lhs: nt, b: b, handle: NoHandle}
	return r
}

// N appends a non-terminal to the right hand side.
func (r *RuleBuilder) N(nt string) *RuleBuilder {
	r.rhs = append(r.rhs, nt)
	r.isTerm = append(r.isTerm, false)
	return r
}

// T appends a terminal to the right hand side.
func (r *RuleBuilder) T(t string) *RuleBuilder {
	r.rhs = append(r.rhs, t)
	r.isTerm = append(r.isTerm, true)
	return r
}

// End closes a production. It returns the handle the production will
// receive in the grammar.
func (r *RuleBuilder) End() Handle {
	r.handle = Handle(len(r.b.rules))
	r.b.rules = append(r.b.rules, r)
	return r.handle
}

// Epsilon closes a production with an empty right hand side.
func (r *RuleBuilder) Epsilon() Handle {
	r.epsilon = true
	return r.End()
}

// Grammar returns the grammar built so far. An error is returned for
// reserved symbols used as terminals or non-terminals, and for names
// which are used as both a terminal and a non-terminal.
// A builder without any productions results in an empty grammar.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	nts := make(map[string]bool)
	terms := make(map[string]bool)
	for _, r := range b.rules {
		if isReserved(r.lhs) {
			return nil, fmt.Errorf("grammar %s: reserved symbol %q used as left-hand side", b.name, r.lhs)
		}
		nts[r.lhs] = true
		if r.epsilon && len(r.rhs) > 0 {
			return nil, fmt.Errorf("grammar %s: epsilon production for %s with symbols %v", b.name, r.lhs, r.rhs)
		}
		for i, sym := range r.rhs {
			if isReserved(sym) {
				return nil, fmt.Errorf("grammar %s: reserved symbol %q in production for %s", b.name, sym, r.lhs)
			}
			if r.isTerm[i] {
				terms[sym] = true
			} else {
				nts[sym] = true
			}
		}
	}
	for t := range terms {
		if nts[t] {
			return nil, fmt.Errorf("grammar %s: symbol %q used as terminal and as non-terminal", b.name, t)
		}
	}
	g := NewGrammar(b.name)
	for _, r := range b.rules { // declare non-terminals in order of appearance as LHS
		g.AddNonTerminal(r.lhs)
	}
	for _, r := range b.rules {
		for i, sym := range r.rhs {
			if r.isTerm[i] {
				g.AddTerminal(sym)
			} else {
				g.AddNonTerminal(sym)
			}
		}
	}
	for _, r := range b.rules {
		if r.epsilon {
			g.AddProduction(r.lhs, []string{Epsilon})
		} else {
			g.AddProduction(r.lhs, r.rhs)
		}
	}
	return g, nil
}
