package ll

import (
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/exp/slices"
)

// ElimOption configures left-recursion elimination.
type ElimOption func(e *eliminator)

// KeepSubstituted keeps the productions of a non-terminal even if substitution
// left it unreferenced. The default is taken from configuration key
// "ll-keep-substituted".
func KeepSubstituted(b bool) ElimOption {
	return func(e *eliminator) {
		e.keepSubstituted = b
	}
}

type eliminator struct {
	keepSubstituted bool
}

// EliminateLeftRecursion rewrites g such that no non-terminal derives a
// sentential form starting with itself, neither directly nor through a chain
// of leading non-terminals. g is consumed; clients have to continue with the
// grammar returned.
//
// Non-terminals are processed in construction order A1…An. A non-terminal Ai
// which does not reach itself through leading non-terminals is left alone.
// Otherwise every production of Ai starting with an earlier Aj is expanded by
// the alternatives of Aj. Then immediate left recursion of Ai is removed by
// splitting off a fresh non-terminal:
//
//     A -> A x | y     becomes     A  -> y A1
//                                  A1 -> x A1 | #
//
// If a pass changed the grammar and left recursion remains, the scan starts
// over with A1.
//
// Recursion hidden behind a nullable prefix (S -> B S x with B =>* #) is not
// detected here. The predictive parser rejects input running into such a
// cycle.
//
// A non-terminal with left recursive alternatives only (A -> A x) ends up
// without any production. This is not fixed silently, but recorded and
// reported by Grammar.Check.
func EliminateLeftRecursion(g *Grammar, opts ...ElimOption) *Grammar {
	e := &eliminator{
		keepSubstituted: gconf.GetBool("ll-keep-substituted"),
	}
	for _, opt := range opts {
		opt(e)
	}
	tracer().Debugf("=== eliminate left recursion ====================")
	for pass, maxPasses := 1, len(g.nonterms)+1; pass <= maxPasses; pass++ {
		changed := false
		order := slices.Clone(g.nonterms)
		for i, ai := range order {
			if !g.IsNonTerminal(ai) || !g.leadsTo(ai, ai) {
				continue
			}
			for _, aj := range order[:i] {
				if g.IsNonTerminal(aj) && e.substitute(g, ai, aj) {
					changed = true
				}
			}
			if eliminateImmediate(g, ai) {
				tracer().Debugf("left recursion of %s eliminated", ai)
				changed = true
			}
		}
		if !changed {
			break
		}
		lr := LeftRecursive(g)
		if len(lr) == 0 {
			break
		}
		tracer().Debugf("pass %d left %v left recursive, restarting", pass, lr)
	}
	if lr := LeftRecursive(g); len(lr) > 0 {
		tracer().Errorf("non-terminals %v are still left recursive", lr)
	}
	return g
}

// substitute expands every alternative ai -> aj rest into ai -> γ rest for
// all alternatives aj -> γ. It returns true if ai changed.
func (e *eliminator) substitute(g *Grammar, ai, aj string) bool {
	bases := g.Alternatives(aj)
	if len(bases) == 0 {
		return false // nothing to expand with; Check will complain about aj
	}
	substituted := false
	for _, p := range g.Alternatives(ai) {
		if p.RHS[0] != aj {
			continue
		}
		g.RemoveProduction(p.ID)
		for _, q := range bases {
			g.AddProduction(ai, concat(q.RHS, p.RHS[1:]))
		}
		substituted = true
	}
	if !substituted || e.keepSubstituted || aj == g.start || g.isReferenced(aj) {
		return substituted
	}
	tracer().Debugf("%s is no longer referenced, dropping its productions", aj)
	for _, q := range g.Alternatives(aj) {
		g.RemoveProduction(q.ID)
	}
	g.removeNonTerminal(aj)
	return true
}

// eliminateImmediate removes immediate left recursion of non-terminal a.
// It returns true if the grammar changed.
func eliminateImmediate(g *Grammar, a string) bool {
	var recursive, base []*Production
	selfLoops := false
	for _, p := range g.Alternatives(a) {
		switch {
		case p.RHS[0] == a && len(p.RHS) == 1:
			selfLoops = true // A -> A derives nothing new
			g.RemoveProduction(p.ID)
		case p.RHS[0] == a:
			recursive = append(recursive, p)
		default:
			base = append(base, p)
		}
	}
	if len(recursive) == 0 {
		return selfLoops
	}
	fresh := g.freshNonTerminal(a)
	tracer().Debugf("splitting %s off from left recursive %s", fresh, a)
	for _, p := range base {
		g.RemoveProduction(p.ID)
		if p.IsEpsilon() {
			g.AddProduction(a, []string{fresh})
		} else {
			g.AddProduction(a, append(slices.Clone(p.RHS), fresh))
		}
	}
	for _, p := range recursive {
		g.RemoveProduction(p.ID)
		g.AddProduction(fresh, append(slices.Clone(p.RHS[1:]), fresh))
	}
	g.AddProduction(fresh, []string{Epsilon})
	if len(base) == 0 {
		tracer().Errorf("non-terminal %s is left recursive without a base case", a)
		g.noBase[a] = true
	}
	return true
}

// isReferenced is true if nt occurs in a production of another non-terminal.
func (g *Grammar) isReferenced(nt string) bool {
	for _, p := range g.prods.arena {
		if p != nil && p.LHS != nt && slices.Contains(p.RHS, nt) {
			return true
		}
	}
	return false
}

// concat joins two symbol sequences, dropping Epsilon markers. If nothing
// remains, the result is [Epsilon].
func concat(x, y []string) []string {
	r := make([]string, 0, len(x)+len(y))
	for _, sym := range x {
		if sym != Epsilon {
			r = append(r, sym)
		}
	}
	for _, sym := range y {
		if sym != Epsilon {
			r = append(r, sym)
		}
	}
	if len(r) == 0 {
		return []string{Epsilon}
	}
	return r
}

// ImmediateLeftRecursive returns all non-terminals with an alternative
// starting with the non-terminal itself.
func ImmediateLeftRecursive(g *Grammar) []string {
	var r []string
	for _, nt := range g.nonterms {
		for _, p := range g.Alternatives(nt) {
			if p.RHS[0] == nt {
				r = append(r, nt)
				break
			}
		}
	}
	return r
}

// LeftRecursive returns all non-terminals which reach themselves through a
// chain of leading non-terminals, e.g. A -> B x, B -> C y, C -> A z.
// Chains through nullable prefixes are not followed.
func LeftRecursive(g *Grammar) []string {
	var r []string
	for _, nt := range g.nonterms {
		if g.leadsTo(nt, nt) {
			r = append(r, nt)
		}
	}
	return r
}

// leadsTo is true if a sentential form derived from 'from' in one or more
// steps starts with 'to', looking at the leading symbol of alternatives only.
func (g *Grammar) leadsTo(from, to string) bool {
	seen := map[string]bool{}
	todo := []string{from}
	for len(todo) > 0 {
		nt := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for _, p := range g.Alternatives(nt) {
			lead := p.RHS[0]
			if !g.IsNonTerminal(lead) {
				continue
			}
			if lead == to {
				return true
			}
			if !seen[lead] {
				seen[lead] = true
				todo = append(todo, lead)
			}
		}
	}
	return false
}
