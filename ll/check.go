package ll

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// MalformedGrammarError lists non-terminals, reachable from the start symbol,
// which keep every derivation from terminating.
type MalformedGrammarError struct {
	Grammar      string
	Undefined    []string // referenced, but without any production
	Unproductive []string // cannot derive any string of terminals
	NoBaseCase   []string // left recursive without a non-recursive alternative
}

func (e *MalformedGrammarError) Error() string {
	var parts []string
	if len(e.Undefined) > 0 {
		parts = append(parts, fmt.Sprintf("no productions for %v", e.Undefined))
	}
	if len(e.NoBaseCase) > 0 {
		parts = append(parts, fmt.Sprintf("left recursion without base case for %v", e.NoBaseCase))
	}
	if len(e.Unproductive) > 0 {
		parts = append(parts, fmt.Sprintf("unproductive %v", e.Unproductive))
	}
	return fmt.Sprintf("malformed grammar %s: %s", e.Grammar, strings.Join(parts, "; "))
}

// Check looks for non-terminals which can never finish a derivation:
// non-terminals without productions, non-terminals which cannot derive a
// string of terminals, and non-terminals found to be left recursive without
// a base case during left recursion elimination. Only non-terminals reachable
// from the start symbol are considered. If any are found, Check returns a
// *MalformedGrammarError.
func (g *Grammar) Check() error {
	if g.start == "" {
		return nil
	}
	reachable := g.reachable()
	productive := g.productive()
	err := &MalformedGrammarError{Grammar: g.Name}
	for _, nt := range g.nonterms {
		if !reachable[nt] {
			continue
		}
		if len(g.prods.byLHS[nt]) == 0 {
			err.Undefined = append(err.Undefined, nt)
		}
		if g.noBase[nt] {
			err.NoBaseCase = append(err.NoBaseCase, nt)
		}
		if !productive[nt] {
			err.Unproductive = append(err.Unproductive, nt)
		}
	}
	if len(err.Undefined)+len(err.Unproductive)+len(err.NoBaseCase) == 0 {
		return nil
	}
	tracer().Errorf(err.Error())
	return err
}

func (g *Grammar) reachable() map[string]bool {
	seen := map[string]bool{g.start: true}
	work := []string{g.start}
	for len(work) > 0 {
		nt := work[len(work)-1]
		work = work[:len(work)-1]
		for _, p := range g.Alternatives(nt) {
			for _, sym := range p.RHS {
				if g.IsNonTerminal(sym) && !seen[sym] {
					seen[sym] = true
					work = append(work, sym)
				}
			}
		}
	}
	return seen
}

// productive is a least fixpoint: a non-terminal is productive if one of its
// productions consists of terminals, Epsilon and productive non-terminals only.
func (g *Grammar) productive() map[string]bool {
	productive := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		g.EachProduction(func(p *Production) {
			if productive[p.LHS] {
				return
			}
			ok := !slices.ContainsFunc(p.RHS, func(sym string) bool {
				return g.IsNonTerminal(sym) && !productive[sym]
			})
			if ok {
				productive[p.LHS] = true
				changed = true
			}
		})
	}
	return productive
}
