package ll

import (
	"strings"

	"golang.org/x/exp/slices"
)

// LeftFactor rewrites alternatives of a non-terminal which share a common
// prefix:
//
//     A -> a b | a c     becomes     A  -> a A1
//                                    A1 -> b | c
//
// Alternatives of a non-terminal are ordered symbol by symbol, so that
// alternatives with a common first symbol form a run. For each run of at least
// two alternatives, the longest prefix common to the whole run is moved into a
// production A -> prefix A1, and the suffixes become alternatives of the fresh
// non-terminal A1. An empty suffix becomes an epsilon alternative. After each
// factoring the scan starts over, as the new productions may share prefixes
// again.
//
// Only direct prefixes are factored, i.e. no non-terminals are expanded to
// uncover hidden common prefixes. g is consumed; clients have to continue with
// the grammar returned.
func LeftFactor(g *Grammar) *Grammar {
	tracer().Debugf("=== left factoring ==============================")
	for changed := true; changed; {
		changed = false
		for _, nt := range g.nonterms {
			if factorOnce(g, nt) {
				changed = true
				break
			}
		}
	}
	return g
}

// factorOnce factors the first run of alternatives of nt sharing a prefix.
// It returns true if the grammar changed.
func factorOnce(g *Grammar, nt string) bool {
	var alts []*Production
	for _, p := range g.Alternatives(nt) {
		if p.IsEpsilon() || p.RHS[0] == nt {
			continue // nothing to factor or still left recursive
		}
		alts = append(alts, p)
	}
	slices.SortStableFunc(alts, func(p, q *Production) int {
		return compareSymbols(p.RHS, q.RHS)
	})
	for i := 0; i < len(alts); {
		j := i + 1
		for j < len(alts) && alts[j].RHS[0] == alts[i].RHS[0] {
			j++
		}
		if j-i > 1 {
			factorRun(g, nt, alts[i:j])
			return true
		}
		i = j
	}
	return false
}

func factorRun(g *Grammar, nt string, run []*Production) {
	prefix := run[0].RHS
	for _, p := range run[1:] {
		prefix = commonPrefix(prefix, p.RHS)
	}
	prefix = slices.Clone(prefix)
	fresh := g.freshNonTerminal(nt)
	tracer().Debugf("factoring prefix %v of %s into %s", prefix, nt, fresh)
	seen := make(map[string]bool)
	for _, p := range run {
		g.RemoveProduction(p.ID)
		suffix := p.RHS[len(prefix):]
		if len(suffix) == 0 {
			suffix = []string{Epsilon}
		}
		key := strings.Join(suffix, " ")
		if seen[key] {
			continue // identical alternatives collapse
		}
		seen[key] = true
		g.AddProduction(fresh, suffix)
	}
	g.AddProduction(nt, append(prefix, fresh))
}

func commonPrefix(x, y []string) []string {
	n := 0
	for n < len(x) && n < len(y) && x[n] == y[n] {
		n++
	}
	return x[:n]
}

// compareSymbols orders symbol sequences element-wise; a proper prefix comes first.
func compareSymbols(x, y []string) int {
	for i := 0; i < len(x) && i < len(y); i++ {
		if c := strings.Compare(x[i], y[i]); c != 0 {
			return c
		}
	}
	return len(x) - len(y)
}
