package ll

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/gconf"
)

// LLAnalysis is the result of static grammar analysis: nullability and FIRST
// sets for all symbols, FOLLOW sets for non-terminals and SELECT sets for
// productions. Create one with Analysis(g). After analysis, neither the
// grammar nor the tables may be changed.
type LLAnalysis struct {
	g            *Grammar
	nullable     *NullableTable
	first        *SymbolSets
	follow       *SymbolSets
	selects      map[Handle]*treeset.Set
	firstRounds  int
	followRounds int
	traceTables  bool
}

// Analysis computes nullability, FIRST, FOLLOW and SELECT sets for a grammar.
//
// Nullability and FIRST sets are computed in one fixpoint iteration, FOLLOW
// sets in a second one. Both iterate over all productions until a full pass
// does not change any table. SELECT sets are derived once afterwards.
func Analysis(g *Grammar) *LLAnalysis {
	ga := newAnalysis(g)
	ga.seedFirst()
	for ga.firstPass() {
	}
	ga.seedFollow()
	for ga.followPass() {
	}
	ga.computeSelect()
	tracer().Infof("grammar %s analysed in %d+%d passes", g.Name, ga.firstRounds, ga.followRounds)
	return ga
}

func newAnalysis(g *Grammar) *LLAnalysis {
	return &LLAnalysis{
		g:           g,
		nullable:    newNullableTable(),
		first:       newSymbolSets(),
		follow:      newSymbolSets(),
		selects:     make(map[Handle]*treeset.Set),
		traceTables: gconf.GetBool("trace-fixpoint"),
	}
}

// Terminals have a fixed FIRST set containing just themselves.
func (ga *LLAnalysis) seedFirst() {
	for _, t := range ga.g.Terminals() {
		ga.first.Add(t, t)
	}
	ga.first.Add(Finish, Finish)
	ga.first.Add(Epsilon, Epsilon)
}

// firstPass is a single pass of the Nullable/FIRST fixpoint. For every
// production X -> Y1…Yn, FIRST(Yi)\{#} is added to FIRST(X) as long as
// Y1…Y(i-1) are nullable. If all of Y1…Yn are nullable, so is X.
func (ga *LLAnalysis) firstPass() bool {
	changed := false
	ga.g.EachProduction(func(p *Production) {
		allNullable := true
		for _, y := range p.RHS {
			if ga.first.UnionExcept(p.LHS, ga.first.Set(y), Epsilon) {
				changed = true
			}
			if !ga.nullable.IsNullable(y) {
				allNullable = false
				break
			}
		}
		if allNullable {
			if ga.nullable.MarkNullable(p.LHS) {
				changed = true
			}
			if ga.first.Add(p.LHS, Epsilon) {
				changed = true
			}
		}
	})
	ga.firstRounds++
	ga.dumpPass("FIRST", ga.first, ga.firstRounds)
	return changed
}

func (ga *LLAnalysis) seedFollow() {
	if ga.g.Start() != "" {
		ga.follow.Add(ga.g.Start(), Finish)
	}
}

// followPass is a single pass of the FOLLOW fixpoint. For every production
// X -> Y1…Yn and every non-terminal Yi:
//
//   - FIRST(Yj)\{#} is added to FOLLOW(Yi) for every j>i with Y(i+1)…Y(j-1) nullable
//   - FOLLOW(X) is added to FOLLOW(Yi) if Y(i+1)…Yn are nullable
//
// Nullability is refined as well, with the same termination condition.
func (ga *LLAnalysis) followPass() bool {
	changed := false
	ga.g.EachProduction(func(p *Production) {
		rhs := p.RHS
		for i, y := range rhs {
			if !ga.g.IsNonTerminal(y) {
				continue
			}
			restNullable := true
			for _, z := range rhs[i+1:] {
				if ga.follow.UnionExcept(y, ga.first.Set(z), Epsilon) {
					changed = true
				}
				if !ga.nullable.IsNullable(z) {
					restNullable = false
					break
				}
			}
			if restNullable && ga.follow.Union(y, ga.follow.Set(p.LHS)) {
				changed = true
			}
		}
		if ga.allNullable(rhs) && ga.nullable.MarkNullable(p.LHS) {
			changed = true
		}
	})
	ga.followRounds++
	ga.dumpPass("FOLLOW", ga.follow, ga.followRounds)
	return changed
}

func (ga *LLAnalysis) allNullable(syms []string) bool {
	for _, sym := range syms {
		if !ga.nullable.IsNullable(sym) {
			return false
		}
	}
	return true
}

// SELECT(X -> α) is FIRST(α) if α is not nullable, else FIRST(α)\{#} ∪ FOLLOW(X).
func (ga *LLAnalysis) computeSelect() {
	ga.g.EachProduction(func(p *Production) {
		first, nullable := ga.SequenceFirst(p.RHS)
		sel := treeset.NewWith(utils.StringComparator)
		for _, t := range first {
			if t != Epsilon {
				sel.Add(t)
			}
		}
		if nullable {
			for _, t := range ga.follow.Set(p.LHS) {
				sel.Add(t)
			}
		}
		ga.selects[p.ID] = sel
		tracer().Debugf("SELECT(%s) = %v", p, stringValues(sel))
	})
}

// SequenceFirst returns FIRST of a sequence of symbols, together with a flag
// telling if the whole sequence is nullable. For a nullable sequence the
// result contains Epsilon.
func (ga *LLAnalysis) SequenceFirst(syms []string) ([]string, bool) {
	set := treeset.NewWith(utils.StringComparator)
	nullable := true
	for _, sym := range syms {
		for _, t := range ga.first.Set(sym) {
			if t != Epsilon {
				set.Add(t)
			}
		}
		if !ga.nullable.IsNullable(sym) {
			nullable = false
			break
		}
	}
	if nullable {
		set.Add(Epsilon)
	}
	return stringValues(set), nullable
}

// Grammar returns the grammar analysed.
func (ga *LLAnalysis) Grammar() *Grammar {
	return ga.g
}

// Nullable is true if sym derives the empty string.
func (ga *LLAnalysis) Nullable(sym string) bool {
	return ga.nullable.IsNullable(sym)
}

// First returns FIRST(sym), sorted. It contains Epsilon for nullable symbols.
func (ga *LLAnalysis) First(sym string) []string {
	return ga.first.Set(sym)
}

// Follow returns FOLLOW(sym), sorted.
func (ga *LLAnalysis) Follow(sym string) []string {
	return ga.follow.Set(sym)
}

// Select returns the SELECT set of a production, sorted.
func (ga *LLAnalysis) Select(h Handle) []string {
	sel, ok := ga.selects[h]
	if !ok {
		return nil
	}
	return stringValues(sel)
}

// NullableTable returns the nullability table.
func (ga *LLAnalysis) NullableTable() *NullableTable {
	return ga.nullable
}

// FirstTable returns the FIRST sets.
func (ga *LLAnalysis) FirstTable() *SymbolSets {
	return ga.first
}

// FollowTable returns the FOLLOW sets.
func (ga *LLAnalysis) FollowTable() *SymbolSets {
	return ga.follow
}

// Passes returns the number of passes the FIRST and the FOLLOW fixpoint
// iterations took, including the final pass without changes.
func (ga *LLAnalysis) Passes() (int, int) {
	return ga.firstRounds, ga.followRounds
}

func (ga *LLAnalysis) dumpPass(name string, sets *SymbolSets, pass int) {
	if !ga.traceTables {
		return
	}
	tracer().Debugf("--- %s after pass %d", name, pass)
	for _, nt := range ga.g.nonterms {
		tracer().Debugf("    %s(%s) = %v", name, nt, sets.Set(nt))
	}
}

// Dump is a debugging helper, writing the analysis tables to the tracer.
func (ga *LLAnalysis) Dump() {
	tracer().Debugf("--- analysis of %s ------------------------------", ga.g.Name)
	for _, nt := range ga.g.nonterms {
		tracer().Debugf("%-10s nullable=%-5v FIRST=%v FOLLOW=%v", nt,
			ga.Nullable(nt), ga.First(nt), ga.Follow(nt))
	}
	ga.g.EachProduction(func(p *Production) {
		tracer().Debugf("SELECT %3d: %-20s = %v", p.ID, p, ga.Select(p.ID))
	})
}

// String returns the FIRST and FOLLOW sets of all non-terminals, one per line.
func (ga *LLAnalysis) String() string {
	s := ""
	for _, nt := range ga.g.nonterms {
		s += fmt.Sprintf("FIRST(%s) = %v, FOLLOW(%s) = %v\n", nt, ga.First(nt), nt, ga.Follow(nt))
	}
	return s
}
