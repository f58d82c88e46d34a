package ll

import (
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAnalysisAnBn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	ga := Analysis(anbnGrammar(t))
	ga.Dump()
	if !ga.Nullable("S") {
		t.Errorf("expected S to be nullable")
	}
	if first := fmt.Sprint(ga.First("S")); first != "[# a]" {
		t.Errorf("expected FIRST(S) = [# a], is %s", first)
	}
	if follow := fmt.Sprint(ga.Follow("S")); follow != "[$ b]" {
		t.Errorf("expected FOLLOW(S) = [$ b], is %s", follow)
	}
	if sel := fmt.Sprint(ga.Select(0)); sel != "[a]" {
		t.Errorf("expected SELECT(S -> a S b) = [a], is %s", sel)
	}
	if sel := fmt.Sprint(ga.Select(1)); sel != "[$ b]" {
		t.Errorf("expected SELECT(S -> #) = [$ b], is %s", sel)
	}
	if first := fmt.Sprint(ga.First("a")); first != "[a]" {
		t.Errorf("expected FIRST(a) = [a], is %s", first)
	}
}

func TestAnalysisExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	ga := Analysis(EliminateLeftRecursion(exprGrammar(t)))
	t.Logf("\n%s", ga)
	expected := []struct {
		nt, first, follow string
	}{
		{"E", "[( id]", "[$ )]"},
		{"T", "[( id]", "[$ ) +]"},
		{"F", "[( id]", "[$ ) * +]"},
		{"E1", "[# +]", "[$ )]"},
		{"T1", "[# *]", "[$ ) +]"},
	}
	for _, x := range expected {
		if first := fmt.Sprint(ga.First(x.nt)); first != x.first {
			t.Errorf("expected FIRST(%s) = %s, is %s", x.nt, x.first, first)
		}
		if follow := fmt.Sprint(ga.Follow(x.nt)); follow != x.follow {
			t.Errorf("expected FOLLOW(%s) = %s, is %s", x.nt, x.follow, follow)
		}
	}
	if first, nullable := ga.SequenceFirst([]string{"T1", "E1"}); nullable != true || fmt.Sprint(first) != "[# * +]" {
		t.Errorf("expected FIRST(T1 E1) = [# * +], nullable, is %v, %v", first, nullable)
	}
	nf, nfo := ga.Passes()
	if nf < 2 || nfo < 2 {
		t.Errorf("expected at least two passes for each fixpoint, have %d and %d", nf, nfo)
	}
}

// Nullability only flips from false to true, FIRST and FOLLOW sets only grow.
func TestAnalysisMonotonicity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").N("C").T("s").End()
	b.LHS("A").N("B").N("C").End()
	b.LHS("A").T("a").End()
	b.LHS("B").N("C").T("b").End()
	b.LHS("B").Epsilon()
	b.LHS("C").N("A").T("c").End()
	b.LHS("C").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := newAnalysis(g)
	ga.seedFirst()
	nullable, first := ga.nullable.clone(), ga.first.clone()
	for changed := true; changed; {
		changed = ga.firstPass()
		checkNullableGrows(t, nullable, ga.nullable)
		checkSetsGrow(t, "FIRST", first, ga.first)
		nullable, first = ga.nullable.clone(), ga.first.clone()
	}
	ga.seedFollow()
	follow := ga.follow.clone()
	for changed := true; changed; {
		changed = ga.followPass()
		checkNullableGrows(t, nullable, ga.nullable)
		checkSetsGrow(t, "FOLLOW", follow, ga.follow)
		nullable, follow = ga.nullable.clone(), ga.follow.clone()
	}
	if !ga.Nullable("A") || !ga.Nullable("B") || !ga.Nullable("C") || ga.Nullable("S") {
		t.Errorf("expected A, B and C to be nullable, S not to be")
	}
	if follow := fmt.Sprint(ga.Follow("C")); follow != "[a b c s]" {
		t.Errorf("expected FOLLOW(C) = [a b c s], is %s", follow)
	}
}

func checkNullableGrows(t *testing.T, before, after *NullableTable) {
	for _, sym := range before.Symbols() {
		if !after.IsNullable(sym) {
			t.Errorf("expected %s to stay nullable", sym)
		}
	}
}

func checkSetsGrow(t *testing.T, name string, before, after *SymbolSets) {
	for _, sym := range before.Symbols() {
		for _, term := range before.Set(sym) {
			if !after.Contains(sym, term) {
				t.Errorf("expected %s(%s) to keep %s", name, sym, term)
			}
		}
		if after.Size(sym) < before.Size(sym) {
			t.Errorf("expected %s(%s) not to shrink", name, sym)
		}
	}
}

func TestSymbolSets(t *testing.T) {
	sets := newSymbolSets()
	if !sets.Add("A", "a") || sets.Add("A", "a") {
		t.Errorf("expected Add to report change exactly once")
	}
	if !sets.UnionExcept("A", []string{"#", "b", "a"}, Epsilon) {
		t.Errorf("expected union to report change")
	}
	if fmt.Sprint(sets.Set("A")) != "[a b]" {
		t.Errorf("expected A = [a b], is %v", sets.Set("A"))
	}
	if sets.Union("A", []string{"b"}) {
		t.Errorf("expected union without new terminals to report no change")
	}
	nt := newNullableTable()
	if !nt.IsNullable(Epsilon) || !nt.MarkNullable("A") || nt.MarkNullable("A") {
		t.Errorf("expected nullable table to report a change exactly once")
	}
}
