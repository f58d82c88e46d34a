package ll

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTableAnBn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	ga := Analysis(anbnGrammar(t))
	gen := NewTableGenerator(ga)
	gen.CreateTable()
	gen.Dump()
	if gen.HasConflicts {
		t.Fatalf("expected a^n b^n grammar to be LL(1), conflicts: %v", gen.Conflicts())
	}
	table := gen.Table()
	cells := []struct {
		nt, t string
		h     Handle
	}{
		{"S", "a", 0},
		{"S", "b", 1},
		{"S", Finish, 1},
	}
	for _, c := range cells {
		if h, ok := table.Lookup(c.nt, c.t); !ok || h != c.h {
			t.Errorf("expected [%s,%s] = %d, is %d (%v)", c.nt, c.t, c.h, h, ok)
		}
	}
	if _, ok := table.Lookup("S", "x"); ok {
		t.Errorf("expected lookup of unknown terminal to fail")
	}
	if _, ok := table.Lookup("X", "a"); ok {
		t.Errorf("expected lookup of unknown non-terminal to fail")
	}
	if table.Size() != 3 {
		t.Errorf("expected 3 table entries, have %d", table.Size())
	}
	if cols := table.Terminals(); cols[len(cols)-1] != Finish {
		t.Errorf("expected Finish to be the last column, columns are %v", cols)
	}
}

func TestTableExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	ga := Analysis(EliminateLeftRecursion(exprGrammar(t)))
	gen := NewTableGenerator(ga)
	gen.CreateTable()
	if gen.HasConflicts {
		t.Fatalf("expected expression grammar to be LL(1), conflicts: %v", gen.Conflicts())
	}
	if gen.Table().Size() != 13 {
		t.Errorf("expected 13 table entries, have %d", gen.Table().Size())
	}
	h, _ := gen.Table().Lookup("T1", "+")
	if p := ga.Grammar().Production(h); p.String() != "T1 -> #" {
		t.Errorf("expected [T1,+] to be T1 -> #, is %v", p)
	}
}

func TestTableConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	g := LeftFactor(danglingElseGrammar(t))
	gen := NewTableGenerator(Analysis(g))
	gen.CreateTable()
	if !gen.HasConflicts {
		t.Fatalf("expected dangling else grammar to have conflicts")
	}
	conflicts := gen.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly one conflicting cell, have %v", conflicts)
	}
	c := conflicts[0]
	t.Logf("%v", c)
	if c.NonTerminal != "S1" || c.Terminal != "e" || len(c.Productions) != 2 {
		t.Errorf("expected conflict at [S1,e] between 2 productions, have %v", c)
	}
	if h, _ := gen.Table().Lookup("S1", "e"); h != c.Productions[0] {
		t.Errorf("expected first production to keep the cell, is %d", h)
	}
	//
	gen = NewTableGenerator(Analysis(EliminateLeftRecursion(indirectGrammar(t))))
	gen.CreateTable()
	conflicts = gen.Conflicts()
	if len(conflicts) != 2 || conflicts[0].NonTerminal != "A" || conflicts[0].Terminal != "c" ||
		conflicts[1].NonTerminal != "B1" || conflicts[1].Terminal != "a" {
		t.Errorf("expected conflicts at [A,c] and [B1,a], have %v", conflicts)
	}
}

// The table builder reports conflicts if and only if SELECT sets of the
// alternatives of some non-terminal overlap.
func TestTableConflictDuality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	grammars := []*Grammar{
		anbnGrammar(t),
		EliminateLeftRecursion(exprGrammar(t)),
		EliminateLeftRecursion(indirectGrammar(t)),
		danglingElseGrammar(t),
		LeftFactor(danglingElseGrammar(t)),
	}
	for _, g := range grammars {
		ga := Analysis(g)
		gen := NewTableGenerator(ga)
		gen.CreateTable()
		disjoint := true
		for _, nt := range g.NonTerminals() {
			seen := make(map[string]bool)
			for _, p := range g.Alternatives(nt) {
				for _, term := range ga.Select(p.ID) {
					if seen[term] {
						disjoint = false
					}
					seen[term] = true
				}
			}
		}
		if disjoint == gen.HasConflicts {
			t.Errorf("grammar %s: SELECT sets disjoint = %v, but conflicts = %v", g.Name, disjoint, gen.HasConflicts)
		}
	}
}

func TestTableFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	ga := Analysis(EliminateLeftRecursion(exprGrammar(t)))
	gen1 := NewTableGenerator(ga)
	gen1.CreateTable()
	gen2 := NewTableGenerator(ga)
	gen2.CreateTable()
	fp1, fp2 := gen1.Table().Fingerprint(), gen2.Table().Fingerprint()
	if fp1 != fp2 {
		t.Errorf("expected identical fingerprints, have %s and %s", fp1, fp2)
	}
	gen3 := NewTableGenerator(Analysis(anbnGrammar(t)))
	gen3.CreateTable()
	if gen3.Table().Fingerprint() == fp1 {
		t.Errorf("expected different tables to have different fingerprints")
	}
}

func TestTableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	//
	gen := NewTableGenerator(Analysis(anbnGrammar(t)))
	gen.CreateTable()
	var buf bytes.Buffer
	TableAsHTML(gen, &buf)
	html := buf.String()
	if !strings.Contains(html, "<table") || !strings.Contains(html, "S -> a S b") {
		t.Errorf("expected HTML table with productions, have %s", html)
	}
}
