package ll

import (
	"fmt"
	"io"

	"github.com/cnf/structhash"
	"github.com/npillmayer/llgram/ll/sparse"
)

// === LL(1) Table ===========================================================

// LL1Table maps (non-terminal, terminal) to the production to expand.
// Rows are the non-terminals of the grammar in construction order, columns
// are the terminals in lexicographic order, followed by Finish.
//
// Once created by a TableGenerator, a table is read-only and may be shared
// between parsers running concurrently.
type LL1Table struct {
	rows     []string
	cols     []string
	rowIndex map[string]int
	colIndex map[string]int
	matrix   *sparse.IntMatrix
}

func newLL1Table(g *Grammar) *LL1Table {
	t := &LL1Table{
		rows:     g.NonTerminals(),
		cols:     append(g.Terminals(), Finish),
		rowIndex: make(map[string]int),
		colIndex: make(map[string]int),
	}
	for i, nt := range t.rows {
		t.rowIndex[nt] = i
	}
	for j, term := range t.cols {
		t.colIndex[term] = j
	}
	t.matrix = sparse.NewIntMatrix(len(t.rows), len(t.cols), sparse.DefaultNullValue)
	return t
}

// Lookup returns the production to expand for non-terminal nt with lookahead
// terminal t. If the cell is empty, or nt or t are unknown, ok is false.
func (t *LL1Table) Lookup(nt string, term string) (h Handle, ok bool) {
	i, ok1 := t.rowIndex[nt]
	j, ok2 := t.colIndex[term]
	if !ok1 || !ok2 {
		return NoHandle, false
	}
	v := t.matrix.Value(i, j)
	if v == t.matrix.NullValue() {
		return NoHandle, false
	}
	return Handle(v), true
}

// add inserts h into cell (nt,term). The first writer keeps the cell; the
// return value tells if the cell has been occupied before.
func (t *LL1Table) add(nt string, term string, h Handle) (Handle, bool) {
	i, j := t.rowIndex[nt], t.colIndex[term]
	occupied := t.matrix.Add(i, j, int32(h))
	return Handle(t.matrix.Value(i, j)), occupied
}

// Each calls f for every non-empty cell, row by row.
func (t *LL1Table) Each(f func(nt string, term string, h Handle)) {
	t.matrix.Each(func(i, j int, a, _ int32) {
		f(t.rows[i], t.cols[j], Handle(a))
	})
}

// NonTerminals returns the row labels of the table.
func (t *LL1Table) NonTerminals() []string {
	return append([]string(nil), t.rows...)
}

// Terminals returns the column labels of the table, Finish last.
func (t *LL1Table) Terminals() []string {
	return append([]string(nil), t.cols...)
}

// Size returns the number of non-empty cells.
func (t *LL1Table) Size() int {
	return t.matrix.ValueCount()
}

// tableContent is what goes into a fingerprint.
type tableContent struct {
	Rows  []string
	Cols  []string
	Cells []tableCell
}

type tableCell struct {
	NonTerminal string
	Terminal    string
	Production  int
}

// Fingerprint returns a hash of the table contents. Tables built from the
// same analysis have identical fingerprints.
func (t *LL1Table) Fingerprint() string {
	content := tableContent{Rows: t.rows, Cols: t.cols}
	t.Each(func(nt string, term string, h Handle) {
		content.Cells = append(content.Cells, tableCell{nt, term, int(h)})
	})
	hash, err := structhash.Hash(content, 1)
	if err != nil {
		panic(fmt.Sprintf("ll: cannot hash LL(1) table: %v", err))
	}
	return hash
}

// === Table Generator =======================================================

// Conflict describes a table cell claimed by more than one production.
// Productions lists every claimant in the order of insertion attempts; the
// first one is the production stored in the table.
type Conflict struct {
	NonTerminal string
	Terminal    string
	Productions []Handle
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict at [%s,%s]: productions %v", c.NonTerminal, c.Terminal, c.Productions)
}

// TableGenerator is a generator object to construct an LL(1) parser table.
// Clients usually create a Grammar G, then an LLAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTable() constructs
// the table for a predictive parser recognizing G.
//
// If G is not LL(1), HasConflicts is set after CreateTable(). The table is
// nevertheless complete, with the first production claiming a cell winning.
type TableGenerator struct {
	g            *Grammar
	ga           *LLAnalysis
	table        *LL1Table
	conflicts    []*Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LLAnalysis) *TableGenerator {
	return &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
}

// Table returns the LL(1) table. It has to be created by calling CreateTable()
// beforehand.
func (gen *TableGenerator) Table() *LL1Table {
	if gen.table == nil {
		tracer().Errorf("LL(1) table not yet created")
	}
	return gen.table
}

// Conflicts returns all conflicting cells found by CreateTable().
func (gen *TableGenerator) Conflicts() []Conflict {
	r := make([]Conflict, len(gen.conflicts))
	for i, c := range gen.conflicts {
		r[i] = *c
		r[i].Productions = append([]Handle(nil), c.Productions...)
	}
	return r
}

// CreateTable builds the LL(1) table: for every production A -> α and every
// terminal t in SELECT(A -> α), cell (A,t) is set to the production.
// Productions are processed in handle order. A cell already occupied by a
// different production is recorded as a conflict, and processing continues.
func (gen *TableGenerator) CreateTable() {
	tracer().Debugf("=== build LL(1) table ===========================")
	gen.table = newLL1Table(gen.g)
	gen.conflicts = nil
	gen.HasConflicts = false
	cells := make(map[[2]string]*Conflict)
	gen.g.EachProduction(func(p *Production) {
		for _, t := range gen.ga.Select(p.ID) {
			first, occupied := gen.table.add(p.LHS, t, p.ID)
			if !occupied || first == p.ID {
				tracer().Debugf("    [%s,%s] = %d", p.LHS, t, p.ID)
				continue
			}
			tracer().Infof("    [%s,%s] = %d is 2nd entry, conflicts with %d", p.LHS, t, p.ID, first)
			gen.HasConflicts = true
			key := [2]string{p.LHS, t}
			if c, ok := cells[key]; ok {
				c.Productions = append(c.Productions, p.ID)
				continue
			}
			c := &Conflict{NonTerminal: p.LHS, Terminal: t, Productions: []Handle{first, p.ID}}
			cells[key] = c
			gen.conflicts = append(gen.conflicts, c)
		}
	})
	if gen.HasConflicts {
		tracer().Errorf("grammar %s is not LL(1): %d conflicting cells", gen.g.Name, len(gen.conflicts))
	}
}

// Dump is a debugging helper, writing the table to the tracer.
func (gen *TableGenerator) Dump() {
	if gen.table == nil {
		return
	}
	tracer().Debugf("--- LL(1) table of %s, %d x %d ----------------", gen.g.Name,
		gen.table.matrix.M(), gen.table.matrix.N())
	gen.table.Each(func(nt string, term string, h Handle) {
		tracer().Debugf("[%-10s,%-6s] %s", nt, term, gen.g.Production(h))
	})
	for _, c := range gen.conflicts {
		tracer().Debugf(c.String())
	}
}

// TableAsHTML exports the LL(1) table in HTML-format. Conflicting cells show
// the winning production and the last production which claimed the cell.
func TableAsHTML(gen *TableGenerator, w io.Writer) {
	if gen.table == nil {
		tracer().Errorf("LL(1) table not yet created, cannot export to HTML")
		return
	}
	table := gen.table
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table of %s, %d entries<p>", gen.g.Name, table.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, term := range table.cols {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", term))
	}
	io.WriteString(w, "</tr>\n")
	var td string // table cell
	for i, nt := range table.rows {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", nt))
		for j := range table.cols {
			v1, v2 := table.matrix.Values(i, j)
			if v1 == table.matrix.NullValue() {
				td = "&nbsp;"
			} else if v2 == table.matrix.NullValue() {
				td = gen.g.Production(Handle(v1)).String()
			} else {
				td = fmt.Sprintf("%s / %s", gen.g.Production(Handle(v1)), gen.g.Production(Handle(v2)))
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
