package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/llgram/ll"
	"github.com/npillmayer/llgram/ll/dtree"
	"github.com/pterm/pterm"
)

func productionsData(g *ll.Grammar) pterm.TableData {
	data := pterm.TableData{{"#", "Production"}}
	for _, nt := range g.NonTerminals() {
		for _, p := range g.Alternatives(nt) {
			data = append(data, []string{fmt.Sprintf("%d", p.ID), p.String()})
		}
	}
	return data
}

func setsData(ga *ll.LLAnalysis) pterm.TableData {
	data := pterm.TableData{{"Non-terminal", "Nullable", "FIRST", "FOLLOW"}}
	for _, nt := range ga.Grammar().NonTerminals() {
		nullable := ""
		if ga.Nullable(nt) {
			nullable = "yes"
		}
		data = append(data, []string{nt, nullable, symbolSet(ga.First(nt)), symbolSet(ga.Follow(nt))})
	}
	return data
}

func selectData(ga *ll.LLAnalysis) pterm.TableData {
	data := pterm.TableData{{"#", "Production", "SELECT"}}
	for _, p := range ga.Grammar().Productions() {
		data = append(data, []string{fmt.Sprintf("%d", p.ID), p.String(), symbolSet(ga.Select(p.ID))})
	}
	return data
}

// tableData renders the LL(1) table with non-terminals as rows and terminals
// as columns. Conflicting cells list all competing productions.
func tableData(gen *ll.TableGenerator) pterm.TableData {
	table := gen.Table()
	conflicts := make(map[[2]string][]ll.Handle)
	for _, c := range gen.Conflicts() {
		conflicts[[2]string{c.NonTerminal, c.Terminal}] = c.Productions
	}
	header := append([]string{""}, table.Terminals()...)
	data := pterm.TableData{header}
	for _, nt := range table.NonTerminals() {
		row := []string{nt}
		for _, t := range table.Terminals() {
			cell := ""
			if hs, ok := conflicts[[2]string{nt, t}]; ok {
				s := make([]string, len(hs))
				for i, h := range hs {
					s[i] = fmt.Sprintf("%d", h)
				}
				cell = strings.Join(s, " / ")
			} else if h, ok := table.Lookup(nt, t); ok {
				cell = fmt.Sprintf("%d", h)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return data
}

func symbolSet(syms []string) string {
	return "{ " + strings.Join(syms, " ") + " }"
}

func renderTable(title string, data pterm.TableData) {
	pterm.DefaultSection.Println(title)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- Derivation trees ------------------------------------------------------

func leveledTree(tree *dtree.Tree, g *ll.Grammar) pterm.LeveledList {
	list := pterm.LeveledList{}
	tree.Walk(func(n *dtree.Node, level int) {
		list = append(list, pterm.LeveledListItem{
			Level: level,
			Text:  nodeLabel(n, g),
		})
	})
	return list
}

func nodeLabel(n *dtree.Node, g *ll.Grammar) string {
	switch {
	case n.Symbol == dtree.RootSymbol:
		return g.Name
	case n.Kind == dtree.NonTerminal && n.Production != ll.NoHandle:
		return g.Production(n.Production).String()
	case n.Kind == dtree.NonTerminal:
		return n.Symbol + "  (not expanded)"
	case n.IsEpsilon() || n.Kind == dtree.Finish:
		return n.Symbol
	}
	return fmt.Sprintf("%s  %v", n.Symbol, n.Span)
}

func renderTree(tree *dtree.Tree, g *ll.Grammar) {
	root := pterm.NewTreeFromLeveledList(leveledTree(tree, g))
	pterm.DefaultTree.WithRoot(root).Render()
}
