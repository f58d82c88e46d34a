package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/llgram/ll"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const exprSyn = `<E> -> <E> + <T> | <T>
<T> -> <T> * <F> | <F>
<F> -> ( <E> ) | id
`

const ifSyn = `<S> -> i <E> t <S> | i <E> t <S> e <S> | a
<E> -> b
`

func TestPipelineExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	assert := assert.New(t)
	//
	p, err := prepareGrammar(strings.NewReader(exprSyn), "expr", grammarOptions{})
	if !assert.NoError(err) {
		return
	}
	assert.False(p.Gen.HasConflicts)
	assert.Equal([]string{"E", "T", "F", "E1", "T1"}, p.G.NonTerminals())
	data := tableData(p.Gen)
	assert.Equal([]string{"", "(", ")", "*", "+", "id", "$"}, data[0])
	assert.Len(data, 6)
	sets := setsData(p.GA)
	assert.Equal([]string{"E1", "yes", "{ # + }", "{ $ ) }"}, sets[4])
	//
	tree, err := parseInput(p, strings.NewReader("id + id * id\n"), parseOptions{})
	if assert.NoError(err) {
		assert.True(tree.Accepted())
		list := leveledTree(tree, p.G)
		assert.Equal(0, list[0].Level)
		assert.Equal("expr", list[0].Text)
		assert.Equal("E -> T E1", list[1].Text)
	}
	tree, err = parseInput(p, strings.NewReader("(id+id)*id"), parseOptions{goTokens: true})
	if assert.NoError(err) {
		assert.True(tree.Accepted())
	}
	tree, err = parseInput(p, strings.NewReader("id +"), parseOptions{})
	if assert.NoError(err) {
		assert.False(tree.Accepted())
	}
}

func TestPipelineConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	assert := assert.New(t)
	//
	p, err := prepareGrammar(strings.NewReader(ifSyn), "if", grammarOptions{factor: true, augment: true})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("S'", p.G.Start())
	assert.True(p.Gen.HasConflicts)
	found := false
	for _, row := range tableData(p.Gen) {
		for _, cell := range row {
			if strings.Contains(cell, " / ") {
				found = true
			}
		}
	}
	assert.True(found, "expected conflicting cell to be rendered")
}

func TestPipelineIndirectCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	assert := assert.New(t)
	//
	syn := "<A> -> <C> a | a\n<B> -> <A> b | b\n<C> -> <B> c | c\n"
	p, err := prepareGrammar(strings.NewReader(syn), "cycle", grammarOptions{})
	if !assert.NoError(err) {
		return
	}
	assert.Empty(ll.LeftRecursive(p.G))
	assert.Equal([]string{"A", "C", "C1"}, p.G.NonTerminals())
	tree, err := parseInput(p, strings.NewReader("a"), parseOptions{})
	if assert.NoError(err) {
		assert.False(tree.Accepted(), "A -> a competes with A -> C a in the table")
	}
}

func TestPipelineErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	assert := assert.New(t)
	//
	_, err := prepareGrammar(strings.NewReader("<S> -> a |\n"), "bad", grammarOptions{})
	assert.Error(err)
	_, err = loadGrammar(filepath.Join(t.TempDir(), "missing.syn"), grammarOptions{})
	assert.Error(err)
}

func TestExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	assert := assert.New(t)
	//
	dir := t.TempDir()
	synfile := filepath.Join(dir, "anbn.syn")
	if !assert.NoError(os.WriteFile(synfile, []byte("<S> -> a <S> b | #\n"), 0644)) {
		return
	}
	p, err := loadGrammar(synfile, grammarOptions{})
	if !assert.NoError(err) {
		return
	}
	tree, err := parseInput(p, strings.NewReader("a a b b"), parseOptions{})
	if !assert.NoError(err) {
		return
	}
	dot := filepath.Join(dir, "tree.dot")
	html := filepath.Join(dir, "table.html")
	assert.NoError(writeDot(tree, dot))
	assert.NoError(writeHTML(p.Gen, html))
	data, _ := os.ReadFile(dot)
	assert.True(bytes.HasPrefix(data, []byte("digraph {")))
	data, _ = os.ReadFile(html)
	assert.Contains(string(data), "S -> a S b")
}

func TestReplCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.ll")
	defer teardown()
	assert := assert.New(t)
	//
	p, err := prepareGrammar(strings.NewReader("<S> -> a <S> b | #\n"), "anbn", grammarOptions{})
	if !assert.NoError(err) {
		return
	}
	intp := &Intp{P: p}
	assert.False(intp.Eval("a a b b"))
	assert.False(intp.Eval("a b b"))
	assert.False(intp.Eval(":table"))
	assert.False(intp.Eval(":steps"))
	assert.True(intp.steps)
	assert.True(intp.Eval(":quit"))
}
