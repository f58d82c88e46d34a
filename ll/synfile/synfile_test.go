package synfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/llgram/ll"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const exprSyn = `
<E> -> <E> + <T> | <T>
<T> -> <T> * <F>
       <F>
<F> -> ( <E> )
     | id
`

func TestReadExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.synfile")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := Read(strings.NewReader(exprSyn), "expr")
	if !assert.NoError(err) {
		return
	}
	g.Dump()
	assert.Equal("E", g.Start())
	assert.Equal([]string{"E", "T", "F"}, g.NonTerminals())
	assert.Equal([]string{"(", ")", "*", "+", "id"}, g.Terminals())
	assert.Equal(6, g.Size())
	alts := g.Alternatives("T")
	if assert.Len(alts, 2) {
		assert.Equal("T -> T * F", alts[0].String())
		assert.Equal("T -> F", alts[1].String())
	}
	assert.Equal("F -> id", g.Alternatives("F")[1].String())
}

func TestReadEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.synfile")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := Read(strings.NewReader("<S> -> a <S> b | #\n"), "anbn")
	if !assert.NoError(err) {
		return
	}
	alts := g.Alternatives("S")
	if assert.Len(alts, 2) {
		assert.True(alts[1].IsEpsilon())
	}
	assert.False(g.IsTerminal(ll.Epsilon))
	g, err = Read(strings.NewReader("<S> -> a # b\n"), "inner")
	if assert.NoError(err) {
		assert.Equal("S -> a b", g.Alternatives("S")[0].String())
	}
}

func TestReadTerminalRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.synfile")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := Read(strings.NewReader("<A>-><B>c d|<C>num\n<B> -> b\n<C> -> c\n"), "runs")
	if !assert.NoError(err) {
		return
	}
	alts := g.Alternatives("A")
	if assert.Len(alts, 2) {
		assert.Equal([]string{"B", "c", "d"}, alts[0].RHS)
		assert.Equal([]string{"C", "num"}, alts[1].RHS)
	}
}

func TestReadEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.synfile")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := Read(strings.NewReader("\n   \n"), "empty")
	if assert.NoError(err) {
		assert.Equal(0, g.Size())
		assert.Equal("", g.Start())
	}
}

func TestReadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.synfile")
	defer teardown()
	assert := assert.New(t)
	//
	inputs := []struct {
		text string
		line int
	}{
		{"a b c\n", 1},                  // no non-terminal yet
		{"<S> -> a\nS -> b\n", 2},       // left side without brackets
		{"<S> -> a |\n", 1},             // empty alternative
		{"<S> -> a || b\n", 1},          // empty alternative
		{"<S> -> a\n\n<T> ->\n", 3},     // no alternatives at all
		{"<S> -> a <B\n", 1},            // unterminated non-terminal
		{"<S> <T> -> a\n", 1},           // two non-terminals on the left
	}
	for _, input := range inputs {
		_, err := Read(strings.NewReader(input.text), "bad")
		var serr *SyntaxError
		if assert.True(errors.As(err, &serr), "expected syntax error for %q, got %v", input.text, err) {
			assert.Equal(input.line, serr.Line, "line of error for %q", input.text)
			assert.Equal("bad", serr.File)
		}
	}
	_, err := Read(strings.NewReader("<S> -> <$>\n"), "reserved")
	assert.Error(err)
}
