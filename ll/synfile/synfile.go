/*
Package synfile reads context-free grammars from a small line-oriented text
format.

Every line introducing productions names a non-terminal in angle brackets,
followed by an arrow and a list of alternatives, separated by '|':

	<E> -> <E> + <T> | <T>
	<T> -> <T> * <F>
	       <F>
	<F> -> ( <E> ) | id

A line without an arrow continues the alternatives of the most recently named
non-terminal (optionally starting with a '|'). Within an alternative, `<Name>`
references a non-terminal, any other run of characters up to the next blank is
a terminal. A lone '#' is the empty alternative. The non-terminal of the first
production line is the start symbol of the grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package synfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/llgram/ll"
	"github.com/npillmayer/llgram/ll/scanner"
	"github.com/npillmayer/llgram/ll/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'llgram.synfile'.
func tracer() tracing.Trace {
	return tracing.Select("llgram.synfile")
}

// Arrow separates a non-terminal from its alternatives.
const Arrow = "->"

// SyntaxError is returned for malformed grammar input.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// ReadFile reads a grammar from a file. The grammar is named after the file.
func ReadFile(path string) (*ll.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// Read reads a grammar from r. An empty input results in an empty grammar.
func Read(r io.Reader, name string) (*ll.Grammar, error) {
	rd := &reader{file: name, b: ll.NewGrammarBuilder(name)}
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		rd.line++
		if err := rd.readLine(lines.Text()); err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	g, err := rd.b.Grammar()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	tracer().Infof("read grammar %q with %d productions", name, g.Size())
	return g, nil
}

type reader struct {
	file string
	line int
	lhs  string // most recently named non-terminal
	b    *ll.GrammarBuilder
}

func (rd *reader) errorf(format string, args ...interface{}) error {
	return &SyntaxError{File: rd.file, Line: rd.line, Msg: fmt.Sprintf(format, args...)}
}

func (rd *reader) readLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if i := strings.Index(line, Arrow); i >= 0 {
		left := strings.TrimSpace(line[:i])
		if len(left) < 3 || left[0] != '<' || left[len(left)-1] != '>' || strings.ContainsAny(left[1:len(left)-1], "<>") {
			return rd.errorf("left hand side must be a non-terminal <Name>, is %q", left)
		}
		rd.lhs = left[1 : len(left)-1]
		line = strings.TrimSpace(line[i+len(Arrow):])
	} else if rd.lhs == "" {
		return rd.errorf("alternatives without a preceding non-terminal")
	} else {
		line = strings.TrimPrefix(line, "|") // continuation lines may start with a bar
	}
	alts, err := rd.alternatives(line)
	if err != nil {
		return err
	}
	for _, alt := range alts {
		rd.addAlternative(alt)
	}
	return nil
}

func (rd *reader) addAlternative(alt []token) {
	if len(alt) == 1 && alt[0].text == ll.Epsilon {
		rd.b.LHS(rd.lhs).Epsilon()
		return
	}
	rb := rd.b.LHS(rd.lhs)
	for _, t := range alt {
		switch {
		case t.nonterm:
			rb.N(t.text)
		case t.text == ll.Epsilon: // epsilon within a longer alternative matches nothing
		default:
			rb.T(t.text)
		}
	}
	rb.End()
}

// --- Lexing alternatives ---------------------------------------------------

type token struct {
	text    string
	nonterm bool
}

const (
	tokNonTerm = iota + 1
	tokTerm
	tokBar
)

var synLexer struct {
	once    sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

func alternativesLexer() (*lexmach.LMAdapter, error) {
	synLexer.once.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`<[^<>]+>`), lexmach.MakeToken("NONTERM", tokNonTerm))
			lexer.Add([]byte(`[^ \t\r\n<\|]+`), lexmach.MakeToken("TERM", tokTerm))
			lexer.Add([]byte(`( |\t|\r|\n)+`), lexmach.Skip)
		}
		synLexer.adapter, synLexer.err = lexmach.NewLMAdapter(init, []string{"|"}, nil,
			map[string]int{"|": tokBar})
	})
	return synLexer.adapter, synLexer.err
}

// alternatives splits the right hand side of a line into alternatives.
func (rd *reader) alternatives(rhs string) ([][]token, error) {
	lm, err := alternativesLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(rhs)
	if err != nil {
		return nil, rd.errorf("%v", err)
	}
	var lexErr error
	sc.SetErrorHandler(func(e error) {
		if lexErr == nil {
			lexErr = rd.errorf("cannot read %q: %v", rhs, e)
		}
	})
	var alts [][]token
	var alt []token
	for tok := sc.NextToken(); tok.TokType() != scanner.EOF; tok = sc.NextToken() {
		switch tok.TokType() {
		case tokBar:
			if len(alt) == 0 {
				return nil, rd.errorf("empty alternative for <%s>, use # instead", rd.lhs)
			}
			alts = append(alts, alt)
			alt = nil
		case tokNonTerm:
			lx := tok.Lexeme()
			alt = append(alt, token{text: lx[1 : len(lx)-1], nonterm: true})
		default:
			alt = append(alt, token{text: tok.Lexeme()})
		}
	}
	if lexErr != nil {
		return nil, lexErr
	}
	if len(alt) == 0 {
		return nil, rd.errorf("empty alternative for <%s>, use # instead", rd.lhs)
	}
	return append(alts, alt), nil
}
