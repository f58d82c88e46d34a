/*
Package scanner defines an interface for scanners to be used with the
predictive parsers of package ll/predict.

Predictive parsers match tokens by their lexeme: a token is accepted for a
terminal if its lexeme equals the terminal's name. Three tokenizers are
provided: (1) a slice tokenizer over words already split, (2) a thin wrapper
over the Go std lib 'text/scanner', which splits "(id+id)*id" into six
tokens, and (3) an adapter for lexmachine, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/npillmayer/llgram"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llgram.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("llgram.scanner")
}

// EOF is identical to text/scanner.EOF.
const (
	EOF  = scanner.EOF
	Word = scanner.Ident
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() llgram.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for all
// the tokenizers of this module.
type DefaultToken struct {
	kind   llgram.TokType
	lexeme string
	Val    interface{}
	span   llgram.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ llgram.TokType, lexeme string, span llgram.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() llgram.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() llgram.Span {
	return t.span
}

// --- Slice tokenizer -------------------------------------------------------

// SliceTokenizer hands out pre-split words as tokens of type Word. The span
// of a token is its index in the slice.
type SliceTokenizer struct {
	words []string
	pos   int
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// Words creates a tokenizer for a sequence of words.
func Words(words []string) *SliceTokenizer {
	return &SliceTokenizer{words: words}
}

// NextToken is part of the Tokenizer interface.
func (st *SliceTokenizer) NextToken() llgram.Token {
	if st.pos >= len(st.words) {
		return MakeDefaultToken(EOF, "", llgram.Span{})
	}
	w := st.words[st.pos]
	st.pos++
	return MakeDefaultToken(Word, w, llgram.Span{uint64(st.pos - 1), uint64(st.pos)})
}

// SetErrorHandler is part of the Tokenizer interface. A SliceTokenizer never
// reports errors.
func (st *SliceTokenizer) SetErrorHandler(func(error)) {}

// --- Go tokenizer ----------------------------------------------------------

// GoTokenizer is a tokenizer backed by scanner.Scanner, accepting tokens
// similar to the Go language. Comments are skipped.
type GoTokenizer struct {
	scanner.Scanner
	Error func(error) // error handler
}

var _ Tokenizer = (*GoTokenizer)(nil)

// NewGoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func NewGoTokenizer(sourceID string, input io.Reader) *GoTokenizer {
	t := &GoTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(&scanError{pos: s.Position, msg: msg})
	}
	return t
}

type scanError struct {
	pos scanner.Position
	msg string
}

func (e *scanError) Error() string {
	return e.pos.String() + ": " + e.msg
}

// SetErrorHandler sets an error handler for the scanner.
func (t *GoTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *GoTokenizer) NextToken() llgram.Token {
	tok := t.Scan()
	if tok == scanner.EOF {
		tracer().Debugf("GoTokenizer reached end of input")
	}
	return MakeDefaultToken(
		llgram.TokType(tok),
		t.TokenText(),
		llgram.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	)
}

// --- Helpers ---------------------------------------------------------------

// Collect reads tokens until EOF and returns their lexemes.
func Collect(tok Tokenizer) []string {
	var words []string
	for t := tok.NextToken(); t.TokType() != EOF; t = tok.NextToken() {
		words = append(words, t.Lexeme())
	}
	return words
}
