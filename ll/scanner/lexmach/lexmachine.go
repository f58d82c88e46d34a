package lexmach

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/llgram"
	"github.com/npillmayer/llgram/ll/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'llgram.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("llgram.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('|', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface. Unconsumable input is
// reported to the error handler and skipped.
func (lms *LMScanner) NextToken() llgram.Token {
	if lms.scanner == nil {
		return scanner.MakeDefaultToken(scanner.EOF, "", llgram.Span{})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			if ui.FailTC > lms.scanner.TC {
				lms.scanner.TC = ui.FailTC
			} else {
				lms.scanner.TC++
			}
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", llgram.Span{})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return scanner.MakeDefaultToken(
		llgram.TokType(token.Type),
		string(token.Lexeme),
		llgram.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// --- Sentences -------------------------------------------------------------

var sentenceLexer struct {
	once    sync.Once
	adapter *LMAdapter
	err     error
}

// SentenceLexer returns an adapter which splits its input into words
// separated by whitespace. Every word is a token of type scanner.Word.
// The DFA is compiled once and shared.
func SentenceLexer() (*LMAdapter, error) {
	sentenceLexer.once.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`[^ \t\r\n]+`), MakeToken("WORD", scanner.Word))
			lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
		}
		sentenceLexer.adapter, sentenceLexer.err = NewLMAdapter(init, nil, nil, nil)
	})
	return sentenceLexer.adapter, sentenceLexer.err
}

// SplitSentence splits a line into whitespace-separated words.
func SplitSentence(line string) ([]string, error) {
	lm, err := SentenceLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(line)
	if err != nil {
		return nil, err
	}
	return scanner.Collect(sc), nil
}

// ReadSentence reads the first non-blank line of r and splits it into words.
// If r contains blank lines only, an empty sentence is returned.
func ReadSentence(r io.Reader) ([]string, error) {
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		if strings.TrimSpace(lines.Text()) == "" {
			continue
		}
		return SplitSentence(lines.Text())
	}
	return []string{}, lines.Err()
}
