package lexmach

import (
	"strings"
	"testing"

	"github.com/npillmayer/llgram/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestSentence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.scanner")
	defer teardown()
	//
	words, err := SplitSentence("  a a\tb  b ")
	if err != nil {
		t.Fatal(err)
	}
	if s := strings.Join(words, "|"); s != "a|a|b|b" {
		t.Errorf("expected words a|a|b|b, have %q", s)
	}
	lm, _ := SentenceLexer()
	sc, _ := lm.Scanner("( id )")
	tok := sc.NextToken()
	if tok.TokType() != scanner.Word || tok.Span().From() != 0 || tok.Span().To() != 1 {
		t.Errorf("unexpected first token %v", tok)
	}
	if tok = sc.NextToken(); tok.Lexeme() != "id" || tok.Span().From() != 2 {
		t.Errorf("expected token id at 2, have %q at %d", tok.Lexeme(), tok.Span().From())
	}
}

func TestReadSentence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.scanner")
	defer teardown()
	//
	words, err := ReadSentence(strings.NewReader("\n   \nid + id\nignored line\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 || words[1] != "+" {
		t.Errorf("expected sentence [id + id], have %v", words)
	}
	words, err = ReadSentence(strings.NewReader("\n\n"))
	if err != nil || words == nil || len(words) != 0 {
		t.Errorf("expected empty sentence for blank input, have %v, %v", words, err)
	}
}

func TestScannerErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llgram.scanner")
	defer teardown()
	//
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[a-z]+`), MakeToken("ID", scanner.Word))
		lexer.Add([]byte(` +`), Skip)
	}
	LM, err := NewLMAdapter(init, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("ab 12 cd")
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	words := scanner.Collect(sc)
	if strings.Join(words, " ") != "ab cd" {
		t.Errorf("expected unconsumable input to be skipped, have %v", words)
	}
	if len(errs) == 0 {
		t.Errorf("expected scanner errors to be reported")
	}
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = 1
	tokenIds["ID"] = scanner.Word
	tokenIds["NUM"] = 2
	tokenIds["STRING"] = 3
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}
