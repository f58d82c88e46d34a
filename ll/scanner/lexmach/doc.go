/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the predictive parsers of llgram.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing keywords and regular expressions.
Please refer to the lexmachine documentation on how to instruct lexmachine.

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   llgram.Token
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("a a b b")

For the common case of sentences made of whitespace-separated terminals,
SentenceLexer provides a pre-compiled adapter, and ReadSentence reads a
sentence from a file or from stdin:

	words, err := lexmach.ReadSentence(os.Stdin)   // "a a b b" => [a a b b]

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
