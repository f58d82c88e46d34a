package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/llgram/ll/dtree"
	"github.com/npillmayer/llgram/ll/scanner"
	"github.com/npillmayer/llgram/ll/scanner/lexmach"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// errRejected makes the command exit with a non-zero status for sentences
// not in the language.
var errRejected = errors.New("sentence rejected")

type parseOptions struct {
	sentence string
	goTokens bool
	steps    bool
	dotFile  string
}

func newParseCmd() *cobra.Command {
	var gopts grammarOptions
	var popts parseOptions

	cmd := &cobra.Command{
		Use:   "parse <grammar.syn> [sentence-file]",
		Short: "Parse a sentence and print its derivation tree",
		Long: `Parse a sentence with a predictive LL(1) parser. The sentence is the
first non-blank line of the sentence file, the --sentence flag, or standard
input. Tokens are separated by whitespace, unless --go-tokens is set.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadGrammar(args[0], gopts)
			if err != nil {
				return err
			}
			var input io.Reader = os.Stdin
			if popts.sentence != "" {
				input = strings.NewReader(popts.sentence)
			} else if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				input = f
			}
			tree, err := parseInput(p, input, popts)
			if err != nil {
				return err
			}
			renderTree(tree, p.G)
			if popts.dotFile != "" {
				if err := writeDot(tree, popts.dotFile); err != nil {
					return err
				}
				log.Info("derivation tree exported", "file", popts.dotFile)
			}
			if !tree.Accepted() {
				pterm.Error.Println(tree.Rejection().String())
				return errRejected
			}
			pterm.Info.Println("sentence accepted")
			return nil
		},
	}
	gopts.addFlags(cmd)
	cmd.Flags().StringVar(&popts.sentence, "sentence", "", "Sentence to parse")
	cmd.Flags().BoolVar(&popts.goTokens, "go-tokens", false, "Split the sentence into Go-like tokens")
	cmd.Flags().BoolVar(&popts.steps, "steps", false, "Trace every parser step")
	cmd.Flags().StringVar(&popts.dotFile, "dot", "", "Export the derivation tree to Graphviz")
	return cmd
}

// parseInput reads the first non-blank line of input as a sentence and
// parses it.
func parseInput(p *pipeline, input io.Reader, popts parseOptions) (*dtree.Tree, error) {
	var sentence []string
	var err error
	if popts.goTokens {
		sentence = scanner.Collect(scanner.NewGoTokenizer("sentence", input))
	} else if sentence, err = lexmach.ReadSentence(input); err != nil {
		return nil, fmt.Errorf("read sentence: %w", err)
	}
	log.Info("sentence read", "tokens", strings.Join(sentence, " "))
	return p.parser(popts.steps).Parse(sentence)
}

func writeDot(tree *dtree.Tree, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("export tree: %w", err)
	}
	defer f.Close()
	return dtree.ToGraphViz(tree, f)
}
