package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/llgram/ll"
	"github.com/npillmayer/llgram/ll/predict"
	"github.com/npillmayer/llgram/ll/synfile"
	"github.com/spf13/cobra"
)

// Options for preparing a grammar, shared by all sub-commands.
type grammarOptions struct {
	factor          bool
	augment         bool
	keepSubstituted bool
}

func (opts *grammarOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&opts.factor, "factor", false, "Left-factor the grammar")
	cmd.Flags().BoolVar(&opts.augment, "augment", false, "Add a new start symbol S' -> S")
	cmd.Flags().BoolVar(&opts.keepSubstituted, "keep-substituted", false,
		"Keep productions made unreachable by left recursion elimination")
}

// pipeline holds the artifacts of
//
//    read → eliminate → [factor] → [augment] → analyse → table
//
type pipeline struct {
	G   *ll.Grammar
	GA  *ll.LLAnalysis
	Gen *ll.TableGenerator
}

func loadGrammar(path string, opts grammarOptions) (*pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return prepareGrammar(f, path, opts)
}

func prepareGrammar(r io.Reader, name string, opts grammarOptions) (*pipeline, error) {
	g, err := synfile.Read(r, name)
	if err != nil {
		return nil, err
	}
	log.Info("grammar read", "name", name, "productions", g.Size())
	if lr := ll.LeftRecursive(g); len(lr) > 0 {
		log.Info("eliminating left recursion", "nonterminals", strings.Join(lr, " "),
			"immediate", strings.Join(ll.ImmediateLeftRecursive(g), " "))
	}
	g = ll.EliminateLeftRecursion(g, ll.KeepSubstituted(opts.keepSubstituted))
	if lr := ll.LeftRecursive(g); len(lr) > 0 {
		log.Warn("left recursion remains", "nonterminals", strings.Join(lr, " "))
	}
	if opts.factor {
		g = ll.LeftFactor(g)
	}
	if opts.augment {
		g = ll.Augment(g)
	}
	if err := g.Check(); err != nil {
		log.Warn("malformed grammar", "err", err)
	}
	ga := ll.Analysis(g)
	first, follow := ga.Passes()
	log.Debug("analysis done", "first-passes", first, "follow-passes", follow)
	gen := ll.NewTableGenerator(ga)
	gen.CreateTable()
	if gen.HasConflicts {
		for _, c := range gen.Conflicts() {
			log.Warn("LL(1) conflict", "cell", "["+c.NonTerminal+","+c.Terminal+"]", "productions", c.Productions)
		}
		log.Warn("grammar is not LL(1), parse results are unreliable")
	}
	log.Info("LL(1) table built", "entries", gen.Table().Size(), "fingerprint", gen.Table().Fingerprint())
	return &pipeline{G: g, GA: ga, Gen: gen}, nil
}

func (p *pipeline) parser(steps bool) *predict.Parser {
	return predict.NewParser(p.G, p.Gen.Table(), predict.TraceSteps(steps))
}
