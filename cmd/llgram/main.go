/*
Command llgram analyzes context-free grammars for LL(1) parsing and parses
sentences with a predictive parser.

	llgram analyze grammar.syn                    # tables and conflicts
	llgram parse grammar.syn sentence.stn         # derivation tree
	llgram parse grammar.syn --sentence "a a b b"
	llgram repl grammar.syn                       # interactive sentences

Grammars are read from the `.syn` format (see package ll/synfile). Left
recursion is always eliminated before analysis; left factoring and grammar
augmentation are optional.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/llgram/internal/logger"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Global options, shared by all sub-commands.
type globalOptions struct {
	trace   string
	verbose bool
	noColor bool
}

var traceKeys = []string{"llgram.ll", "llgram.scanner", "llgram.synfile"}

func main() {
	var opts globalOptions
	rootCmd := &cobra.Command{
		Use:   "llgram",
		Short: "Analyze LL(1) grammars and parse sentences",
		Long: `llgram reads a context-free grammar, eliminates left recursion,
optionally factors common prefixes, computes FIRST/FOLLOW/SELECT sets and
builds an LL(1) parse table. Sentences are parsed by a predictive parser.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setup(opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.trace, "trace", "Error", "Trace level [Debug|Info|Error]")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Report progress")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newReplCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(opts globalOptions) {
	logger.Init(opts.verbose, opts.noColor)
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(opts.trace)
	gtrace.SyntaxTracer.SetTraceLevel(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
