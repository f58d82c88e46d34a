package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/npillmayer/llgram/ll/scanner/lexmach"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	var gopts grammarOptions

	cmd := &cobra.Command{
		Use:   "repl <grammar.syn>",
		Short: "Parse sentences interactively",
		Long: `Read sentences line by line and print their derivation trees.
Lines starting with ':' are commands; enter :help for a list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadGrammar(args[0], gopts)
			if err != nil {
				return err
			}
			repl, err := readline.New("llgram> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp := &Intp{P: p, repl: repl}
			pterm.Info.Println("Welcome to the LL(1) sentence REPL")
			pterm.Info.Println("Quit with <ctrl>D or :quit")
			intp.REPL()
			return nil
		},
	}
	gopts.addFlags(cmd)
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	P     *pipeline
	repl  *readline.Instance
	steps bool
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if intp.Eval(line) {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a sentence, given on a line by itself.
// It returns true if the user asked to quit.
func (intp *Intp) Eval(line string) bool {
	if strings.HasPrefix(line, ":") {
		return intp.command(strings.Fields(line[1:]))
	}
	sentence, err := lexmach.SplitSentence(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	tree, err := intp.P.parser(intp.steps).Parse(sentence)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	renderTree(tree, intp.P.G)
	if tree.Accepted() {
		pterm.Info.Println("accepted")
	} else {
		pterm.Error.Println(tree.Rejection().String())
	}
	return false
}

func (intp *Intp) command(args []string) bool {
	if len(args) == 0 {
		args = []string{"help"}
	}
	switch args[0] {
	case "quit", "q":
		return true
	case "grammar":
		renderTable("Grammar "+intp.P.G.Name, productionsData(intp.P.G))
	case "sets":
		renderTable("Nullable, FIRST and FOLLOW", setsData(intp.P.GA))
	case "select":
		renderTable("SELECT", selectData(intp.P.GA))
	case "table":
		renderTable("LL(1) table", tableData(intp.P.Gen))
	case "steps":
		intp.steps = !intp.steps
		log.Info("tracing parser steps", "on", intp.steps)
	default:
		pterm.Info.Println(":grammar  :sets  :select  :table  :steps  :quit")
	}
	return false
}
