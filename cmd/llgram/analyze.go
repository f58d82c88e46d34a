package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/llgram/ll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var gopts grammarOptions
	var htmlFile string

	cmd := &cobra.Command{
		Use:   "analyze <grammar.syn>",
		Short: "Print the transformed grammar, FIRST/FOLLOW/SELECT sets and the LL(1) table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadGrammar(args[0], gopts)
			if err != nil {
				return err
			}
			renderTable("Grammar "+p.G.Name, productionsData(p.G))
			renderTable("Nullable, FIRST and FOLLOW", setsData(p.GA))
			renderTable("SELECT", selectData(p.GA))
			renderTable("LL(1) table", tableData(p.Gen))
			pterm.Info.Println(fmt.Sprintf("table fingerprint %s", p.Gen.Table().Fingerprint()))
			if p.Gen.HasConflicts {
				for _, c := range p.Gen.Conflicts() {
					pterm.Error.Println(c.String())
				}
			}
			if htmlFile != "" {
				if err := writeHTML(p.Gen, htmlFile); err != nil {
					return err
				}
				log.Info("LL(1) table exported", "file", htmlFile)
			}
			return nil
		},
	}
	gopts.addFlags(cmd)
	cmd.Flags().StringVar(&htmlFile, "html", "", "Export the LL(1) table as HTML")
	return cmd
}

func writeHTML(gen *ll.TableGenerator, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("export table: %w", err)
	}
	defer f.Close()
	ll.TableAsHTML(gen, f)
	return nil
}
