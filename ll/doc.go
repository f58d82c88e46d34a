/*
Package ll implements prerequisites for LL(1) parsing.
It transforms context-free grammars into a form suitable for top-down
predictive parsing, analyses them and builds the LL(1) parse table.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
productions, consisting of non-terminal symbols and terminals. Terminals
are plain strings which are matched literally against input tokens.
Grammars may contain epsilon-productions.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()    // S  ->  A a
    b.LHS("A").N("B").N("D").End()    // A  ->  B D
    b.LHS("B").T("b").End()           // B  ->  b
    b.LHS("B").Epsilon()              // B  ->  #
    b.LHS("D").T("d").End()           // D  ->  d
    b.LHS("D").Epsilon()              // D  ->  #
    g, err := b.Grammar()

The first left-hand side becomes the start symbol. Every production is
identified by a Handle, which stays valid for the lifetime of the production,
no matter how many other productions are inserted or removed.

    fmt.Println(g)

    G
      0: S -> A a
      1: A -> B D
      2: B -> b
      3: B -> #
      4: D -> d
      5: D -> #

Rewriting a Grammar

Top-down parsers cannot cope with left recursion, and they have to decide
between alternatives by looking at a single token. Two rewriting stages
prepare a grammar for this:

    g = ll.EliminateLeftRecursion(g)  // E -> E + T | T  becomes  E -> T E1, E1 -> + T E1 | #
    g = ll.LeftFactor(g)              // A -> a b | a c  becomes  A -> a A1, A1 -> b | c

Both stages consume their input grammar and return the rewritten one. Fresh
non-terminals are named after the non-terminal they have been split off from.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LLAnalysis object, which computes nullability,
FIRST and FOLLOW sets for all symbols and SELECT sets for all productions.

    ga := ll.Analysis(g)
    for _, A := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    }

    // Output:
    FIRST(S) = [a b d]
    FIRST(A) = [# b d]
    FIRST(B) = [# b]
    FIRST(D) = [# d]

Parser Construction

Using grammar analysis as input, the LL(1) table is constructed.
Conflicting table cells do not stop table construction. Instead every
conflict is recorded and the table generator is flagged.

    gen := ll.NewTableGenerator(ga)
    gen.CreateTable()
    if gen.HasConflicts {
        for _, c := range gen.Conflicts() { ... }  // grammar is not LL(1)
    }
    table := gen.Table()

The table is then handed to a predictive parser, see package predict.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llgram.ll'.
func tracer() tracing.Trace {
	return tracing.Select("llgram.ll")
}
