/*
Package llgram is a toolbox for LL(1) grammars.

LLGram takes an arbitrary context-free grammar, normalizes it into a form
suitable for predictive parsing and drives a table based top-down parse of
input sentences. Package structure is as follows:

■ ll: Package ll holds the grammar model, the grammar rewriting stages
(left-recursion elimination and left factoring), the Nullable/FIRST/FOLLOW/SELECT
analysis and the LL(1) table generator.

■ ll/predict: Package predict implements a stack driven predictive parser
which creates a derivation tree (package ll/dtree).

■ ll/synfile: Package synfile reads grammars from a small line-oriented text format.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package llgram
