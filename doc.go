/*
Package sparkle is a parsing toolkit built around an Earley parser.

Sparkle provides two cooperating engines: a longest-match lexical scanner,
which selects among many regex rules per input position, and an Earley
parser for arbitrary context-free grammars, including ambiguous ones.
Package structure is as follows:

■ scanner: Package scanner implements a multi-state, longest-match tokenizer
driven by per-rule regular expressions, plus an adapter for lexmachine.

■ grammar: Package grammar collects token- and production-rules into a rule
table, parses grammar strings, and computes FIRST sets.

■ earley: Package earley implements the Earley recognizer, together with a
parse-tree reconstructor and pluggable ambiguity resolution.

■ iteratable: Package iteratable implements ordered, deduplicated sets with
work-queue iteration, used for the Earley chart.

■ ast: Package ast provides generic syntax-tree nodes which grammar actions
may build during reduction.

The base package contains data types which are used throughout all the
other packages: tokens, spans and error kinds.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparkle
