package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/sparkle"
	"github.com/npillmayer/sparkle/earley"
	"github.com/npillmayer/sparkle/grammar"
	"github.com/npillmayer/sparkle/scanner"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'sparkle.repl'.
func tracer() tracing.Trace {
	return tracing.Select("sparkle.repl")
}

// We provide a simple expression grammar as a default for parser
// experiments:
//
//  Sum     ➞ Sum '+' Product  |  Product
//  Product ➞ Product '*' Factor  |  Factor
//  Factor  ➞ number  |  ( Sum )
//
func makeExprGrammar() *grammar.Table {
	table := grammar.NewTable("Sum")
	table.AddProduction("p_sum", "Sum ::= Sum '+' Product", func(children []interface{}) interface{} {
		return children[0].(int) + children[2].(int)
	})
	table.AddProduction("p_sum_unit", "Sum ::= Product", nil)
	table.AddProduction("p_product", "Product ::= Product '*' Factor", func(children []interface{}) interface{} {
		return children[0].(int) * children[2].(int)
	})
	table.AddProduction("p_product_unit", "Product ::= Factor", nil)
	table.AddProduction("p_factor_paren", "Factor ::= '(' Sum ')'", func(children []interface{}) interface{} {
		return children[1]
	})
	table.AddProduction("p_factor_number", "Factor ::= 'number'", func(children []interface{}) interface{} {
		return children[0].(sparkle.Token).Value().(int)
	})
	table.Freeze()
	return table
}

func makeExprScanner() *scanner.TokenizingScanner {
	rules := scanner.NewRuleSet()
	ts := scanner.NewTokenizingScanner(rules)
	rules.Add("t_number", `[0-9]+`, ts.Emit("number", func(lexeme string) interface{} {
		n, _ := strconv.Atoi(lexeme)
		return n
	}))
	rules.Add("t_op", `[+*()]`, func(match string, input string, pos uint64) error {
		span := sparkle.Span{pos, pos + uint64(len(match))}
		ts.Append(scanner.MakeDefaultToken(sparkle.Symbol(match), match, match, span))
		return nil
	})
	rules.Add("t_ws", `[ \t]+`, scanner.Skip)
	return ts
}

// main starts an interactive CLI where users may enter arithmetic
// expressions. Each line is tokenized and parsed with the sparkle demo
// grammar, and the evaluated result is printed. It is intended as a
// sandbox for experiments during the early phase of grammar development.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to the sparkle REPL") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	table := makeExprGrammar()
	ts := makeExprScanner()
	parser := earley.NewParser(table)
	//
	repl, err := readline.New("sparkle> ")
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		tokens, err := ts.Tokenize(line, scanner.DefaultState)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		result, err := parser.Parse(tokens)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Info.Printf("= %v\n", result)
	}
	println("Good bye!")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	}
	return tracing.LevelInfo
}
