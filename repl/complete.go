// Copyright © 2018 The ELPS authors

package repl

import (
	"sort"
	"strings"

	"github.com/luthersystems/schemer/lisp"
)

var specialForms = []string{
	lisp.QuoteSymbol,
	lisp.IfSymbol,
	lisp.SetSymbol,
	lisp.DefineSymbol,
	lisp.LambdaSymbol,
	lisp.BeginSymbol,
	lisp.DefineMacroSymbol,
	lisp.QuasiquoteSymbol,
	lisp.UnquoteSymbol,
	lisp.UnquoteSplicingSymbol,
}

// symbolCompleter implements readline.AutoCompleter by enumerating the
// global bindings, macros, and special forms of an environment.
type symbolCompleter struct {
	env *lisp.LEnv
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to whitespace or
	// open paren).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == '\n' || ch == '\'' || ch == '`' || ch == ',' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		suffix := sym[len(prefix):]
		result = append(result, []rune(suffix))
	}
	return result, len(prefix)
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	for _, name := range specialForms {
		add(name)
	}
	for _, name := range c.env.Runtime.Macros.Names() {
		add(name)
	}
	for sym := range c.env.Runtime.Root.Scope {
		add(sym.Name())
	}
	sort.Strings(result)
	return result
}
