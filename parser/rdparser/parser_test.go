// Copyright © 2018 The ELPS authors

package rdparser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/parser/lexer"
	"github.com/luthersystems/schemer/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	tests := []struct {
		source string
		output string
	}{
		{`0`, `0`},
		{`12`, `12`},
		{`-1`, `-1`},
		{`0.3`, `0.3`},
		{`1e3`, `1000`},
		{`-`, `-`},
		{`inf`, `inf`},
		{`abc`, `abc`},
		{`set!`, `set!`},
		{`#t`, `#t`},
		{`#f`, `#f`},
		{`"xyz"`, `"xyz"`},
		{`"x\nyz"`, `"x\nyz"`},
		{`""`, `""`},
		{`()`, `()`},
		{`(1 2 3)`, `(1 2 3)`},
		{`(1 "abc" '(x y z))`, `(1 "abc" (quote (x y z)))`},
		{"`(a ,b ,@c)", `(quasiquote (a (unquote b) (unquote-splicing c)))`},
		{`'()`, `(quote ())`},
		{"(a ; comment\n b)", `(a b)`},
		{"(a\n(b", `(a (b))`},
		{"(define x 1) x", `(define x 1) x`},
	}

	for i, test := range tests {
		name := fmt.Sprintf("test%d", i)
		p := New(lisp.NewSymbolTable(), lexer.New(name, test.source))
		exprs, err := p.ParseProgram()
		if !assert.NoError(t, err, "test %d", i) {
			continue
		}
		var out []string
		for _, x := range exprs {
			out = append(out, x.String())
		}
		assert.Equal(t, test.output, strings.Join(out, " "), "test %d", i)
	}
}

func TestParser_errors(t *testing.T) {
	tests := []struct {
		source string
		msg    string
	}{
		{`)`, "test:1:1: unexpected )"},
		{`(a b))`, "test:1:6: unexpected )"},
		{`'`, "test:1:1: unexpected EOF after '"},
		{`(a '`, "test:1:4: unexpected EOF after '"},
		{`(a "bc)`, "test:1:4: unterminated string literal"},
	}
	for i, test := range tests {
		p := New(lisp.NewSymbolTable(), lexer.New("test", test.source))
		_, err := p.ParseProgram()
		if assert.Error(t, err, "test %d", i) {
			assert.Equal(t, test.msg, err.Error(), "test %d", i)
		}
	}
	p := New(lisp.NewSymbolTable(), lexer.New("test", "`"))
	_, err := p.ParseProgram()
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
}

func TestParser_interning(t *testing.T) {
	symbols := lisp.NewSymbolTable()
	exprs, err := NewReader().Read(symbols, "test", strings.NewReader(`(foo bar foo)`))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	cells := exprs[0].Cells
	assert.Same(t, cells[0].Sym, cells[2].Sym)
	assert.NotSame(t, cells[0].Sym, cells[1].Sym)
	assert.Same(t, symbols.Intern("bar"), cells[1].Sym)
}

func TestParser_locations(t *testing.T) {
	p := New(lisp.NewSymbolTable(), lexer.New("test", "(a\n  (b c))"))
	exprs, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	inner := exprs[0].Cells[1]
	assert.Equal(t, &token.Location{File: "test", Pos: 5, Line: 2, Col: 3}, inner.Source)
	assert.Equal(t, 2, inner.Cells[1].Source.Line)
	assert.Equal(t, 6, inner.Cells[1].Source.Col)
}

func TestRoundTrip(t *testing.T) {
	symbols := lisp.NewSymbolTable()
	data := []*lisp.LVal{
		lisp.Int(-42),
		lisp.Float(2.5),
		lisp.Bool(true),
		lisp.String("hello world"),
		lisp.Sym(symbols.Intern("lambda")),
		lisp.SExpr([]*lisp.LVal{
			lisp.Int(1),
			lisp.SExpr([]*lisp.LVal{lisp.Bool(false), lisp.String("")}),
			lisp.Nil(),
		}),
	}
	for _, v := range data {
		exprs, err := NewReader().Read(symbols, "test", strings.NewReader(v.String()))
		if assert.NoError(t, err) && assert.Len(t, exprs, 1) {
			assert.True(t, v.Equal(exprs[0]), "%v != %v", v, exprs[0])
		}
	}
}

func TestInteractive(t *testing.T) {
	lines := []string{"(+ 1", "2) (foo", ")"}
	var prompts []string
	var p *Interactive
	p = NewInteractive(lisp.NewSymbolTable(), func() []*token.Token {
		prompts = append(prompts, p.Prompt())
		if len(lines) == 0 {
			return []*token.Token{{Type: token.EOF}}
		}
		lex := lexer.New("stdin", lines[0])
		lines = lines[1:]
		var toks []*token.Token
		for tok := lex.NextToken(); tok.Type != token.EOF; tok = lex.NextToken() {
			toks = append(toks, tok)
		}
		return toks
	})
	p.SetPrompts("> ", "  ")

	x, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 2)", x.String())
	assert.True(t, p.Pending())
	x, err = p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "(foo)", x.String())
	_, err = p.Parse()
	assert.Error(t, err)
	assert.Equal(t, []string{"> ", "  ", "  ", "> "}, prompts)
}
