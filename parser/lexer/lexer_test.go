// Copyright © 2018 The ELPS authors

package lexer

import (
	"reflect"
	"testing"

	"github.com/luthersystems/schemer/parser/token"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []*token.Token
	}{
		{``, []*token.Token{
			testToken(token.EOF, ""),
		}},
		{`abc`, []*token.Token{
			testToken(token.ATOM, "abc"),
			testToken(token.EOF, ""),
		}},
		{`(+ 1 2.5)`, []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.ATOM, "+"),
			testToken(token.ATOM, "1"),
			testToken(token.ATOM, "2.5"),
			testToken(token.PAREN_R, ")"),
			testToken(token.EOF, ""),
		}},
		{"'a `b ,c ,@d", []*token.Token{
			testToken(token.QUOTE, "'"),
			testToken(token.ATOM, "a"),
			testToken(token.QUASIQUOTE, "`"),
			testToken(token.ATOM, "b"),
			testToken(token.UNQUOTE, ","),
			testToken(token.ATOM, "c"),
			testToken(token.UNQUOTE_SPLICING, ",@"),
			testToken(token.ATOM, "d"),
			testToken(token.EOF, ""),
		}},
		{`"a b" "c\"d"`, []*token.Token{
			testToken(token.STRING, `"a b"`),
			testToken(token.STRING, `"c\"d"`),
			testToken(token.EOF, ""),
		}},
		{"x ; the rest is ignored (\n\n  y;z", []*token.Token{
			testToken(token.ATOM, "x"),
			testToken(token.ATOM, "y"),
			testToken(token.EOF, ""),
		}},
		{`a"b`, []*token.Token{
			testToken(token.ATOM, "a"),
			testToken(token.ERROR, "unterminated string literal"),
			testToken(token.EOF, ""),
		}},
		{`#t#f foo-bar?`, []*token.Token{
			testToken(token.ATOM, "#t#f"),
			testToken(token.ATOM, "foo-bar?"),
			testToken(token.EOF, ""),
		}},
	}

	for i, test := range tests {
		lex := New("test", test.input)
		var toks []*token.Token
		for {
			tok := lex.NextToken()
			toks = append(toks, testToken(tok.Type, tok.Text))
			if tok.Type == token.EOF {
				break
			}
			if len(toks) > 100 {
				t.Fatalf("test %d: too many tokens", i)
			}
		}
		if !reflect.DeepEqual(toks, test.tokens) {
			t.Errorf("test %d: %q", i, test.input)
			for _, tok := range toks {
				t.Logf("  %v %q", tok.Type, tok.Text)
			}
		}
	}
}

func TestLexer_locations(t *testing.T) {
	lex := New("test", "(a\n  bc)")
	want := []token.Location{
		{File: "test", Pos: 0, Line: 1, Col: 1},
		{File: "test", Pos: 1, Line: 1, Col: 2},
		{File: "test", Pos: 5, Line: 2, Col: 3},
		{File: "test", Pos: 7, Line: 2, Col: 5},
		{File: "test", Pos: 8, Line: 2, Col: 6},
	}
	for i, loc := range want {
		tok := lex.NextToken()
		if !reflect.DeepEqual(*tok.Source, loc) {
			t.Errorf("token %d (%q): got %v want %v", i, tok.Text, *tok.Source, loc)
		}
	}
}

func testToken(typ token.Type, text string) *token.Token {
	return &token.Token{
		Type: typ,
		Text: text,
	}
}
