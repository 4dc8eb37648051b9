// Copyright © 2018 The ELPS authors

package rdparser

import (
	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/parser/token"
)

// TokenGenerator returns the tokens from a new line of input.  At the end of
// input a TokenGenerator returns a single EOF token.
type TokenGenerator func() []*token.Token

// Interactive implements a parser that parses a single form at a time and
// defers to a TokenGenerator function when it is necessary to read more
// tokens.  Unlike a batch read, a list left open at the end of a line
// continues on the next line.
type Interactive struct {
	prompt     string
	promptCont string
	Read       TokenGenerator
	buf        []*token.Token
	p          *Parser
}

// NewInteractive initializes and returns a new Interactive parser.
func NewInteractive(symbols *lisp.SymbolTable, read TokenGenerator) *Interactive {
	p := &Interactive{
		Read: read,
	}
	p.p = New(symbols, p)
	return p
}

// SetPrompts configures the string prompts returned by p.Prompt().  The cont
// string is used to prompt the user when the parser is in the middle of
// parsing a form at the start of a line.
func (p *Interactive) SetPrompts(prompt, cont string) {
	p.prompt = prompt
	p.promptCont = cont
}

// Prompt returns a simple prompt that can be used by a REPL token generator.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return p.promptCont
	}
	return p.prompt
}

// IsParsing returns true if p is in the middle of parsing a form.
func (p *Interactive) IsParsing() bool {
	if p == nil {
		return false
	}
	return p.p.IsParsing()
}

// NextToken implements TokenSource.
func (p *Interactive) NextToken() *token.Token {
	for len(p.buf) == 0 {
		if p.Read == nil {
			panic("nil read func")
		}
		p.buf = p.Read()
	}
	tok := p.buf[0]
	if tok.Type != token.EOF {
		p.buf = p.buf[1:]
	}
	return tok
}

// Parse parses one form from the interactive token stream and returns it, or
// any error encountered.  A REPL would call this function in its main
// runloop.  If a parse error is encountered, any buffered tokens (presumably
// from the current tty line) are discarded so corrected source can be
// re-read.
func (p *Interactive) Parse() (*lisp.LVal, error) {
	lval, err := p.p.Parse()
	if err != nil {
		p.buf = nil
		p.p.depth = 0
		return nil, err
	}
	return lval, nil
}

// Pending returns true if tokens from the last line remain unread.
func (p *Interactive) Pending() bool {
	return len(p.buf) > 0 && p.buf[0].Type != token.EOF
}
