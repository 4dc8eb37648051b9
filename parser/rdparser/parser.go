// Copyright © 2018 The ELPS authors

package rdparser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/parser/lexer"
	"github.com/luthersystems/schemer/parser/token"
)

// ErrUnexpectedEOF is wrapped by errors for a quote marker at the end of the
// source.
var ErrUnexpectedEOF = errors.New("unexpected EOF")

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(symbols *lisp.SymbolTable, name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := New(symbols, lexer.New(name, string(text)))
	return p.ParseProgram()
}

// TokenSource produces tokens for a Parser.  After a TokenSource returns a
// token with type EOF it must continue to return EOF tokens.
type TokenSource interface {
	NextToken() *token.Token
}

// Parser is a recursive descent lisp parser.
type Parser struct {
	symbols *lisp.SymbolTable
	src     TokenSource
	tok     *token.Token
	depth   int
}

// New initializes and returns a new Parser that reads tokens from src and
// interns symbols in symbols.
func New(symbols *lisp.SymbolTable, src TokenSource) *Parser {
	return &Parser{
		symbols: symbols,
		src:     src,
	}
}

// Parse reads the next top-level form.  Parse returns io.EOF when no forms
// remain.
func (p *Parser) Parse() (*lisp.LVal, error) {
	tok := p.ReadToken()
	if tok.Type == token.EOF {
		return nil, io.EOF
	}
	return p.read(tok)
}

// ParseProgram parses all forms remaining in the token stream.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			return exprs, nil
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

// IsParsing returns true if p is in the middle of reading a form.
func (p *Parser) IsParsing() bool {
	return p.depth > 0
}

// ReadToken advances to the next token and returns it.
func (p *Parser) ReadToken() *token.Token {
	p.tok = p.src.NextToken()
	return p.tok
}

// read parses a form beginning with tok.
func (p *Parser) read(tok *token.Token) (*lisp.LVal, error) {
	switch tok.Type {
	case token.PAREN_L:
		return p.readList(tok)
	case token.PAREN_R:
		return nil, p.errorf(tok, "unexpected )")
	case token.QUOTE, token.QUASIQUOTE, token.UNQUOTE, token.UNQUOTE_SPLICING:
		p.depth++
		defer func() { p.depth-- }()
		next := p.ReadToken()
		if next.Type == token.EOF {
			return nil, &token.LocationError{
				Err:    fmt.Errorf("%w after %s", ErrUnexpectedEOF, tok.Text),
				Source: tok.Source,
			}
		}
		x, err := p.read(next)
		if err != nil {
			return nil, err
		}
		quote := lisp.Sym(p.symbols.Intern(QuoteName(tok.Type)))
		quote.Source = tok.Source
		return located(lisp.SExpr([]*lisp.LVal{quote, x}), tok), nil
	case token.ERROR, token.INVALID:
		return nil, p.errorf(tok, "%s", tok.Text)
	case token.EOF:
		return nil, p.errorf(tok, "unexpected EOF")
	default:
		return Atom(p.symbols, tok), nil
	}
}

// readList reads list elements until the closing paren.  EOF before the
// closing paren ends the list.
func (p *Parser) readList(open *token.Token) (*lisp.LVal, error) {
	p.depth++
	defer func() { p.depth-- }()
	var cells []*lisp.LVal
	for {
		tok := p.ReadToken()
		switch tok.Type {
		case token.PAREN_R, token.EOF:
			return located(lisp.SExpr(cells), open), nil
		}
		x, err := p.read(tok)
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
}

func (p *Parser) errorf(tok *token.Token, format string, v ...interface{}) error {
	return &token.LocationError{
		Err:    fmt.Errorf(format, v...),
		Source: tok.Source,
	}
}

// QuoteName returns the name of the special form a quote marker token
// abbreviates.
func QuoteName(typ token.Type) string {
	switch typ {
	case token.QUOTE:
		return lisp.QuoteSymbol
	case token.QUASIQUOTE:
		return lisp.QuasiquoteSymbol
	case token.UNQUOTE:
		return lisp.UnquoteSymbol
	case token.UNQUOTE_SPLICING:
		return lisp.UnquoteSplicingSymbol
	default:
		return ""
	}
}

// Atom converts an ATOM or STRING token into a value.  Strings lose their
// surrounding quotes but escape sequences are kept verbatim.  Other text is
// a boolean literal, an int, a float, or else a symbol interned in symbols.
func Atom(symbols *lisp.SymbolTable, tok *token.Token) *lisp.LVal {
	return located(atom(symbols, tok.Type, tok.Text), tok)
}

func atom(symbols *lisp.SymbolTable, typ token.Type, text string) *lisp.LVal {
	if typ == token.STRING {
		return lisp.String(text[1 : len(text)-1])
	}
	switch text {
	case lisp.TrueLiteral:
		return lisp.Bool(true)
	case lisp.FalseLiteral:
		return lisp.Bool(false)
	}
	if x, err := strconv.Atoi(text); err == nil {
		return lisp.Int(x)
	}
	// ParseFloat accepts names like "inf" and "nan" which should read as
	// symbols.
	if strings.ContainsAny(text, "0123456789") {
		if x, err := strconv.ParseFloat(text, 64); err == nil {
			return lisp.Float(x)
		}
	}
	return lisp.Sym(symbols.Intern(text))
}

func located(v *lisp.LVal, tok *token.Token) *lisp.LVal {
	v.Source = tok.Source
	return v
}
