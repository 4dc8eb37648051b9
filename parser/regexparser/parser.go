// Copyright © 2018 The ELPS authors

// Package regexparser provides a lisp reader built from parser combinators.
//
//	expr    := <comment> | <string> | <atom> | <list> | <quoted>
//	list    := '(' <expr>* ')' | '(' <expr>* EOF
//	quoted  := <marker> <expr>
//	marker  := ",@" | "'" | "`" | ","
//	string  := '"' /(\\.|[^\\"])*/ '"'
//	atom    := /[^\s('"`,;)]+/
//	comment := /;[^\n]*/
//
// The reader produces the same values as the recursive descent reader in
// package rdparser.
package regexparser

import (
	"fmt"
	"io"
	"sort"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/parser/rdparser"
	"github.com/luthersystems/schemer/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(symbols *lisp.SymbolTable, name string, r io.Reader) ([]*lisp.LVal, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseLVal(symbols, name, b)
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeListUnmatched
	nodeQuoted
)

var nodeTypeStrings = []string{
	nodeInvalid:       "INVALID",
	nodeTerm:          "TERM",
	nodeList:          "LIST",
	nodeListUnmatched: "LISTOPENUNMATCHED",
	nodeQuoted:        "QUOTED",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// ParseLVal parses all forms in text and returns them.  Symbols are interned
// in symbols.  The name is only used in source locations.
func ParseLVal(symbols *lisp.SymbolTable, name string, text []byte) ([]*lisp.LVal, error) {
	b := &builder{
		symbols: symbols,
		file:    name,
		lines:   lineOffsets(text),
	}
	var v []*lisp.LVal
	s := parsec.NewScanner(text)
	s = s.TrackLineno()
	parser := b.newParsecParser()
	root, s := parser(s)
	for root != nil {
		lval, err := getLVal(root)
		if err != nil {
			return nil, err
		}
		if lval != nil {
			v = append(v, lval)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		loc := b.location(s.GetCursor())
		got, _ := s.Match(`.{1,16}`)
		if len(got) > 15 {
			got = append(got[:15:15], []byte("...")...)
		}
		return nil, &token.LocationError{
			Err:    fmt.Errorf("unexpected source text possibly starting: %s", got),
			Source: loc,
		}
	}
	return v, nil
}

// builder turns parsec nodes into values.
type builder struct {
	symbols *lisp.SymbolTable
	file    string
	lines   []int
}

func (b *builder) newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	marker := parsec.OrdChoice(nil,
		parsec.Atom(",@", token.UNQUOTE_SPLICING.String()),
		parsec.Atom("'", token.QUOTE.String()),
		parsec.Atom("`", token.QUASIQUOTE.String()),
		parsec.Atom(",", token.UNQUOTE.String()),
	)
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	str := parsec.Token(`"(?:\\.|[^\\"\n])*"`, "STRING")
	atom := parsec.Token("[^\\s('\"`,;)]+", "ATOM")
	term := parsec.OrdChoice(b.astNode(nodeTerm), str, atom)

	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(b.astNode(nodeList), openP, exprList, closeP)
	// A list left open at the end of the source is truncated rather than
	// rejected.
	listUnmatched := parsec.And(b.astNode(nodeListUnmatched), openP, exprList, parsec.Parser(end))
	quoted := parsec.And(b.astNode(nodeQuoted), marker, &expr)
	expr = parsec.OrdChoice(nil,
		comment,
		term,
		list,
		quoted,
		listUnmatched,
	)
	return expr
}

func (b *builder) astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return b.newAST(t, nodes)
	}
}

func (b *builder) newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanParsecNodeList(nodes)
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	if len(nodes) == 0 {
		return nil
	}
	switch typ {
	case nodeTerm:
		term := nodes[0].(*parsec.Terminal)
		typ := token.ATOM
		if term.Name == "STRING" {
			typ = token.STRING
		}
		return rdparser.Atom(b.symbols, &token.Token{
			Type:   typ,
			Text:   term.Value,
			Source: b.location(term.Position),
		})
	case nodeList, nodeListUnmatched:
		open := nodes[0].(*parsec.Terminal)
		lval := lisp.SExpr(make([]*lisp.LVal, 0, len(nodes)))
		lval.Source = b.location(open.Position)
		for _, c := range nodes[1:] {
			if c, ok := c.(*lisp.LVal); ok {
				lval.Cells = append(lval.Cells, c)
			}
		}
		return lval
	case nodeQuoted:
		mark := nodes[0].(*parsec.Terminal)
		if len(nodes) < 2 {
			return &token.LocationError{
				Err:    fmt.Errorf("%w after %s", rdparser.ErrUnexpectedEOF, mark.Value),
				Source: b.location(mark.Position),
			}
		}
		x, ok := nodes[1].(*lisp.LVal)
		if !ok {
			return fmt.Errorf("unexpected node in quoted form: %T", nodes[1])
		}
		sym := lisp.Sym(b.symbols.Intern(rdparser.QuoteName(markerType(mark.Value))))
		sym.Source = b.location(mark.Position)
		lval := lisp.SExpr([]*lisp.LVal{sym, x})
		lval.Source = sym.Source
		return lval
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

// end matches the end of the source, ignoring trailing whitespace.
func end(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
	news := s.Clone()
	_, news = news.SkipWS()
	if !news.Endof() {
		return nil, s
	}
	return &parsec.Terminal{Name: "EOF", Position: news.GetCursor()}, news
}

func markerType(text string) token.Type {
	switch text {
	case ",@":
		return token.UNQUOTE_SPLICING
	case "`":
		return token.QUASIQUOTE
	case ",":
		return token.UNQUOTE
	default:
		return token.QUOTE
	}
}

// location converts a byte offset into a source location.
func (b *builder) location(pos int) *token.Location {
	// lines holds the offset of the first byte of each line.
	i := sort.SearchInts(b.lines, pos+1) - 1
	if i < 0 {
		i = 0
	}
	return &token.Location{
		File: b.file,
		Pos:  pos,
		Line: i + 1,
		Col:  pos - b.lines[i] + 1,
	}
}

func lineOffsets(text []byte) []int {
	offsets := []int{0}
	for i, c := range text {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// cleanParsecNodeList flattens nested node lists and removes comments.  If
// an error is encountered it is returned alone and ok is false.
func cleanParsecNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case nil:
			continue
		case *parsec.Terminal:
			if node.Name == "COMMENT" {
				continue
			}
			nodes = append(nodes, node)
		case error:
			return []parsec.ParsecNode{node}, false
		case []parsec.ParsecNode:
			clean, ok := cleanParsecNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes, true
}

// getLVal returns the value of a top-level node.  A nil value is returned
// for nodes which carry no form, like comments.
func getLVal(root parsec.ParsecNode) (*lisp.LVal, error) {
	nodes, ok := cleanParsecNodeList([]parsec.ParsecNode{root})
	if !ok {
		return nil, nodes[0].(error)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	lval, _ := nodes[0].(*lisp.LVal)
	return lval, nil
}
