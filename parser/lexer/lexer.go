// Copyright © 2018 The ELPS authors

package lexer

import (
	"regexp"
	"strings"

	"github.com/luthersystems/schemer/parser/token"
)

// tokenPattern matches optional leading space, one token, and the remainder
// of the line.  The token alternatives, in order: the splicing unquote, a
// single delimiter or quote marker, a double quoted string, a comment running
// to the end of the line, and a maximal run of non-delimiter characters.
var tokenPattern = regexp.MustCompile(`^\s*(,@|[('` + "`" + `,)]|"(?:\\.|[^\\"])*"|;.*|[^\s('"` + "`" + `,;)]*)(.*)$`)

// InPort is a cursor over source lines.  An InPort retains the unconsumed
// remainder of the current line and refills it from the following lines as
// tokens are read.  An InPort has a single consumer and cannot be reused once
// it returns EOF.
type InPort struct {
	file  string
	lines []string
	line  string
	lnum  int // number of the line held in line (1-based)
	col   int // column of the first byte of line (1-based)
	pos   int // byte offset of the first byte of line
	done  bool
}

// New returns an InPort reading text.  The file name is only used in token
// locations.
func New(file string, text string) *InPort {
	return &InPort{
		file:  file,
		lines: strings.Split(text, "\n"),
	}
}

// NextToken returns the next token, reading new lines into the line buffer as
// needed.  When no source remains NextToken returns a token with type EOF.
// Comments are skipped.
func (p *InPort) NextToken() *token.Token {
	for !p.done {
		if p.line == "" {
			if !p.refill() {
				break
			}
			continue
		}
		m := tokenPattern.FindStringSubmatchIndex(p.line)
		if m == nil {
			// Unreachable in practice since the atom alternative matches the
			// empty string.
			return p.errorf(p.pos, p.col, "unreadable text")
		}
		text := p.line[m[2]:m[3]]
		col := p.col + m[2]
		pos := p.pos + m[2]
		rest := p.line[m[4]:m[5]]
		p.pos += m[4]
		p.col += m[4]
		p.line = rest
		switch {
		case text == "":
			if rest == "" {
				continue
			}
			// Nothing consumed.  The only way to get here is a double quote
			// which does not begin a complete string.
			p.pos += len(p.line)
			p.line = ""
			return p.errorf(pos, col, "unterminated string literal")
		case strings.HasPrefix(text, ";"):
			continue
		}
		return &token.Token{
			Type:   classify(text),
			Text:   text,
			Source: p.location(pos, col),
		}
	}
	p.done = true
	return &token.Token{
		Type:   token.EOF,
		Source: p.location(p.pos, p.col),
	}
}

// refill loads the next line into the buffer.  It returns false when the
// source is exhausted.
func (p *InPort) refill() bool {
	if len(p.lines) == 0 {
		return false
	}
	if p.lnum > 0 {
		// account for the newline terminating the previous line
		p.pos++
	}
	p.line = p.lines[0]
	p.lines = p.lines[1:]
	p.lnum++
	p.col = 1
	return true
}

func (p *InPort) location(pos, col int) *token.Location {
	return &token.Location{
		File: p.file,
		Pos:  pos,
		Line: p.lnum,
		Col:  col,
	}
}

func (p *InPort) errorf(pos, col int, msg string) *token.Token {
	return &token.Token{
		Type:   token.ERROR,
		Text:   msg,
		Source: p.location(pos, col),
	}
}

func classify(text string) token.Type {
	switch text {
	case "(":
		return token.PAREN_L
	case ")":
		return token.PAREN_R
	case "'":
		return token.QUOTE
	case "`":
		return token.QUASIQUOTE
	case ",":
		return token.UNQUOTE
	case ",@":
		return token.UNQUOTE_SPLICING
	}
	if text[0] == '"' {
		return token.STRING
	}
	return token.ATOM
}
