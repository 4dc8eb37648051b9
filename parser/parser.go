// Copyright © 2018 The ELPS authors

package parser

import (
	"fmt"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/parser/rdparser"
	"github.com/luthersystems/schemer/parser/regexparser"
)

// Reader implementation names accepted by NewNamedReader.
const (
	ReaderRD     = "rd"
	ReaderParsec = "parsec"
)

// NewReader returns a new lisp.Reader
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// NewNamedReader returns the lisp.Reader implementation with the given name.
// An empty name selects the default reader.
func NewNamedReader(name string) (lisp.Reader, error) {
	switch name {
	case "", ReaderRD:
		return rdparser.NewReader(), nil
	case ReaderParsec:
		return regexparser.NewReader(), nil
	default:
		return nil, fmt.Errorf("unknown reader: %q", name)
	}
}
