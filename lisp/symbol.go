// Copyright © 2018 The ELPS authors

package lisp

import "sort"

// Symbol is an interned name.  Two symbols obtained from the same SymbolTable
// are the same pointer if and only if their names are equal.
type Symbol struct {
	name string
}

// Name returns the text of the symbol.
func (s *Symbol) Name() string {
	return s.name
}

func (s *Symbol) String() string {
	return s.name
}

// SymbolTable canonicalizes names into Symbols.  Entries are never evicted.
// A SymbolTable is not safe for concurrent use; each Runtime owns one.
type SymbolTable struct {
	syms map[string]*Symbol
}

// NewSymbolTable returns an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		syms: make(map[string]*Symbol),
	}
}

// Intern returns the unique Symbol for name, creating it on first use.
func (t *SymbolTable) Intern(name string) *Symbol {
	sym, ok := t.syms[name]
	if !ok {
		sym = &Symbol{name: name}
		t.syms[name] = sym
	}
	return sym
}

// Lookup returns the Symbol for name if it has been interned.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.syms[name]
	return sym, ok
}

// Len returns the number of interned symbols.
func (t *SymbolTable) Len() int {
	return len(t.syms)
}

// Names returns the sorted names of all interned symbols.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.syms))
	for name := range t.syms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
