// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"os"
	"sort"
)

// Runtime is an object underlying a tree of LEnv values.  It holds the state
// shared by every evaluation in a session: the symbol table, the macro
// registry, the root environment, and the call stack.  Nothing in a Runtime
// is reset between evaluations.
//
// A Runtime is not safe for concurrent use.  Concurrent users must each
// construct an isolated root environment with NewEnv(nil) or serialize their
// access to a shared one.
type Runtime struct {
	Symbols  *SymbolTable
	Macros   *MacroRegistry
	Root     *LEnv
	Stack    *CallStack
	Reader   Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Profiler Profiler
	numenv   uint
	numesc   uint
	special  specialSymbols
}

// StandardRuntime returns a new Runtime with a fresh symbol table and macro
// registry.  Stdout and Stderr are set to os.Stdout and os.Stderr.
func StandardRuntime() *Runtime {
	syms := NewSymbolTable()
	return &Runtime{
		Symbols: syms,
		Macros:  NewMacroRegistry(),
		Stack:   &CallStack{},
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		special: newSpecialSymbols(syms),
	}
}

// Intern returns the symbol named name in r's symbol table.
func (r *Runtime) Intern(name string) *Symbol {
	return r.Symbols.Intern(name)
}

func (r *Runtime) genEnvID() uint {
	r.numenv++
	return r.numenv
}

func (r *Runtime) genEscapeID() uint {
	r.numesc++
	return r.numesc
}

// MacroRegistry maps symbols to macro procedures.  Macros are consulted only
// while expanding source forms, never while evaluating them.
type MacroRegistry struct {
	macros map[*Symbol]*LVal
}

// NewMacroRegistry returns an empty MacroRegistry.
func NewMacroRegistry() *MacroRegistry {
	return &MacroRegistry{
		macros: make(map[*Symbol]*LVal),
	}
}

// Get returns the macro registered under sym or nil.
func (m *MacroRegistry) Get(sym *Symbol) *LVal {
	return m.macros[sym]
}

// Put registers fun as the macro sym, replacing any previous definition.
func (m *MacroRegistry) Put(sym *Symbol, fun *LVal) {
	m.macros[sym] = fun
}

// Names returns the sorted names of all registered macros.
func (m *MacroRegistry) Names() []string {
	names := make([]string, 0, len(m.macros))
	for sym := range m.macros {
		names = append(names, sym.name)
	}
	sort.Strings(names)
	return names
}
