// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"strings"
)

// Loader is a function which loads builtins or source code into a root
// environment.
type Loader func(env *LEnv) *LVal

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of LVals that it
	// contains.  Symbols are interned in symbols.  The returned LVals are
	// top-level forms and should be evaluated in order.
	Read(symbols *SymbolTable, name string, r io.Reader) ([]*LVal, error)
}

// LoadString is like Load but takes the source as a string.
func (env *LEnv) LoadString(name, exprs string) *LVal {
	return env.Load(name, strings.NewReader(exprs))
}

// Load reads LVals from r and evaluates each of them as a top-level form in
// the root environment.  The value of the last form is returned.  Evaluation
// stops at the first error, which is returned.  If env.Runtime.Reader has not
// been set then an error will be returned by Load.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return env.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(env.Runtime.Symbols, name, r)
	if err != nil {
		return env.ErrorConditionf(CondSyntaxError, "%v", err)
	}
	_, v := env.Runtime.Root.load(exprs)
	return v
}

// load evaluates exprs and returns the last core form evaluated with its
// value.
func (env *LEnv) load(exprs []*LVal) (*LVal, *LVal) {
	core, ret := Unspecified(), Unspecified()
	for _, expr := range exprs {
		core = env.expand(expr, true)
		if core.Type == LError {
			return core, core
		}
		ret = env.Eval(core)
		if ret.Type == LMarkEscape {
			// A mark can only reach the top level if its call/cc already
			// returned, which makes the escape invalid.
			ret = env.located(env.ErrorConditionf(CondEscapeExpired,
				"continuation invoked outside of its extent"), expr)
		}
		if ret.Type == LError {
			return core, ret
		}
	}
	return core, ret
}

// Interpret reads, expands, and evaluates every top-level form in src and
// returns the printed representation of the last value.  When the last form
// was a definition, or had no useful value, NoValue is returned.  On failure
// the error and its stack trace are written to env.Runtime.Stderr and
// FailureMarker is returned.
//
// Interpret leaves the runtime usable after a failure.  Definitions made by
// forms preceding the failure remain in effect.
func (env *LEnv) Interpret(name, src string) string {
	root := env.Runtime.Root
	if env.Runtime.Reader == nil {
		return root.fail(root.Errorf("no reader for environment runtime"))
	}
	exprs, err := env.Runtime.Reader.Read(env.Runtime.Symbols, name, strings.NewReader(src))
	if err != nil {
		return root.fail(root.ErrorConditionf(CondSyntaxError, "%v", err))
	}
	core, v := root.load(exprs)
	if v.Type == LError {
		return root.fail(v)
	}
	return root.result(core, v)
}

// InterpretForm is like Interpret but takes a single form which has already
// been read.  On failure the call stack is reset and the error is returned
// along with FailureMarker instead of being written to Runtime.Stderr.
func (env *LEnv) InterpretForm(x *LVal) (string, *LVal) {
	root := env.Runtime.Root
	core, v := root.load([]*LVal{x})
	if v.Type == LError {
		env.Runtime.Stack.Reset()
		return FailureMarker, v
	}
	return root.result(core, v), nil
}

// result returns the printed representation of v, the value of the core
// form core.
func (env *LEnv) result(core, v *LVal) string {
	if v.Type == LUnspecified || core.IsPair() && core.Cells[0].IsSymbol(env.Runtime.special.define) {
		return NoValue
	}
	return v.String()
}

func (env *LEnv) fail(lerr *LVal) string {
	if env.Runtime.Stderr != nil {
		(*ErrorVal)(lerr).WriteTrace(env.Runtime.Stderr)
	}
	env.Runtime.Stack.Reset()
	return FailureMarker
}
