// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
)

// InitializeUserEnv seeds the root environment env with the core builtins
// (call/cc, apply, eval, macroexpand) and the let macro, then applies the
// given configuration.  Loaders that register the rest of the builtin table
// are passed as config with WithLoader.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	if env.Parent != nil {
		return env.Errorf("not a root environment")
	}
	env.AddBuiltins(DefaultBuiltins()...)
	env.AddMacros(DefaultMacros()...)
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Nil()
}

// LEnv is a lisp environment frame.  An LEnv owns its Scope and refers to,
// but does not own, its Parent.  Only the root environment of a Runtime has
// no Parent.
type LEnv struct {
	Scope   map[*Symbol]*LVal
	Parent  *LEnv
	Runtime *Runtime
	ID      uint
}

// NewEnv returns initializes and returns a new LEnv.  When parent is nil a
// new Runtime is created and the returned LEnv becomes its root.
func NewEnv(parent *LEnv) *LEnv {
	return newEnvN(parent, 0)
}

// NewEnvRuntime initializes a new root LEnv, like NewEnv, but it explicitly
// specifies the runtime to use.  When rt is nil StandardRuntime() is called
// to create a new Runtime.
func NewEnvRuntime(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	env := &LEnv{
		ID:      rt.genEnvID(),
		Scope:   make(map[*Symbol]*LVal),
		Runtime: rt,
	}
	rt.Root = env
	return env
}

// newEnvN creates a child LEnv with its Scope map pre-sized to hold n
// bindings.
func newEnvN(parent *LEnv, n int) *LEnv {
	if parent == nil {
		return NewEnvRuntime(nil)
	}
	return &LEnv{
		ID:      parent.Runtime.genEnvID(),
		Scope:   make(map[*Symbol]*LVal, n),
		Parent:  parent,
		Runtime: parent.Runtime,
	}
}

// Bind zips the parameter spec params against args into env's own scope.
// When params is a list of symbols the number of args must match exactly.
// When params is a single symbol all args are bound to it as one list.
func (env *LEnv) Bind(params *LVal, args []*LVal) *LVal {
	switch params.Type {
	case LSymbol:
		cells := make([]*LVal, len(args))
		copy(cells, args)
		env.Scope[params.Sym] = SExpr(cells)
		return Nil()
	case LSExpr:
		if len(params.Cells) != len(args) {
			return env.ErrorConditionf(CondArityError,
				"args.length: %d != params.length: %d", len(args), len(params.Cells))
		}
		for i, p := range params.Cells {
			if p.Type != LSymbol {
				return env.ErrorConditionf(CondSyntaxError, "illegal parameter: %v", p)
			}
			env.Scope[p.Sym] = args[i]
		}
		return Nil()
	default:
		return env.ErrorConditionf(CondSyntaxError, "illegal parameter spec: %v", params)
	}
}

// Update merges bindings into env's own scope, interning each name.  The
// last write for a name wins.
func (env *LEnv) Update(bindings map[string]*LVal) {
	for name, v := range bindings {
		env.Scope[env.Runtime.Intern(name)] = v
	}
}

// Find returns the innermost environment in the chain starting at env whose
// own scope binds sym.  If no environment binds sym an unbound-variable
// error is returned.
func (env *LEnv) Find(sym *Symbol) (*LEnv, *LVal) {
	for e := env; e != nil; e = e.Parent {
		if _, ok := e.Scope[sym]; ok {
			return e, nil
		}
	}
	return nil, env.ErrorConditionf(CondUnboundVariable, "%s", sym.name)
}

// Get returns the value bound to sym, or an unbound-variable error.
func (env *LEnv) Get(sym *Symbol) *LVal {
	frame, lerr := env.Find(sym)
	if lerr != nil {
		return lerr
	}
	return frame.Scope[sym]
}

// GetName is like Get but takes the symbol's name.
func (env *LEnv) GetName(name string) *LVal {
	return env.Get(env.Runtime.Intern(name))
}

// Put binds sym to v in env's own scope.
func (env *LEnv) Put(sym *Symbol, v *LVal) {
	env.Scope[sym] = v
}

// PutGlobal binds sym to v in the root environment.
func (env *LEnv) PutGlobal(sym *Symbol, v *LVal) {
	env.Runtime.Root.Put(sym, v)
}

// Symbol returns an LVal for the symbol named name, interning it in env's
// runtime.
func (env *LEnv) Symbol(name string) *LVal {
	return Sym(env.Runtime.Intern(name))
}

// AddBuiltins binds each of funs in the root environment.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	root := env.Runtime.Root
	for _, f := range funs {
		root.Put(env.Runtime.Intern(f.Name()), builtinValue(f))
	}
}

// AddMacros registers each of macs in the runtime's macro registry.
func (env *LEnv) AddMacros(macs ...LBuiltinDef) {
	for _, m := range macs {
		env.Runtime.Macros.Put(env.Runtime.Intern(m.Name()), builtinValue(m))
	}
}

// Errorf returns an LError value with a formatted error message.
func (env *LEnv) Errorf(format string, v ...interface{}) *LVal {
	return env.ErrorConditionf(CondError, format, v...)
}

// ErrorConditionf returns an LError value with the given condition type and a
// a formatted error message rendered using fmt.Sprintf.
//
// Unlike the exported function, the ErrorConditionf method returns an LVal
// with a copy env.Runtime.Stack.
func (env *LEnv) ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return &LVal{
		Type:   LError,
		Str:    condition,
		Native: env.Runtime.Stack.Copy(),
		Cells:  []*LVal{String(fmt.Sprintf(format, v...))},
	}
}

// Error returns an LError value wrapping err, with a copy of
// env.Runtime.Stack.
func (env *LEnv) Error(err error) *LVal {
	lerr := Error(err)
	lerr.Native = env.Runtime.Stack.Copy()
	return lerr
}
