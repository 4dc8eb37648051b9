// Copyright © 2018 The ELPS authors

package lisp

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	// Arity returns the minimum and maximum number of arguments.  A
	// negative maximum means the function is variadic.
	Arity() (min, max int)
	Eval(env *LEnv, args []*LVal) *LVal
	Docstring() string
}

type langBuiltin struct {
	name string
	min  int
	max  int
	fun  LBuiltin
	docs string
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Arity() (int, int) {
	return fun.min, fun.max
}

func (fun *langBuiltin) Eval(env *LEnv, args []*LVal) *LVal {
	return fun.fun(env, args)
}

func (fun *langBuiltin) Docstring() string {
	return fun.docs
}

func builtinValue(f LBuiltinDef) *LVal {
	min, max := f.Arity()
	v := Fun(f.Name(), min, max, f.Eval)
	v.FunData().Doc = f.Docstring()
	return v
}

var langBuiltins = []*langBuiltin{
	{"call/cc", 1, 1, builtinCallCC,
		`Calls proc with a one-shot escape procedure.  Calling the escape
		procedure with a value returns that value from call/cc.  The escape
		procedure cannot be used after call/cc returns.`},
	{"apply", 2, 2, builtinApply,
		`Calls proc with the elements of list as its arguments.`},
	{"eval", 1, 1, builtinEval,
		`Expands and evaluates expr in the global environment.`},
	{"macroexpand", 1, 1, builtinMacroExpand,
		`Returns the core form produced by expanding expr.  Macro
		definitions in expr are not allowed.`},
}

var langMacros = []*langBuiltin{
	{"let", 0, -1, macroLet,
		`(let ((var expr) ...) body ...) binds each var to the value of its
		expr and evaluates body in the new scope.`},
}

// DefaultBuiltins returns the builtins every root environment is seeded
// with.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	return ops
}

// DefaultMacros returns the macros every macro registry is seeded with.
func DefaultMacros() []LBuiltinDef {
	macs := make([]LBuiltinDef, len(langMacros))
	for i := range langMacros {
		macs[i] = langMacros[i]
	}
	return macs
}

func builtinCallCC(env *LEnv, args []*LVal) *LVal {
	return env.CallCC(args[0])
}

func builtinApply(env *LEnv, args []*LVal) *LVal {
	fun, list := args[0], args[1]
	if list.Type != LSExpr {
		return env.ErrorConditionf(CondTypeError, "second argument is not a list: %v", list.Type)
	}
	return env.Apply(fun, list.Cells)
}

func builtinEval(env *LEnv, args []*LVal) *LVal {
	return env.Runtime.Root.expandEval(args[0], false)
}

func builtinMacroExpand(env *LEnv, args []*LVal) *LVal {
	return env.Runtime.Root.expand(args[0], false)
}
