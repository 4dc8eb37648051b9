// Copyright © 2018 The ELPS authors

package libutil

import "github.com/luthersystems/schemer/lisp"

// Function returns a builtin accepting between min and max arguments.  A
// negative max makes the builtin variadic.
func Function(name string, min, max int, fun lisp.LBuiltin) *Builtin {
	return &Builtin{name, min, max, fun, ""}
}

// FunctionDoc is like Function but attaches a docstring.
func FunctionDoc(name string, min, max int, fun lisp.LBuiltin, docs string) *Builtin {
	return &Builtin{name, min, max, fun, docs}
}

// Builtin implements lisp.LBuiltinDef.
type Builtin struct {
	name string
	min  int
	max  int
	fun  lisp.LBuiltin
	docs string
}

func (fun *Builtin) Name() string {
	return fun.name
}

func (fun *Builtin) Arity() (int, int) {
	return fun.min, fun.max
}

func (fun *Builtin) Eval(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return fun.fun(env, args)
}

func (fun *Builtin) Docstring() string {
	return fun.docs
}

// Defs converts builtins for lisp.LEnv.AddBuiltins.
func Defs(funs []*Builtin) []lisp.LBuiltinDef {
	defs := make([]lisp.LBuiltinDef, len(funs))
	for i := range funs {
		defs[i] = funs[i]
	}
	return defs
}

// Number returns an error unless v is an int or a float.
func Number(env *lisp.LEnv, v *lisp.LVal) *lisp.LVal {
	if !v.IsNumeric() {
		return env.ErrorConditionf(lisp.CondTypeError, "argument is not a number: %v", v.Type)
	}
	return nil
}

// Numbers returns an error unless every element of args is a number.
func Numbers(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	for _, v := range args {
		if lerr := Number(env, v); lerr != nil {
			return lerr
		}
	}
	return nil
}

// List returns an error unless v is a list.
func List(env *lisp.LEnv, v *lisp.LVal) *lisp.LVal {
	if v.Type != lisp.LSExpr {
		return env.ErrorConditionf(lisp.CondTypeError, "argument is not a list: %v", v.Type)
	}
	return nil
}
