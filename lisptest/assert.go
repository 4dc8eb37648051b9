// Copyright © 2018 The ELPS authors

package lisptest

import (
	"testing"

	"github.com/luthersystems/schemer/lisp"
)

type assertion struct {
	name string
	min  int
	max  int
	fun  lisp.LBuiltin
	docs string
}

func (a *assertion) Name() string { return a.name }
func (a *assertion) Arity() (int, int) { return a.min, a.max }
func (a *assertion) Eval(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal { return a.fun(env, args) }
func (a *assertion) Docstring() string { return a.docs }

// assertions returns builtins which report failures to t.  A failed
// assertion also returns an error so that the script stops.
func assertions(t testing.TB) []lisp.LBuiltinDef {
	return []lisp.LBuiltinDef{
		&assertion{"assert", 1, 2, func(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
			if args[0].IsTrue() {
				return lisp.Bool(true)
			}
			msg := "assertion failed"
			if len(args) > 1 {
				msg = args[1].String()
				if args[1].Type == lisp.LString {
					msg = args[1].Str
				}
			}
			t.Helper()
			t.Errorf("%s", msg)
			return env.Errorf("%s", msg)
		}, `Fails the test unless x is true.`},
		&assertion{"assert-equal", 2, 2, func(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
			if args[0].Equal(args[1]) {
				return lisp.Bool(true)
			}
			t.Helper()
			t.Errorf("expected %v (got %v)", args[0], args[1])
			return env.Errorf("expected %v (got %v)", args[0], args[1])
		}, `Fails the test unless expected and actual are equal?.`},
	}
}
