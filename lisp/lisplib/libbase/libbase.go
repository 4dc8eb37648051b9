// Copyright © 2018 The ELPS authors

// Package libbase provides arithmetic, comparison, and list procedures.
package libbase

import (
	"fmt"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib/internal/libutil"
)

// LoadPackage binds the base procedures in the root environment of env.
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	env.AddBuiltins(libutil.Defs(builtins)...)
	return lisp.Nil()
}

// Builtins returns the base procedures.
func Builtins() []lisp.LBuiltinDef {
	return libutil.Defs(builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("+", 0, -1, builtinAdd,
		`Returns the sum of its arguments.  The result is an int unless an
		argument is a float.`),
	libutil.FunctionDoc("-", 1, -1, builtinSub,
		`Returns the first argument minus the rest.  With a single argument
		returns its negation.`),
	libutil.FunctionDoc("*", 0, -1, builtinMul,
		`Returns the product of its arguments.  The result is an int unless
		an argument is a float.`),
	libutil.FunctionDoc("/", 1, -1, builtinDiv,
		`Returns the first argument divided by the rest.  Int division that
		is exact produces an int, otherwise the result is a float.  Dividing
		an int by int zero is an error.`),
	libutil.FunctionDoc("not", 1, 1, builtinNot,
		`Returns #t if the argument is #f and #f otherwise.`),
	libutil.FunctionDoc(">", 2, -1, builtinGT,
		`Returns #t if the numeric arguments are strictly decreasing.`),
	libutil.FunctionDoc("<", 2, -1, builtinLT,
		`Returns #t if the numeric arguments are strictly increasing.`),
	libutil.FunctionDoc(">=", 2, -1, builtinGEq,
		`Returns #t if the numeric arguments are non-increasing.`),
	libutil.FunctionDoc("<=", 2, -1, builtinLEq,
		`Returns #t if the numeric arguments are non-decreasing.`),
	libutil.FunctionDoc("=", 2, 2, builtinNumEq,
		`Returns #t if two numbers are equal in value, or two other values
		are the same atom or object.`),
	libutil.FunctionDoc("equal?", 2, 2, builtinEqual,
		`Returns #t if the arguments are structurally equal.`),
	libutil.FunctionDoc("eq?", 2, 2, builtinEq,
		`Returns #t if the arguments are the same atom or object.`),
	libutil.FunctionDoc("length", 1, 1, builtinLength,
		`Returns the number of elements in a list or bytes in a string.`),
	libutil.FunctionDoc("cons", 2, 2, builtinCons,
		`Returns a new list with x prepended to list.`),
	libutil.FunctionDoc("car", 1, 1, builtinCar,
		`Returns the first element of a non-empty list.`),
	libutil.FunctionDoc("cdr", 1, 1, builtinCdr,
		`Returns all but the first element of a non-empty list.`),
	libutil.FunctionDoc("append", 0, -1, builtinAppend,
		`Returns a new list containing the elements of each list argument in
		order.`),
	libutil.FunctionDoc("list", 0, -1, builtinList,
		`Returns a list of its arguments.`),
	libutil.FunctionDoc("list?", 1, 1, builtinIsList,
		`Returns #t if the argument is a list, including the empty list.`),
	libutil.FunctionDoc("null?", 1, 1, builtinIsNull,
		`Returns #t if the argument is the empty list.`),
	libutil.FunctionDoc("symbol?", 1, 1, builtinIsSymbol,
		`Returns #t if the argument is a symbol.`),
	libutil.FunctionDoc("boolean?", 1, 1, builtinIsBool,
		`Returns #t if the argument is #t or #f.`),
	libutil.FunctionDoc("pair?", 1, 1, builtinIsPair,
		`Returns #t if the argument is a non-empty list.`),
	libutil.FunctionDoc("display", 1, 1, builtinDisplay,
		`Writes the argument to standard output followed by a newline.
		Strings are written without quotes.`),
}

func builtinAdd(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	sum := lisp.Int(0)
	for _, x := range args {
		sum = arith(sum, x,
			func(a, b int) int { return a + b },
			func(a, b float64) float64 { return a + b })
	}
	return sum
}

func builtinSub(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	sub := func(a, b int) int { return a - b }
	fsub := func(a, b float64) float64 { return a - b }
	if len(args) == 1 {
		return arith(lisp.Int(0), args[0], sub, fsub)
	}
	diff := args[0]
	for _, x := range args[1:] {
		diff = arith(diff, x, sub, fsub)
	}
	return diff
}

func builtinMul(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	prod := lisp.Int(1)
	for _, x := range args {
		prod = arith(prod, x,
			func(a, b int) int { return a * b },
			func(a, b float64) float64 { return a * b })
	}
	return prod
}

func builtinDiv(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	if len(args) == 1 {
		args = []*lisp.LVal{lisp.Int(1), args[0]}
	}
	quo := args[0]
	for _, x := range args[1:] {
		if quo.Type == lisp.LInt && x.Type == lisp.LInt {
			if x.Int == 0 {
				return env.Errorf("division by zero")
			}
			if quo.Int%x.Int == 0 {
				quo = lisp.Int(quo.Int / x.Int)
				continue
			}
		}
		quo = lisp.Float(quo.AsFloat() / x.AsFloat())
	}
	return quo
}

// arith applies op to two numbers, converting to float unless both are ints.
func arith(a, b *lisp.LVal, op func(a, b int) int, fop func(a, b float64) float64) *lisp.LVal {
	if a.Type == lisp.LInt && b.Type == lisp.LInt {
		return lisp.Int(op(a.Int, b.Int))
	}
	return lisp.Float(fop(a.AsFloat(), b.AsFloat()))
}

func builtinNot(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Bool(!args[0].IsTrue())
}

func builtinGT(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return compareChain(env, args, func(a, b float64) bool { return a > b })
}

func builtinLT(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return compareChain(env, args, func(a, b float64) bool { return a < b })
}

func builtinGEq(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return compareChain(env, args, func(a, b float64) bool { return a >= b })
}

func builtinLEq(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return compareChain(env, args, func(a, b float64) bool { return a <= b })
}

func compareChain(env *lisp.LEnv, args []*lisp.LVal, ok func(a, b float64) bool) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	for i := 1; i < len(args); i++ {
		if !ok(args[i-1].AsFloat(), args[i].AsFloat()) {
			return lisp.Bool(false)
		}
	}
	return lisp.Bool(true)
}

func builtinNumEq(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	a, b := args[0], args[1]
	if a.IsNumeric() && b.IsNumeric() {
		return lisp.Bool(a.EqualNum(b))
	}
	return lisp.Bool(a.Eqv(b))
}

func builtinEqual(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Bool(args[0].Equal(args[1]))
}

func builtinEq(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Bool(args[0].Eqv(args[1]))
}

func builtinLength(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	switch v := args[0]; v.Type {
	case lisp.LSExpr:
		return lisp.Int(len(v.Cells))
	case lisp.LString:
		return lisp.Int(len(v.Str))
	default:
		return env.ErrorConditionf(lisp.CondTypeError, "argument has no length: %v", v.Type)
	}
}

func builtinCons(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	x, list := args[0], args[1]
	if lerr := libutil.List(env, list); lerr != nil {
		return lerr
	}
	cells := make([]*lisp.LVal, 0, len(list.Cells)+1)
	cells = append(cells, x)
	cells = append(cells, list.Cells...)
	return lisp.SExpr(cells)
}

func builtinCar(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	list := args[0]
	if !list.IsPair() {
		return env.ErrorConditionf(lisp.CondTypeError, "argument is not a pair: %v", list)
	}
	return list.Cells[0]
}

func builtinCdr(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	list := args[0]
	if !list.IsPair() {
		return env.ErrorConditionf(lisp.CondTypeError, "argument is not a pair: %v", list)
	}
	// Lists are never mutated so the tail can share storage.
	return lisp.SExpr(list.Cells[1:])
}

func builtinAppend(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	n := 0
	for _, list := range args {
		if lerr := libutil.List(env, list); lerr != nil {
			return lerr
		}
		n += len(list.Cells)
	}
	cells := make([]*lisp.LVal, 0, n)
	for _, list := range args {
		cells = append(cells, list.Cells...)
	}
	return lisp.SExpr(cells)
}

func builtinList(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	cells := make([]*lisp.LVal, len(args))
	copy(cells, args)
	return lisp.SExpr(cells)
}

func builtinIsList(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Bool(args[0].Type == lisp.LSExpr)
}

func builtinIsNull(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Bool(args[0].IsNil())
}

func builtinIsSymbol(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Bool(args[0].Type == lisp.LSymbol)
}

func builtinIsBool(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Bool(args[0].Type == lisp.LBool)
}

func builtinIsPair(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Bool(args[0].IsPair())
}

func builtinDisplay(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	v := args[0]
	var err error
	if v.Type == lisp.LString {
		_, err = fmt.Fprintln(env.Runtime.Stdout, v.Str)
	} else {
		_, err = fmt.Fprintln(env.Runtime.Stdout, v)
	}
	if err != nil {
		return env.Error(err)
	}
	return lisp.Unspecified()
}
