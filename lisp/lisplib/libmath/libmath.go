// Copyright © 2018 The ELPS authors

package libmath

import (
	"math"
	"math/rand"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib/internal/libutil"
)

// LoadPackage binds the math procedures in the root environment of env.
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	env.AddBuiltins(libutil.Defs(builtins)...)
	return lisp.Nil()
}

// Builtins returns the math procedures.
func Builtins() []lisp.LBuiltinDef {
	return libutil.Defs(builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("abs", 1, 1, builtinAbs,
		`Returns the absolute value of number.  Preserves the type: an int
		argument returns an int, a float returns a float.`),
	unary("acos", math.Acos, `Returns the arccosine of x in radians.`),
	unary("acosh", math.Acosh, `Returns the inverse hyperbolic cosine of x.`),
	unary("asin", math.Asin, `Returns the arcsine of x in radians.`),
	unary("asinh", math.Asinh, `Returns the inverse hyperbolic sine of x.`),
	unary("atan", math.Atan, `Returns the arctangent of x in radians.`),
	unary("atanh", math.Atanh, `Returns the inverse hyperbolic tangent of x.`),
	libutil.FunctionDoc("atan2", 2, 2, builtinAtan2,
		`Returns the arctangent of y/x in radians, using the signs of both
		arguments to determine the quadrant.`),
	unary("cbrt", math.Cbrt, `Returns the cube root of x.`),
	rounding("ceil", math.Ceil,
		`Returns the least integer value not less than x.  Ints are returned
		unchanged.`),
	unary("cos", math.Cos, `Returns the cosine of x radians.`),
	unary("cosh", math.Cosh, `Returns the hyperbolic cosine of x.`),
	unary("exp", math.Exp, `Returns e raised to the power x.`),
	unary("expm1", math.Expm1, `Returns e raised to the power x, minus 1.`),
	rounding("floor", math.Floor,
		`Returns the greatest integer value not greater than x.  Ints are
		returned unchanged.`),
	libutil.FunctionDoc("hypot", 0, -1, builtinHypot,
		`Returns the square root of the sum of squares of its arguments.`),
	unary("log", math.Log, `Returns the natural logarithm of x.`),
	unary("log1p", math.Log1p, `Returns the natural logarithm of 1 plus x.`),
	unary("log10", math.Log10, `Returns the base 10 logarithm of x.`),
	unary("log2", math.Log2, `Returns the base 2 logarithm of x.`),
	libutil.FunctionDoc("max", 1, -1, builtinMax,
		`Returns the largest argument.`),
	libutil.FunctionDoc("min", 1, -1, builtinMin,
		`Returns the smallest argument.`),
	libutil.FunctionDoc("pow", 2, 2, builtinPow,
		`Returns x raised to the power y as a float.`),
	libutil.FunctionDoc("random", 0, 0, builtinRandom,
		`Returns a pseudo-random float in the interval [0, 1).`),
	rounding("round", roundHalfUp,
		`Returns x rounded to the nearest integer value.  Halves round toward
		positive infinity.`),
	libutil.FunctionDoc("sign", 1, 1, builtinSign,
		`Returns -1, 0, or 1 according to the sign of x.`),
	unary("sin", math.Sin, `Returns the sine of x radians.`),
	unary("sinh", math.Sinh, `Returns the hyperbolic sine of x.`),
	unary("sqrt", math.Sqrt, `Returns the square root of x.`),
	unary("tan", math.Tan, `Returns the tangent of x radians.`),
	unary("tanh", math.Tanh, `Returns the hyperbolic tangent of x.`),
	rounding("trunc", math.Trunc,
		`Returns the integer value of x with any fraction removed.  Ints are
		returned unchanged.`),
}

// unary returns a builtin computing fn over a single number as a float.
func unary(name string, fn func(float64) float64, docs string) *libutil.Builtin {
	return libutil.FunctionDoc(name, 1, 1, func(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
		x := args[0]
		if lerr := libutil.Number(env, x); lerr != nil {
			return lerr
		}
		return lisp.Float(fn(x.AsFloat()))
	}, docs)
}

// rounding is like unary but returns int arguments unchanged.
func rounding(name string, fn func(float64) float64, docs string) *libutil.Builtin {
	return libutil.FunctionDoc(name, 1, 1, func(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
		x := args[0]
		if lerr := libutil.Number(env, x); lerr != nil {
			return lerr
		}
		if x.Type == lisp.LInt {
			return x
		}
		return lisp.Float(fn(x.Float))
	}, docs)
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func builtinAbs(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	x := args[0]
	switch x.Type {
	case lisp.LFloat:
		return lisp.Float(math.Abs(x.Float))
	case lisp.LInt:
		if x.Int >= 0 {
			return x
		}
		abs := -x.Int
		if abs < 0 {
			return env.Errorf("integer overflow: absolute value overflows int")
		}
		return lisp.Int(abs)
	default:
		return libutil.Number(env, x)
	}
}

func builtinAtan2(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	return lisp.Float(math.Atan2(args[0].AsFloat(), args[1].AsFloat()))
}

func builtinHypot(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	h := 0.0
	for _, x := range args {
		h = math.Hypot(h, x.AsFloat())
	}
	return lisp.Float(h)
}

func builtinMax(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return extremum(env, args, func(a, b float64) bool { return a > b })
}

func builtinMin(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return extremum(env, args, func(a, b float64) bool { return a < b })
}

// extremum returns the argument preferred by better.  Ties keep the earlier
// argument.
func extremum(env *lisp.LEnv, args []*lisp.LVal, better func(a, b float64) bool) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	best := args[0]
	for _, x := range args[1:] {
		if math.IsNaN(x.AsFloat()) {
			return x
		}
		if better(x.AsFloat(), best.AsFloat()) {
			best = x
		}
	}
	return best
}

func builtinPow(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	if lerr := libutil.Numbers(env, args); lerr != nil {
		return lerr
	}
	return lisp.Float(math.Pow(args[0].AsFloat(), args[1].AsFloat()))
}

func builtinRandom(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return lisp.Float(rand.Float64()) //#nosec G404
}

func builtinSign(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	x := args[0]
	if lerr := libutil.Number(env, x); lerr != nil {
		return lerr
	}
	if x.Type == lisp.LInt {
		switch {
		case x.Int > 0:
			return lisp.Int(1)
		case x.Int < 0:
			return lisp.Int(-1)
		default:
			return lisp.Int(0)
		}
	}
	switch {
	case x.Float > 0:
		return lisp.Float(1)
	case x.Float < 0:
		return lisp.Float(-1)
	default:
		return x
	}
}
