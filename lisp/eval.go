// Copyright © 2018 The ELPS authors

package lisp

import "strconv"

// EvalForm expands x as a top-level form and evaluates the result in env.
func (env *LEnv) EvalForm(x *LVal) *LVal {
	return env.expandEval(x, true)
}

func (env *LEnv) expandEval(x *LVal, toplevel bool) *LVal {
	core := env.expand(x, toplevel)
	if core.Type == LError {
		return core
	}
	return env.Eval(core)
}

// Eval evaluates the core form x in env.  The chosen branch of an if and the
// last expression of a begin are evaluated by looping rather than by
// recursion, so tail calls through those positions use constant Go stack.
// All other evaluation, including the body of an applied closure, recurses.
//
// Eval returns an LError on failure, or an LMarkEscape while an escape
// continuation is unwinding to its call/cc.
func (env *LEnv) Eval(x *LVal) *LVal {
	sp := &env.Runtime.special
	for {
		switch x.Type {
		case LSymbol:
			return env.located(env.Get(x.Sym), x)
		case LSExpr:
		default:
			return x
		}
		if len(x.Cells) == 0 {
			return env.located(env.ErrorConditionf(CondTypeError, "cannot evaluate the empty list"), x)
		}
		head := x.Cells[0]
		if head.Type == LSymbol {
			switch head.Sym {
			case sp.quote:
				if len(x.Cells) != 2 {
					return env.malformed(x)
				}
				return x.Cells[1]
			case sp.ifs:
				if len(x.Cells) != 4 {
					return env.malformed(x)
				}
				test := env.Eval(x.Cells[1])
				if test.Interrupts() {
					return test
				}
				if test.IsTrue() {
					x = x.Cells[2]
				} else {
					x = x.Cells[3]
				}
				continue
			case sp.set:
				if len(x.Cells) != 3 || x.Cells[1].Type != LSymbol {
					return env.malformed(x)
				}
				sym := x.Cells[1].Sym
				v := env.Eval(x.Cells[2])
				if v.Interrupts() {
					return v
				}
				frame, lerr := env.Find(sym)
				if lerr != nil {
					return env.located(lerr, x)
				}
				frame.Scope[sym] = v
				return Unspecified()
			case sp.define:
				if len(x.Cells) != 3 || x.Cells[1].Type != LSymbol {
					return env.malformed(x)
				}
				sym := x.Cells[1].Sym
				v := env.Eval(x.Cells[2])
				if v.Interrupts() {
					return v
				}
				if v.Type == LFun && v.FunData().Name == "" {
					v.FunData().Name = sym.name
				}
				env.Scope[sym] = v
				return v
			case sp.lambda:
				if len(x.Cells) != 3 {
					return env.malformed(x)
				}
				fun := Lambda(x.Cells[1], x.Cells[2], env)
				fun.FunData().Doc = docstring(x.Cells[2], sp.begin)
				return fun
			case sp.begin:
				if len(x.Cells) == 1 {
					return Unspecified()
				}
				last := len(x.Cells) - 1
				for _, e := range x.Cells[1:last] {
					v := env.Eval(e)
					if v.Interrupts() {
						return v
					}
				}
				x = x.Cells[last]
				continue
			}
		}
		return env.application(x)
	}
}

// docstring returns the leading string of a closure body with more than one
// expression.
func docstring(body *LVal, begin *Symbol) string {
	if len(body.Cells) < 3 || !body.Cells[0].IsSymbol(begin) {
		return ""
	}
	if body.Cells[1].Type != LString {
		return ""
	}
	return body.Cells[1].Str
}

// application evaluates every element of x left to right and applies the
// first to the rest.
func (env *LEnv) application(x *LVal) *LVal {
	vals := make([]*LVal, len(x.Cells))
	for i, c := range x.Cells {
		v := env.Eval(c)
		if v.Interrupts() {
			return v
		}
		vals[i] = v
	}
	fun := vals[0]
	if fun.Type != LFun {
		return env.located(env.ErrorConditionf(CondTypeError, "not a procedure: %v", fun), x)
	}
	return env.located(env.call(x, fun, vals[1:]), x)
}

// Apply calls fun with args.  The args must already be evaluated.
func (env *LEnv) Apply(fun *LVal, args []*LVal) *LVal {
	if fun.Type != LFun {
		return env.ErrorConditionf(CondTypeError, "not a procedure: %v", fun)
	}
	return env.call(nil, fun, args)
}

func (env *LEnv) call(expr *LVal, fun *LVal, args []*LVal) (v *LVal) {
	rt := env.Runtime
	fd := fun.FunData()
	src := fun.Source
	if expr != nil && expr.Source != nil {
		src = expr.Source
	}
	err := rt.Stack.Push(src, fd.Name)
	if err != nil {
		return env.ErrorConditionf(CondStackOverflow, "%v", err)
	}
	defer rt.Stack.Pop()
	if rt.Profiler != nil && rt.Profiler.IsEnabled() {
		end := rt.Profiler.Start(fun)
		defer func() { end(v) }()
	}
	if fd.Builtin != nil {
		if len(args) < fd.MinArgs || (fd.MaxArgs >= 0 && len(args) > fd.MaxArgs) {
			return env.ErrorConditionf(CondArityError, "%s: %s (got %d)", fd.Name, arityString(fd.MinArgs, fd.MaxArgs), len(args))
		}
		return fd.Builtin(env, args)
	}
	frame := newEnvN(fd.Env, len(args))
	lerr := frame.Bind(fd.Params, args)
	if lerr.Type == LError {
		return lerr
	}
	return frame.Eval(fd.Body)
}

func arityString(min, max int) string {
	switch {
	case max < 0:
		return pluralArgs("at least", min)
	case min == max:
		return pluralArgs("exactly", min)
	default:
		return "between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " arguments expected"
	}
}

func pluralArgs(qual string, n int) string {
	if n == 1 {
		return qual + " 1 argument expected"
	}
	return qual + " " + strconv.Itoa(n) + " arguments expected"
}

// located attaches the source location of expr to v if v is an error
// without a location.
func (env *LEnv) located(v *LVal, expr *LVal) *LVal {
	if v.Type == LError && v.Source == nil {
		v.Source = expr.Source
	}
	return v
}

func (env *LEnv) malformed(x *LVal) *LVal {
	return env.located(env.ErrorConditionf(CondSyntaxError, "%v: malformed special form", x), x)
}
