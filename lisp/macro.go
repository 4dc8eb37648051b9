// Copyright © 2018 The ELPS authors

package lisp

// Expand rewrites the source form x into a core form, treating x as a
// top-level form.  Macro applications are expanded and define-macro forms
// are evaluated, registering the macro and producing Unspecified.  Expand
// never modifies x.
func (env *LEnv) Expand(x *LVal) *LVal {
	return env.expand(x, true)
}

// ExpandQuasiquote returns the core form which constructs the quasiquote
// template x at run time.
func (env *LEnv) ExpandQuasiquote(x *LVal) *LVal {
	return env.expandQuasiquote(x)
}

// require returns a syntax-error for x with the given message if ok is
// false.  Otherwise require returns nil.
func (env *LEnv) require(x *LVal, ok bool, msg string) *LVal {
	if ok {
		return nil
	}
	return env.located(env.ErrorConditionf(CondSyntaxError, "%v: %s", x, msg), x)
}

const wrongLength = "wrong length"

func (env *LEnv) expand(x *LVal, toplevel bool) *LVal {
	if x.Type != LSExpr {
		return x
	}
	if lerr := env.require(x, len(x.Cells) != 0, wrongLength); lerr != nil {
		return lerr
	}
	sp := &env.Runtime.special
	head := x.Cells[0]
	if head.Type != LSymbol {
		return env.expandCells(x, false)
	}
	switch head.Sym {
	case sp.quote:
		if lerr := env.require(x, len(x.Cells) == 2, wrongLength); lerr != nil {
			return lerr
		}
		return x
	case sp.ifs:
		if len(x.Cells) == 3 {
			cells := make([]*LVal, 4)
			copy(cells, x.Cells)
			cells[3] = Unspecified()
			x = derived(cells, x)
		}
		if lerr := env.require(x, len(x.Cells) == 4, wrongLength); lerr != nil {
			return lerr
		}
		return env.expandCells(x, false)
	case sp.set:
		if lerr := env.require(x, len(x.Cells) == 3, wrongLength); lerr != nil {
			return lerr
		}
		if lerr := env.require(x, x.Cells[1].Type == LSymbol, "can set! only a symbol"); lerr != nil {
			return lerr
		}
		val := env.expand(x.Cells[2], false)
		if val.Type == LError {
			return val
		}
		return derived([]*LVal{head, x.Cells[1], val}, x)
	case sp.define, sp.defineMacro:
		return env.expandDefine(x, toplevel)
	case sp.begin:
		if len(x.Cells) == 1 {
			return Unspecified()
		}
		return env.expandCells(x, toplevel)
	case sp.lambda:
		return env.expandLambda(x)
	case sp.quasiquote:
		if lerr := env.require(x, len(x.Cells) == 2, wrongLength); lerr != nil {
			return lerr
		}
		return env.expandQuasiquote(x.Cells[1])
	}
	if mac := env.Runtime.Macros.Get(head.Sym); mac != nil {
		args := make([]*LVal, len(x.Cells)-1)
		copy(args, x.Cells[1:])
		v := env.Apply(mac, args)
		if v.Type == LMarkEscape {
			return env.located(env.Errorf("%v: escape from macro %s", x, head.Sym.name), x)
		}
		if v.Type == LError {
			return env.located(v, x)
		}
		return env.expand(v, false)
	}
	return env.expandCells(x, false)
}

// expandCells expands every element of x into a new list.
func (env *LEnv) expandCells(x *LVal, toplevel bool) *LVal {
	cells := make([]*LVal, len(x.Cells))
	for i, c := range x.Cells {
		v := env.expand(c, toplevel)
		if v.Type == LError {
			return v
		}
		cells[i] = v
	}
	return derived(cells, x)
}

func (env *LEnv) expandDefine(x *LVal, toplevel bool) *LVal {
	sp := &env.Runtime.special
	if lerr := env.require(x, len(x.Cells) >= 3, wrongLength); lerr != nil {
		return lerr
	}
	def, target := x.Cells[0], x.Cells[1]
	if target.Type == LSExpr {
		// (define (f args...) body...) => (define f (lambda (args...) body...))
		if lerr := env.require(x, len(target.Cells) > 0, "illegal definition target"); lerr != nil {
			return lerr
		}
		params := derived(target.Cells[1:], target)
		lambda := make([]*LVal, 0, len(x.Cells))
		lambda = append(lambda, Sym(sp.lambda), params)
		lambda = append(lambda, x.Cells[2:]...)
		return env.expand(derived([]*LVal{def, target.Cells[0], derived(lambda, x)}, x), toplevel)
	}
	if lerr := env.require(x, len(x.Cells) == 3, wrongLength); lerr != nil {
		return lerr
	}
	if lerr := env.require(x, target.Type == LSymbol, "can define only a symbol"); lerr != nil {
		return lerr
	}
	val := env.expand(x.Cells[2], false)
	if val.Type == LError {
		return val
	}
	if def.Sym != sp.defineMacro {
		return derived([]*LVal{def, target, val}, x)
	}
	if lerr := env.require(x, toplevel, "define-macro only allowed at top level"); lerr != nil {
		return lerr
	}
	proc := env.Runtime.Root.Eval(val)
	if proc.Type == LMarkEscape {
		return env.located(env.Errorf("%v: escape from macro definition", x), x)
	}
	if proc.Type == LError {
		return proc
	}
	if lerr := env.require(x, proc.Type == LFun, "macro must be a procedure"); lerr != nil {
		return lerr
	}
	if proc.FunData().Name == "" {
		proc.FunData().Name = target.Sym.name
	}
	env.Runtime.Macros.Put(target.Sym, proc)
	return Unspecified()
}

func (env *LEnv) expandLambda(x *LVal) *LVal {
	sp := &env.Runtime.special
	if lerr := env.require(x, len(x.Cells) >= 3, wrongLength); lerr != nil {
		return lerr
	}
	params := x.Cells[1]
	if lerr := env.require(x, isParamSpec(params), "illegal lambda argument list"); lerr != nil {
		return lerr
	}
	body := x.Cells[2]
	if len(x.Cells) > 3 {
		cells := make([]*LVal, 0, len(x.Cells)-1)
		cells = append(cells, Sym(sp.begin))
		cells = append(cells, x.Cells[2:]...)
		body = derived(cells, x)
	}
	exp := env.expand(body, false)
	if exp.Type == LError {
		return exp
	}
	return derived([]*LVal{x.Cells[0], params, exp}, x)
}

// isParamSpec returns true if v is a list of symbols or a single (variadic)
// symbol.
func isParamSpec(v *LVal) bool {
	switch v.Type {
	case LSymbol:
		return true
	case LSExpr:
		for _, p := range v.Cells {
			if p.Type != LSymbol {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// expandQuasiquote expands `x => 'x; `,x => x; `(,@x y) => (append x `y);
// `(x y) => (cons `x `y).  Unquoted expressions are expanded in place; the
// cons and append scaffolding is not.
func (env *LEnv) expandQuasiquote(x *LVal) *LVal {
	sp := &env.Runtime.special
	if !x.IsPair() {
		return derived([]*LVal{Sym(sp.quote), x}, x)
	}
	head := x.Cells[0]
	if lerr := env.require(x, !head.IsSymbol(sp.unquoteSplicing), "can't splice here"); lerr != nil {
		return lerr
	}
	if head.IsSymbol(sp.unquote) {
		if lerr := env.require(x, len(x.Cells) == 2, wrongLength); lerr != nil {
			return lerr
		}
		return env.expand(x.Cells[1], false)
	}
	rest := env.expandQuasiquote(derived(x.Cells[1:], x))
	if rest.Type == LError {
		return rest
	}
	if head.IsPair() && head.Cells[0].IsSymbol(sp.unquoteSplicing) {
		if lerr := env.require(head, len(head.Cells) == 2, wrongLength); lerr != nil {
			return lerr
		}
		spliced := env.expand(head.Cells[1], false)
		if spliced.Type == LError {
			return spliced
		}
		return derived([]*LVal{Sym(sp.appends), spliced, rest}, x)
	}
	first := env.expandQuasiquote(head)
	if first.Type == LError {
		return first
	}
	return derived([]*LVal{Sym(sp.cons), first, rest}, x)
}

// derived returns a new list with the given cells that carries the source
// location of the form it was derived from.
func derived(cells []*LVal, from *LVal) *LVal {
	v := SExpr(cells)
	v.Source = from.Source
	return v
}

// macroLet rewrites (let ((v e) ...) body ...) into ((lambda (v ...) body ...)
// e ...).
func macroLet(env *LEnv, args []*LVal) *LVal {
	sp := &env.Runtime.special
	x := SExpr(append([]*LVal{Sym(sp.let)}, args...))
	if len(args) > 0 {
		x.Source = args[0].Source
	}
	if lerr := env.require(x, len(args) > 1, wrongLength); lerr != nil {
		return lerr
	}
	bindings := args[0]
	ok := bindings.Type == LSExpr
	if ok {
		for _, b := range bindings.Cells {
			if b.Type != LSExpr || len(b.Cells) != 2 || b.Cells[0].Type != LSymbol {
				ok = false
				break
			}
		}
	}
	if lerr := env.require(x, ok, "illegal binding list"); lerr != nil {
		return lerr
	}
	vars := make([]*LVal, len(bindings.Cells))
	vals := make([]*LVal, len(bindings.Cells))
	for i, b := range bindings.Cells {
		vars[i] = b.Cells[0]
		vals[i] = b.Cells[1]
	}
	lambda := make([]*LVal, 0, len(args)+1)
	lambda = append(lambda, Sym(sp.lambda), derived(vars, bindings))
	lambda = append(lambda, args[1:]...)
	return SExpr(append([]*LVal{derived(lambda, x)}, vals...))
}
