// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable(t *testing.T) {
	syms := lisp.NewSymbolTable()
	a := syms.Intern("a")
	assert.Same(t, a, syms.Intern("a"))
	assert.NotSame(t, a, syms.Intern("b"))
	assert.Equal(t, "a", a.Name())
	_, ok := syms.Lookup("c")
	assert.False(t, ok)
	sym, ok := syms.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "b", sym.String())
	assert.Equal(t, 2, syms.Len())
	assert.Equal(t, []string{"a", "b"}, syms.Names())

	other := lisp.NewSymbolTable()
	assert.NotSame(t, a, other.Intern("a"))
}

func TestEnvBind(t *testing.T) {
	root := lisp.NewEnv(nil)
	x, y := root.Runtime.Intern("x"), root.Runtime.Intern("y")
	params := lisp.SExpr([]*lisp.LVal{lisp.Sym(x), lisp.Sym(y)})

	env := lisp.NewEnv(root)
	lerr := env.Bind(params, []*lisp.LVal{lisp.Int(1), lisp.Int(2)})
	require.Equal(t, lisp.LSExpr, lerr.Type, lerr.String())
	assert.Equal(t, 1, env.Get(x).Int)
	assert.Equal(t, 2, env.Get(y).Int)
	_, lerr = root.Find(x)
	assert.Equal(t, lisp.LError, lerr.Type)

	env = lisp.NewEnv(root)
	lerr = env.Bind(params, []*lisp.LVal{lisp.Int(1)})
	require.Equal(t, lisp.LError, lerr.Type)
	assert.Equal(t, "arity-error: args.length: 1 != params.length: 2", lisp.GoError(lerr).Error())

	env = lisp.NewEnv(root)
	lerr = env.Bind(lisp.Sym(x), []*lisp.LVal{lisp.Int(1), lisp.Int(2)})
	require.Equal(t, lisp.LSExpr, lerr.Type, lerr.String())
	assert.Equal(t, "(1 2)", env.Get(x).String())

	env = lisp.NewEnv(root)
	lerr = env.Bind(lisp.Sym(x), nil)
	require.Equal(t, lisp.LSExpr, lerr.Type, lerr.String())
	assert.Equal(t, "()", env.Get(x).String())

	lerr = env.Bind(lisp.Int(3), nil)
	assert.Equal(t, lisp.LError, lerr.Type)
}

func TestEnvFind(t *testing.T) {
	root := lisp.NewEnv(nil)
	x := root.Runtime.Intern("x")
	root.Put(x, lisp.Int(1))
	child := lisp.NewEnv(root)
	grandchild := lisp.NewEnv(child)

	frame, lerr := grandchild.Find(x)
	require.Nil(t, lerr)
	assert.Same(t, root, frame)

	child.Put(x, lisp.Int(2))
	frame, lerr = grandchild.Find(x)
	require.Nil(t, lerr)
	assert.Same(t, child, frame)
	assert.Equal(t, 2, grandchild.Get(x).Int)
	assert.Equal(t, 1, root.Get(x).Int)

	grandchild.PutGlobal(root.Runtime.Intern("g"), lisp.Int(3))
	assert.Equal(t, 3, root.GetName("g").Int)

	v := grandchild.GetName("fnord")
	require.Equal(t, lisp.LError, v.Type)
	assert.Equal(t, lisp.CondUnboundVariable, (*lisp.ErrorVal)(v).Condition())
	assert.Equal(t, "unbound-variable: fnord", lisp.GoError(v).Error())
}

func TestEnvUpdate(t *testing.T) {
	env := lisp.NewEnv(nil)
	env.Update(map[string]*lisp.LVal{
		"a": lisp.Int(1),
		"b": lisp.String("two"),
	})
	assert.Equal(t, 1, env.GetName("a").Int)
	assert.Equal(t, `"two"`, env.GetName("b").String())
	env.Update(map[string]*lisp.LVal{"a": lisp.Int(3)})
	assert.Equal(t, 3, env.GetName("a").Int)
	assert.Same(t, env.Runtime.Intern("a"), env.Symbol("a").Sym)
}

func TestInitializeUserEnv(t *testing.T) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(lisp.NewEnv(env))
	assert.Equal(t, lisp.LError, lerr.Type)

	lerr = lisp.InitializeUserEnv(env)
	require.True(t, lerr.IsNil())
	for _, name := range []string{"call/cc", "apply", "eval", "macroexpand"} {
		v := env.GetName(name)
		if assert.Equal(t, lisp.LFun, v.Type, name) {
			assert.True(t, v.IsBuiltin(), name)
		}
	}
	assert.NotNil(t, env.Runtime.Macros.Get(env.Runtime.Intern("let")))

	env = lisp.NewEnv(nil)
	lerr = lisp.InitializeUserEnv(env, lisp.WithLoader(func(env *lisp.LEnv) *lisp.LVal {
		return env.Errorf("loader failed")
	}))
	require.Equal(t, lisp.LError, lerr.Type)
	assert.Equal(t, "loader failed", lisp.GoError(lerr).Error())
}
