// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib"
	"github.com/luthersystems/schemer/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEnv returns an environment without a limit on call depth.
func newEnv(t *testing.T, stdout, stderr *bytes.Buffer, config ...lisp.Config) *lisp.LEnv {
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stderr),
		lisp.WithLoader(lisplib.LoadLibrary),
	}, config...)
	lerr := lisp.InitializeUserEnv(env, config...)
	require.True(t, lerr.IsNil(), lerr.String())
	return env
}

func TestInterpret(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newEnv(t, &stdout, &stderr)

	assert.Equal(t, lisp.NoValue, env.Interpret("test", ""))
	assert.Equal(t, lisp.NoValue, env.Interpret("test", "; only a comment"))
	assert.Equal(t, lisp.NoValue, env.Interpret("test", "(define x 3)"))
	assert.Equal(t, "3", env.Interpret("test", "x"))
	assert.Equal(t, "4", env.Interpret("test", "(define y 4) y"))
	assert.Equal(t, lisp.NoValue, env.Interpret("test", "y (define z 5)"))
	assert.Equal(t, lisp.NoValue, env.Interpret("test", "(if #f #f)"))
	assert.Equal(t, lisp.NoValue, env.Interpret("test", `(display "hi")`))
	assert.Equal(t, "hi\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestInterpretFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newEnv(t, &stdout, &stderr)

	src := "(define before 1)\n(define (f x) (g x))\n(f 2)\n(define after 3)"
	assert.Equal(t, lisp.FailureMarker, env.Interpret("test.scm", src))
	assert.Contains(t, stderr.String(), "test.scm:2")
	assert.Contains(t, stderr.String(), "unbound-variable: g")
	assert.Contains(t, stderr.String(), "Stack Trace [1 frames -- entrypoint last]:")
	assert.Contains(t, stderr.String(), "height 0: test.scm:3")
	assert.Equal(t, 0, env.Runtime.Stack.Height())

	// forms preceding the failure remain in effect
	assert.Equal(t, "1", env.Interpret("test", "before"))
	stderr.Reset()
	assert.Equal(t, lisp.FailureMarker, env.Interpret("test", "after"))
	assert.Contains(t, stderr.String(), "unbound-variable: after")

	stderr.Reset()
	assert.Equal(t, lisp.FailureMarker, env.Interpret("test", "(car '())"))
	assert.NotEmpty(t, stderr.String())
	assert.Equal(t, "2", env.Interpret("test", "(+ 1 1)"))
}

func TestInterpretSyntaxError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newEnv(t, &stdout, &stderr)
	assert.Equal(t, lisp.FailureMarker, env.Interpret("test.scm", "(+ 1 2))"))
	assert.Contains(t, stderr.String(), "syntax-error")
	assert.Contains(t, stderr.String(), "unexpected )")
}

func TestInterpretNoReader(t *testing.T) {
	var stderr bytes.Buffer
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env, lisp.WithStderr(&stderr))
	require.True(t, lerr.IsNil())
	assert.Equal(t, lisp.FailureMarker, env.Interpret("test", "1"))
	assert.Contains(t, stderr.String(), "no reader")

	v := env.LoadString("test", "1")
	assert.Equal(t, lisp.LError, v.Type)
}

func TestInterpretForm(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newEnv(t, &stdout, &stderr)
	read := func(src string) *lisp.LVal {
		exprs, err := env.Runtime.Reader.Read(env.Runtime.Symbols, "test", strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, exprs, 1)
		return exprs[0]
	}

	out, lerr := env.InterpretForm(read("(define (sq x) (* x x))"))
	assert.Nil(t, lerr)
	assert.Equal(t, lisp.NoValue, out)

	out, lerr = env.InterpretForm(read("(sq 12)"))
	assert.Nil(t, lerr)
	assert.Equal(t, "144", out)

	out, lerr = env.InterpretForm(read("(sq 'a)"))
	assert.Equal(t, lisp.FailureMarker, out)
	require.NotNil(t, lerr)
	assert.Equal(t, lisp.CondTypeError, (*lisp.ErrorVal)(lerr).Condition())
	assert.Equal(t, "*", (*lisp.ErrorVal)(lerr).FunName())
	assert.Empty(t, stderr.String())
	assert.Equal(t, 0, env.Runtime.Stack.Height())
}

func TestLoad(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newEnv(t, &stdout, &stderr)
	v := env.LoadString("test", "(define x 2) (* x 21)")
	require.Equal(t, lisp.LInt, v.Type, v.String())
	assert.Equal(t, 42, v.Int)

	v = env.Load("test", strings.NewReader("(define-macro (twice e) `(begin ,e ,e)) (twice (display 1))"))
	assert.Equal(t, lisp.LUnspecified, v.Type)
	assert.Equal(t, "1\n1\n", stdout.String())

	v = env.LoadString("test", "(+ 1 2")
	assert.Equal(t, 3, v.Int)
	v = env.LoadString("test", ")")
	require.Equal(t, lisp.LError, v.Type)
	assert.Equal(t, lisp.CondSyntaxError, (*lisp.ErrorVal)(v).Condition())
}

func TestMaximumDepth(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newEnv(t, &stdout, &stderr, lisp.WithMaximumDepth(50))
	assert.Equal(t, lisp.NoValue, env.Interpret("test", "(define (f n) (+ 1 (f n)))"))
	assert.Equal(t, lisp.FailureMarker, env.Interpret("test", "(f 0)"))
	assert.Contains(t, stderr.String(), "stack-overflow")
	assert.Equal(t, 0, env.Runtime.Stack.Height())

	assert.Equal(t, lisp.NoValue, env.Interpret("test", "(define (g n) (if (= n 0) 0 (+ 1 (g (- n 1)))))"))
	assert.Equal(t, "20", env.Interpret("test", "(g 20)"))
}

func TestTailPositions(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newEnv(t, &stdout, &stderr)
	assert.Equal(t, lisp.NoValue, env.Interpret("test",
		"(define (loop n acc) (if (= n 0) acc (begin (loop (- n 1) (+ acc 1)))))"))
	assert.Equal(t, "100000", env.Interpret("test", "(loop 100000 0)"), stderr.String())
	assert.Equal(t, 0, env.Runtime.Stack.Height())
}

func TestPrintRead(t *testing.T) {
	syms := lisp.NewSymbolTable()
	for _, src := range []string{
		`(a "s" 1 2.5 #t #f (b ()) -3)`,
		`(quote (quasiquote (x (unquote y) (unquote-splicing z))))`,
		`foo-bar?`,
		`1e+100`,
	} {
		exprs, err := parser.NewReader().Read(syms, "test", strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, exprs, 1)
		assert.Equal(t, src, exprs[0].String())
	}
}
