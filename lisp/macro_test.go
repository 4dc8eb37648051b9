// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMacros(t *testing.T) {
	tests := lisptest.TestSuite{
		{"quasiquote", lisptest.TestSequence{
			{"`()", `()`, ``},
			{"`x", `x`, ``},
			{"`(a b c)", `(a b c)`, ``},
			{"`(a ,(+ 1 2) c)", `(a 3 c)`, ``},
			{"`(1 ,@(list 2 3) 4)", `(1 2 3 4)`, ``},
			{"`(,@(list 1 2))", `(1 2)`, ``},
			{"`(1 ,@'() 2)", `(1 2)`, ``},
			{"`((nested ,(* 2 3)) ,'(x y))", `((nested 6) (x y))`, ``},
			{"`,(+ 1 1)", `2`, ``},
			{"(let ((xs '(2 1))) `(concat '(1 2) ,xs))", `(concat (quote (1 2)) (2 1))`, ``},
			{"`(unquote test-symbol)", lisp.FailureMarker, ``},
			{"`,@(list 1 2)", lisp.FailureMarker, ``},
			{"`(a (unquote 1 2))", lisp.FailureMarker, ``},
		}},
		{"quasiquote ignores user cons", lisptest.TestSequence{
			{"(define-macro cons (lambda (a b) 42))", lisp.NoValue, ``},
			{"(define-macro append (lambda (a b) 43))", lisp.NoValue, ``},
			{"`(1 2)", `(1 2)`, ``},
			{"`(1 ,@(list 2 3))", `(1 2 3)`, ``},
			{"`(a ,(cons 1 2))", `(a 42)`, ``},
		}},
		{"define-macro", lisptest.TestSequence{
			{"(define-macro (twice x) `(begin ,x ,x))", lisp.NoValue, ``},
			{`(twice (display "a"))`, lisp.NoValue, "a\na\n"},
			{"(define-macro (swap! a b) `(let ((tmp ,a)) (set! ,a ,b) (set! ,b tmp)))", lisp.NoValue, ``},
			{`(define p 1)`, lisp.NoValue, ``},
			{`(define q 2)`, lisp.NoValue, ``},
			{`(begin (swap! p q) (list p q))`, `(2 1)`, ``},
			// macros are not hygienic
			{`(define tmp 5)`, lisp.NoValue, ``},
			{`(begin (swap! tmp p) (list tmp p))`, `(5 2)`, ``},
			{`(define-macro unless (lambda (test body) (list 'if test #f body)))`, lisp.NoValue, ``},
			{`(unless #f 'ran)`, `ran`, ``},
			{`(unless #t 'ran)`, `#f`, ``},
			// macro applications inside macro output are expanded
			{"(define-macro (twice-unless test x) `(twice (unless ,test ,x)))", lisp.NoValue, ``},
			{`(twice-unless #f (display "b"))`, lisp.NoValue, "b\nb\n"},
		}},
		{"define-macro errors", lisptest.TestSequence{
			{"(define (f) (define-macro (m) 1))", lisp.FailureMarker, ``},
			{"(if #t (define-macro (m) 1))", lisp.FailureMarker, ``},
			{"(define-macro m 3)", lisp.FailureMarker, ``},
			{"(define-macro (m) (car '()))", lisp.NoValue, ``},
			{"(m)", lisp.FailureMarker, ``},
			// expansion failures leave the runtime usable
			{"(+ 1 1)", `2`, ``},
		}},
		{"begin keeps top level", lisptest.TestSequence{
			{"(begin (define-macro (one) 1) (define-macro (two) 2))", lisp.NoValue, ``},
			{"(+ (one) (two))", `3`, ``},
		}},
		{"let", lisptest.TestSequence{
			{`(let ((x 1)) x)`, `1`, ``},
			{`(let () 'empty)`, `empty`, ``},
			{`(let ((x 1) (y 2)) (define z 3) (+ x y z))`, `6`, ``},
			{`(let ((x 1)) (let ((x 2) (y x)) (list x y)))`, `(2 1)`, ``},
			{`(let ((x)) x)`, lisp.FailureMarker, ``},
			{`(let (x 1) x)`, lisp.FailureMarker, ``},
			{`(let ((x 1)))`, lisp.FailureMarker, ``},
		}},
		{"macroexpand", lisptest.TestSequence{
			{"(define-macro (inc! v) `(set! ,v (+ ,v 1)))", lisp.NoValue, ``},
			{`(macroexpand '(inc! n))`, `(set! n (+ n 1))`, ``},
			{`(macroexpand '(let ((a 1)) a))`, `((lambda (a) a) 1)`, ``},
			{`(macroexpand '(if x y))`, `(if x y #<unspecified>)`, ``},
			{`(macroexpand '(define (f x) x))`, `(define f (lambda (x) x))`, ``},
			{`(macroexpand '(lambda (x) 1 2))`, `(lambda (x) (begin 1 2))`, ``},
			{"(macroexpand '`(a ,b))", `(cons (quote a) (cons b (quote ())))`, ``},
			{"(macroexpand '`(,@b c))", `(append b (cons (quote c) (quote ())))`, ``},
			{`(macroexpand '(define-macro (m) 1))`, lisp.FailureMarker, ``},
		}},
		{"syntax errors", lisptest.TestSequence{
			{`()`, lisp.FailureMarker, ``},
			{`(quote)`, lisp.FailureMarker, ``},
			{`(quote a b)`, lisp.FailureMarker, ``},
			{`(if)`, lisp.FailureMarker, ``},
			{`(if 1 2 3 4)`, lisp.FailureMarker, ``},
			{`(set! 1 2)`, lisp.FailureMarker, ``},
			{`(set! x)`, lisp.FailureMarker, ``},
			{`(define 1 2)`, lisp.FailureMarker, ``},
			{`(define x 1 2)`, lisp.FailureMarker, ``},
			{`(define () 1)`, lisp.FailureMarker, ``},
			{`(lambda (x))`, lisp.FailureMarker, ``},
			{`(lambda (1) 1)`, lisp.FailureMarker, ``},
			{`(lambda "x" 1)`, lisp.FailureMarker, ``},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestSyntaxErrorMessages(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"`,@(list 1 2)", "syntax-error: (unquote-splicing (list 1 2)): can't splice here"},
		{"(define (f) (define-macro (m) 1))", "syntax-error: (define-macro m (lambda () 1)): define-macro only allowed at top level"},
		{"(set! 1 2)", "syntax-error: (set! 1 2): can set! only a symbol"},
		{"(define 1 2)", "syntax-error: (define 1 2): can define only a symbol"},
		{"(lambda (1) 1)", "syntax-error: (lambda (1) 1): illegal lambda argument list"},
		{"(if)", "syntax-error: (if): wrong length"},
		{"(let)", "syntax-error: (let): wrong length"},
		{"(define-macro m 3)", "syntax-error: (define-macro m 3): macro must be a procedure"},
		{"(let (x 1) x)", "syntax-error: (let (x 1) x): illegal binding list"},
	}
	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			var stderr bytes.Buffer
			env, err := lisptest.NewEnv(&bytes.Buffer{}, &stderr)
			require.NoError(t, err)
			assert.Equal(t, lisp.FailureMarker, env.Interpret("test", test.src))
			assert.Contains(t, stderr.String(), test.msg)
		})
	}
}

func TestExpandDoesNotModifyInput(t *testing.T) {
	env, err := lisptest.NewEnv(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	forms, err := env.Runtime.Reader.Read(env.Runtime.Symbols, "test", strings.NewReader("(define (f x) (if x 1) `(a ,x))"))
	require.NoError(t, err)
	require.Len(t, forms, 1)
	before := forms[0].String()
	core := env.Expand(forms[0])
	require.NoError(t, lisp.GoError(core))
	assert.Equal(t, before, forms[0].String())
	assert.Equal(t, "(define f (lambda (x) (begin (if x 1 #<unspecified>) (cons (quote a) (cons x (quote ()))))))", core.String())
}
