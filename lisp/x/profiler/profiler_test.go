package profiler_test

import (
	"io"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib"
	"github.com/luthersystems/schemer/parser"
	"github.com/stretchr/testify/require"
)

const testLisp = `
(define (print-it x) (display x))
(define (add-it x y)
  "@trace{ Add It }"
  (+ x y))
(define (recurse-it x)
  (if (< x 4)
      (add-it x 3)
      (recurse-it (- x 1))))
(print-it "Hello")
(print-it (add-it (add-it 3 (recurse-it 5)) 8))
((lambda (x) "@trace" (* x 2)) 4)
`

func newTestEnv(t *testing.T) *lisp.LEnv {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(io.Discard),
		lisp.WithStderr(io.Discard),
		lisp.WithLoader(lisplib.LoadLibrary))
	require.NoError(t, lisp.GoError(lerr))
	return env
}

func loadTestLisp(t *testing.T, env *lisp.LEnv) {
	v := env.LoadString("test.scm", testLisp)
	require.NoError(t, lisp.GoError(v))
	require.Equal(t, lisp.LInt, v.Type)
	require.Equal(t, 8, v.Int)
}
