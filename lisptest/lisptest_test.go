// Copyright © 2018 The ELPS authors

package lisptest_test

import (
	"strings"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisptest"
	"github.com/luthersystems/schemer/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTestSuite(t *testing.T) {
	lisptest.RunTestSuite(t, lisptest.TestSuite{
		{"display", lisptest.TestSequence{
			{`(display "hi")`, lisp.NoValue, "hi\n"},
			{`(define x 3)`, lisp.NoValue, ""},
			{`(+ x 1)`, "4", ""},
		}},
		{"failure", lisptest.TestSequence{
			{`(car '())`, lisp.FailureMarker, ""},
			{`(list 1)`, "(1)", ""},
		}},
	})
}

func TestRunner(t *testing.T) {
	r := &lisptest.Runner{}
	r.RunTestDir(t, "testdata")
}

func TestRunnerEnv(t *testing.T) {
	r := &lisptest.Runner{}
	env, err := r.NewEnv(t)
	require.NoError(t, err)
	v := env.LoadString("test", `(assert-equal '(a b) (list 'a 'b))`)
	assert.Equal(t, lisp.LBool, v.Type)
	assert.True(t, v.Bool)
}

func BenchmarkParse(b *testing.B) {
	src := strings.Repeat("(define (f x) (if (< x 2) x (+ (f (- x 1)) (f (- x 2)))))\n", 20)
	lisptest.BenchmarkParse(src, parser.NewReader)(b)
}

func BenchmarkFib(b *testing.B) {
	lisptest.RunBenchmark(b, `
(define (fib n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2)))))
(fib 15)`)
}

// recordingTB captures Log calls.
type recordingTB struct {
	testing.TB
	lines []string
}

func (r *recordingTB) Log(args ...interface{}) {
	r.lines = append(r.lines, args[0].(string))
}

func TestLogger(t *testing.T) {
	tb := &recordingTB{TB: t}
	log := lisptest.NewLogger(tb)
	n, err := log.Write([]byte("test:1: unbound-variable: x\nStack Trace [1 frames"))
	require.NoError(t, err)
	assert.Equal(t, 49, n)
	assert.Equal(t, []string{"test:1: unbound-variable: x"}, tb.lines)
	_, err = log.Write([]byte(" -- entrypoint last]:\n  height 0: test:1\n  tail"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"test:1: unbound-variable: x",
		"Stack Trace [1 frames -- entrypoint last]:",
		"  height 0: test:1",
	}, tb.lines)
	log.Flush()
	assert.Equal(t, "  tail", tb.lines[3])
	log.Flush()
	assert.Len(t, tb.lines, 4)
}
