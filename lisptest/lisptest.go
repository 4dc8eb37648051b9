// Copyright © 2018 The ELPS authors

// Package lisptest provides helpers for testing lisp code from Go tests.
package lisptest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib"
	"github.com/luthersystems/schemer/parser"
)

// DefaultMaximumDepth bounds procedure nesting in test environments so that
// runaway recursion fails instead of exhausting the Go stack.
const DefaultMaximumDepth = 25000

// BenchmarkParse returns a benchmark which reads source with the readers
// returned by r.
func BenchmarkParse(source string, r func() lisp.Reader) func(*testing.B) {
	return func(b *testing.B) {
		b.SetBytes(int64(len(source)))
		for i := 0; i < b.N; i++ {
			_, err := r().Read(lisp.NewSymbolTable(), "test", strings.NewReader(source))
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}

// Runner runs lisp test scripts.  A test script is a file of top-level forms
// which are evaluated in order.  Test scripts make assertions with the
// builtins assert and assert-equal.  Evaluation stops at the first error.
type Runner struct {
	// Loader is the package loader used to initialize the test environment.
	// When Loader is nil lisplib.LoadLibrary is used.
	Loader lisp.Loader

	// Teardown runs code to teardown an environment after a script has been
	// run.  Any error returned by the teardown function is reported as a
	// test failure.
	Teardown func(*lisp.LEnv) *lisp.LVal
}

// NewEnv returns a root environment for running tests.  Output written by
// display and error reports are written to the test log.
func (r *Runner) NewEnv(t testing.TB) (*lisp.LEnv, error) {
	logger := NewLogger(t)
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	env := lisp.NewEnv(nil)
	err := lisp.GoError(lisp.InitializeUserEnv(env,
		lisp.WithMaximumDepth(DefaultMaximumDepth),
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(logger),
		lisp.WithStderr(logger),
		lisp.WithLoader(loader),
		lisp.WithBuiltins(assertions(t)...),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %v", err)
	}
	return env, nil
}

// RunScript evaluates the test script read from source.  Path is only used
// to determine a file basename for source locations.
func (r *Runner) RunScript(t *testing.T, path string, source io.Reader) {
	env, err := r.NewEnv(t)
	if err != nil {
		t.Error(err.Error())
		return
	}
	defer env.Runtime.Stderr.(*Logger).Flush()
	if r.Teardown != nil {
		defer func() {
			if err := lisp.GoError(r.Teardown(env)); err != nil {
				r.LispError(t, err)
			}
		}()
	}
	err = lisp.GoError(env.Load(filepath.Base(path), source))
	if err != nil {
		r.LispError(t, err)
	}
}

// RunTestFile runs the test script at path as a subtest named after the
// file.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	t.Run(filepath.Base(path), func(t *testing.T) {
		r.RunScript(t, path, bytes.NewReader(source))
	})
}

// RunTestDir runs every file matching *.scm in dir.
func (r *Runner) RunTestDir(t *testing.T, dir string) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.scm"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatalf("no test scripts in %s", dir)
	}
	for _, path := range paths {
		r.RunTestFile(t, path)
	}
}

// LispError reports err as a test failure, including its stack trace if err
// is a lisp error.
func (r *Runner) LispError(t testing.TB, err error) {
	lerr, ok := err.(*lisp.ErrorVal)
	if !ok {
		t.Error(err)
		return
	}
	var buf bytes.Buffer
	_, ioerr := lerr.WriteTrace(&buf)
	if ioerr != nil {
		t.Errorf("io error: %v", ioerr)
		t.Error(err)
		return
	}
	t.Error(buf.String())
}

// TestSequence is a sequence of lisp expressions which are interpreted
// sequentially by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, as returned by LEnv.Interpret
	Output string // output written to Runtime.Stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs with
// the standard library loaded.  Error reports written to Runtime.Stderr are
// sent to the test log.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			var out bytes.Buffer
			logger := NewLogger(t)
			defer logger.Flush()
			env, err := NewEnv(&out, logger)
			if err != nil {
				t.Fatalf("test %d %q: %v", i, test.Name, err)
			}
			for j, expr := range test.TestSequence {
				out.Reset()
				result := env.Interpret("test", expr.Expr)
				if result != expr.Result {
					t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
				}
				if out.String() != expr.Output {
					t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, out.String())
				}
			}
		})
	}
}

// NewEnv returns a root environment with the standard library loaded which
// writes display output to stdout and error reports to stderr.
func NewEnv(stdout, stderr io.Writer) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	err := lisp.GoError(lisp.InitializeUserEnv(env,
		lisp.WithMaximumDepth(DefaultMaximumDepth),
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stderr),
		lisp.WithLoader(lisplib.LoadLibrary),
	))
	if err != nil {
		return nil, err
	}
	return env, nil
}

// RunBenchmark runs a standard benchmark that interprets source in a fresh
// environment.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		var stderr bytes.Buffer
		env, err := NewEnv(io.Discard, &stderr)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		result := env.Interpret("benchmark", source)
		b.StopTimer()
		if result == lisp.FailureMarker {
			b.Fatalf("benchmark failed: %s", stderr.String())
		}
	}
}
