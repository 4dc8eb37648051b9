// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithMaximumDepth returns a Config that will prevent an execution
// environment from nesting procedure applications more than n deep.
// Exceeding the limit produces a stack-overflow error instead of exhausting
// the Go stack.  A value of 0 means unlimited (the default).
func WithMaximumDepth(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stack.MaxHeight = n
		return Nil()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes the display builtin write to w
// instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write error reports
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		return Nil()
	}
}

// WithProfiler returns a Config that attaches p to the runtime.  The
// profiler is notified of every procedure application while it is enabled.
func WithProfiler(p Profiler) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Profiler = p
		return Nil()
	}
}

// WithBuiltins returns a Config that binds funs in the root environment.
// Builtins given later replace earlier ones with the same name.
func WithBuiltins(funs ...LBuiltinDef) Config {
	return func(env *LEnv) *LVal {
		env.AddBuiltins(funs...)
		return Nil()
	}
}

// WithLoader returns a Config that runs fn against the root environment.  A
// loader typically registers a table of builtins, like lisplib.LoadLibrary.
func WithLoader(fn Loader) Config {
	return func(env *LEnv) *LVal {
		return fn(env.Runtime.Root)
	}
}
