// Copyright © 2018 The ELPS authors

// Package lisplib is used to conveniently load the builtin procedure table
// into a root environment.
package lisplib

import (
	"bytes"
	"fmt"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib/libbase"
	"github.com/luthersystems/schemer/lisp/lisplib/libhelp"
	"github.com/luthersystems/schemer/lisp/lisplib/libmath"
	"github.com/luthersystems/schemer/parser"
)

// LoadLibrary binds the standard builtin table in the root environment of
// env.  LoadLibrary is a lisp.Loader.
func LoadLibrary(env *lisp.LEnv) *lisp.LVal {
	e := libbase.LoadPackage(env)
	if !e.IsNil() {
		return e
	}
	e = libmath.LoadPackage(env)
	if !e.IsNil() {
		return e
	}
	e = libhelp.LoadPackage(env)
	if !e.IsNil() {
		return e
	}
	return lisp.Nil()
}

// NewDocEnv creates a standard environment with the builtin table loaded,
// suitable for documentation queries.
func NewDocEnv() (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	rc := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(&bytes.Buffer{}),
		lisp.WithLoader(LoadLibrary))
	if !rc.IsNil() {
		return nil, fmt.Errorf("initialize-user-env returned non-nil: %v", rc)
	}
	return env, nil
}
