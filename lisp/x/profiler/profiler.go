// Copyright © 2018 The ELPS authors

// Package profiler provides lisp.Profiler implementations which annotate
// procedure applications for tracing and profiling tools.
package profiler

import (
	"fmt"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/parser/token"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	runtime    *lisp.Runtime
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lisp.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// Option configures a profiler.
type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(fun *lisp.LVal) func(*lisp.LVal) {
	return func(*lisp.LVal) {}
}

// Kinds of application results reported to tracing backends.
const (
	outcomeReturn = "return"
	outcomeEscape = "escape"
	outcomeError  = "error"
)

// outcome classifies the result of an application.  For escapes detail is
// the id of the call/cc being returned to; for errors it is the condition.
func outcome(v *lisp.LVal) (kind string, detail string) {
	if v == nil {
		return outcomeReturn, ""
	}
	switch v.Type {
	case lisp.LMarkEscape:
		id, _ := v.EscapeID()
		return outcomeEscape, fmt.Sprint(id)
	case lisp.LError:
		return outcomeError, (*lisp.ErrorVal)(v).Condition()
	default:
		return outcomeReturn, ""
	}
}

// procedureKind returns "builtin" or "closure".
func procedureKind(fun *lisp.LVal) string {
	if fun.IsBuiltin() {
		return "builtin"
	}
	return "closure"
}

// defaultFunName returns the name fun was defined with.  Anonymous closures
// are named "lambda".
func defaultFunName(fun *lisp.LVal) string {
	if fun.Type != lisp.LFun {
		return ""
	}
	name := fun.FunData().Name
	if name == "" {
		return "lambda"
	}
	return name
}

// prettyFunName returns a pretty name and original name for a fun. If there is
// no pretty name, then the pretty name is the original name.
func (p *profiler) prettyFunName(fun *lisp.LVal) (string, string) {
	origLabel := defaultFunName(fun)
	if origLabel == "" {
		return "", ""
	}
	prettyLabel := origLabel
	if p.funLabeler != nil {
		prettyLabel = p.funLabeler(p.runtime, fun)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(v *lisp.LVal) bool {
	return !p.enabled || defaultSkipFilter(v) || p.skipFilter != nil && p.skipFilter(v)
}

// getSourceLoc returns the location where fun was defined.  Builtins have no
// location.
func getSourceLoc(fun *lisp.LVal) *token.Location {
	if fun.Source != nil {
		return fun.Source
	}
	if fd := fun.FunData(); fd != nil && fd.Body != nil {
		return fd.Body.Source
	}
	return nil
}
