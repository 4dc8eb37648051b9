package profiler

import (
	"regexp"

	"github.com/luthersystems/schemer/lisp"
)

// SkipFilter returns true for procedures which should not be traced.
type SkipFilter func(fun *lisp.LVal) bool

func defaultSkipFilter(fun *lisp.LVal) bool {
	return fun.Type != lisp.LFun
}

// WithDocFilter filters to only include spans for procedures with
// docstrings that denote tracing.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithBuiltinFilter filters out spans for builtin procedures.
func WithBuiltinFilter() Option {
	return WithSkipFilter(func(fun *lisp.LVal) bool {
		return fun.IsBuiltin()
	})
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic string used to enable tracing in a profiler
// configured WithDocFilter. All procedures with a docstring that contains
// this string will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(fun *lisp.LVal) bool {
	docStr := fun.FunData().Doc
	if docStr == "" {
		return true
	}
	return !docTraceRegExp.MatchString(docStr)
}
