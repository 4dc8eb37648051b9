package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/luthersystems/schemer/lisp"
)

// pprofAnnotator labels the current goroutine with the procedure being
// applied so that samples in a Go CPU profile can be attributed to lisp
// procedures.  The annotator does not start pprof itself.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ lisp.Profiler = &pprofAnnotator{}

// NewPprofAnnotator returns a profiler which sets pprof goroutine labels.
func NewPprofAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

// Label returns the function label currently applied to the goroutine.
func (p *pprofAnnotator) Label() string {
	v, _ := pprof.Label(p.currentContext, "function")
	return v
}

func (p *pprofAnnotator) Start(fun *lisp.LVal) func(*lisp.LVal) {
	if p.skipTrace(fun) {
		return func(*lisp.LVal) {}
	}
	oldContext := p.currentContext
	prettyLabel, _ := p.prettyFunName(fun)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("function", prettyLabel))
	pprof.SetGoroutineLabels(p.currentContext)
	return func(*lisp.LVal) {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
