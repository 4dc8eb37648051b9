package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/schemer/lisp"
	"go.opencensus.io/trace"
)

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       []context.Context
}

var _ lisp.Profiler = &ocAnnotator{}

// NewOpenCensusAnnotator returns a profiler which starts an OpenCensus span
// for each closure application.  Spans are children of parentContext.
func NewOpenCensusAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// EnableWithContext enables the profiler with ctx as the parent of all
// spans.
func (p *ocAnnotator) EnableWithContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("set a context to use this function")
	}
	p.currentContext = ctx
	return p.Enable()
}

func (p *ocAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Complete() error {
	for len(p.contexts) > 0 {
		p.pop()
	}
	return nil
}

func (p *ocAnnotator) Start(fun *lisp.LVal) func(*lisp.LVal) {
	if p.skipTrace(fun) {
		return func(*lisp.LVal) {}
	}
	prettyLabel, funName := p.prettyFunName(fun)
	p.contexts = append(p.contexts, p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, prettyLabel)
	attrs := []trace.Attribute{
		trace.StringAttribute("function", funName),
		trace.StringAttribute("kind", procedureKind(fun)),
	}
	if loc := getSourceLoc(fun); loc != nil {
		attrs = append(attrs,
			trace.StringAttribute("file", loc.File),
			trace.Int64Attribute("line", int64(loc.Line)),
		)
	}
	p.currentSpan.AddAttributes(attrs...)
	return func(result *lisp.LVal) {
		p.annotateResult(result)
		p.pop()
	}
}

// annotateResult notes an escape passing through the current span and marks
// failed applications with an error status.
func (p *ocAnnotator) annotateResult(result *lisp.LVal) {
	switch kind, detail := outcome(result); kind {
	case outcomeEscape:
		p.currentSpan.Annotate([]trace.Attribute{
			trace.StringAttribute("escape", detail),
		}, "escape-unwind")
	case outcomeError:
		p.currentSpan.SetStatus(trace.Status{
			Code:    trace.StatusCodeUnknown,
			Message: detail,
		})
	}
}

// pop ends the current span and restores the context it was started in.
func (p *ocAnnotator) pop() {
	if len(p.contexts) == 0 {
		return
	}
	p.currentSpan.End()
	n := len(p.contexts) - 1
	p.currentContext = p.contexts[n]
	p.contexts[n] = nil
	p.contexts = p.contexts[:n]
	p.currentSpan = trace.FromContext(p.currentContext)
}
