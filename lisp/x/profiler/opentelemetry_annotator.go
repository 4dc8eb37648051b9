package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/schemer/lisp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
const ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"

// DefaultTracerName names the tracer used when the parent context does not
// specify one.
const DefaultTracerName = "schemer"

var _ lisp.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    trace.Span
}

// NewOpenTelemetryAnnotator returns a profiler which starts an OpenTelemetry
// span for each closure application.  Spans are children of parentContext.
func NewOpenTelemetryAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) *otelAnnotator {
	p := &otelAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return p.profiler.Enable()
}

func (p *otelAnnotator) Complete() error {
	if p.currentSpan != nil && p.currentSpan.IsRecording() {
		p.currentSpan.End()
	}
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = DefaultTracerName
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

// Span attribute and event names specific to schemer procedures.
const (
	otelAttrProcedureKind = attribute.Key("schemer.procedure.kind")
	otelAttrEscapeID      = attribute.Key("schemer.escape.id")
	otelEventEscape       = "escape-unwind"
)

func (p *otelAnnotator) Start(fun *lisp.LVal) func(*lisp.LVal) {
	if p.skipTrace(fun) {
		return func(*lisp.LVal) {}
	}
	oldContext := p.currentContext
	prettyLabel, funName := p.prettyFunName(fun)
	p.currentContext, p.currentSpan = contextTracer(p.currentContext).Start(p.currentContext, prettyLabel)
	p.addCodeAttributes(fun, funName)
	return func(result *lisp.LVal) {
		p.annotateResult(result)
		p.currentSpan.End()
		// And pop the current context back
		p.currentContext = oldContext
		p.currentSpan = trace.SpanFromContext(p.currentContext)
	}
}

func (p *otelAnnotator) addCodeAttributes(fun *lisp.LVal, funName string) {
	loc := getSourceLoc(fun)
	attrs := []attribute.KeyValue{
		semconv.CodeFunction(funName),
		otelAttrProcedureKind.String(procedureKind(fun)),
	}
	if loc != nil {
		attrs = append(attrs,
			semconv.CodeColumn(loc.Col),
			semconv.CodeFilepath(loc.File),
			semconv.CodeLineNumber(loc.Line),
		)
	}
	p.currentSpan.SetAttributes(attrs...)
}

// annotateResult records an escape passing through the current span as an
// event and marks failed applications with an error status.
func (p *otelAnnotator) annotateResult(result *lisp.LVal) {
	switch kind, detail := outcome(result); kind {
	case outcomeEscape:
		id, _ := result.EscapeID()
		p.currentSpan.AddEvent(otelEventEscape,
			trace.WithAttributes(otelAttrEscapeID.Int64(int64(id))))
	case outcomeError:
		p.currentSpan.SetStatus(codes.Error, detail)
	}
}
