package profiler_test

import (
	"context"
	"sync"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

func TestNewOpenCensusAnnotator(t *testing.T) {
	// Let's sample at 100% for the purposes of this test...
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exp := &customExporter{}
	trace.RegisterExporter(exp)
	t.Cleanup(func() { trace.UnregisterExporter(exp) })

	env := newTestEnv(t)
	ppa := profiler.NewOpenCensusAnnotator(env.Runtime, context.Background(),
		profiler.WithDocFilter(),
		profiler.WithDocLabeler())
	require.NoError(t, ppa.Enable())
	loadTestLisp(t, env)
	assert.NoError(t, ppa.Complete())

	spans := exp.Spans()
	require.Len(t, spans, 4)
	assert.Equal(t, "Add_It", spans[0].Name)
	assert.Equal(t, "add-it", spans[0].Attributes["function"])
	assert.Equal(t, "test.scm", spans[0].Attributes["file"])
	assert.Equal(t, "lambda", spans[3].Name)
}

func TestOpenCensusAnnotatorEnableWithContext(t *testing.T) {
	env := newTestEnv(t)
	//nolint:staticcheck // a nil context is the condition under test
	ppa := profiler.NewOpenCensusAnnotator(env.Runtime, nil)
	assert.Error(t, ppa.Enable())
	//nolint:staticcheck
	assert.Error(t, ppa.EnableWithContext(nil))
	assert.NoError(t, ppa.EnableWithContext(context.Background()))
	assert.True(t, ppa.IsEnabled())
}

func TestOpenCensusAnnotatorResults(t *testing.T) {
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exp := &customExporter{}
	trace.RegisterExporter(exp)
	t.Cleanup(func() { trace.UnregisterExporter(exp) })

	env := newTestEnv(t)
	ppa := profiler.NewOpenCensusAnnotator(env.Runtime, context.Background(),
		profiler.WithDocFilter())
	require.NoError(t, ppa.Enable())
	require.NoError(t, lisp.GoError(env.LoadString("test.scm", escapeLisp)))
	v := env.LoadString("test.scm", `(call/cc (lambda (k) (leave k) 2))`)
	require.NoError(t, lisp.GoError(v))
	assert.Equal(t, 1, v.Int)
	v = env.LoadString("test.scm", `(fail)`)
	assert.Equal(t, lisp.LError, v.Type)
	assert.NoError(t, ppa.Complete())

	spans := exp.Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, "leave", spans[0].Name)
	assert.Equal(t, "closure", spans[0].Attributes["kind"])
	require.Len(t, spans[0].Annotations, 1)
	assert.Equal(t, "escape-unwind", spans[0].Annotations[0].Message)
	assert.Contains(t, spans[0].Annotations[0].Attributes, "escape")
	assert.Equal(t, int32(trace.StatusCodeOK), spans[0].Status.Code)

	assert.Equal(t, "fail", spans[1].Name)
	assert.Empty(t, spans[1].Annotations)
	assert.Equal(t, int32(trace.StatusCodeUnknown), spans[1].Status.Code)
	assert.Equal(t, lisp.CondTypeError, spans[1].Status.Message)
}

// customExporter records the spans it is given.
type customExporter struct {
	mut   sync.Mutex
	spans []*trace.SpanData
}

func (cse *customExporter) ExportSpan(sd *trace.SpanData) {
	cse.mut.Lock()
	defer cse.mut.Unlock()
	cse.spans = append(cse.spans, sd)
}

func (cse *customExporter) Spans() []*trace.SpanData {
	cse.mut.Lock()
	defer cse.mut.Unlock()
	return cse.spans
}
