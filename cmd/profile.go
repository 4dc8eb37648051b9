// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"sync"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/x/profiler"
	"github.com/spf13/viper"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Trace and profile formats.
const (
	traceOpenTelemetry = "otel"
	traceOpenCensus    = "opencensus"
	profileCallgrind   = "callgrind"
	profilePprof       = "pprof"
)

// startProfiler attaches the profiler selected by the trace and profile
// settings to env.  The returned function completes the profile and must be
// called once evaluation is finished.  A runtime has a single profiler so
// tracing and profiling cannot be combined.
func startProfiler(env *lisp.LEnv, stderr io.Writer) (func() error, error) {
	trace := viper.GetString(keyTrace)
	path := viper.GetString(keyProfile)
	if trace != "" && path != "" {
		return nil, fmt.Errorf("--%s and --%s cannot be used together", keyTrace, keyProfile)
	}
	switch {
	case trace != "":
		return startTrace(env, trace, stderr)
	case path != "":
		return startProfile(env, path, viper.GetString(keyProfileFormat))
	default:
		return func() error { return nil }, nil
	}
}

func startTrace(env *lisp.LEnv, format string, w io.Writer) (func() error, error) {
	ctx := context.Background()
	switch format {
	case traceOpenTelemetry:
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(&spanWriter{w: w}))
		otel.SetTracerProvider(tp)
		p := profiler.NewOpenTelemetryAnnotator(env.Runtime, ctx, profiler.WithDocLabeler())
		if err := p.Enable(); err != nil {
			return nil, err
		}
		return func() error {
			if err := p.Complete(); err != nil {
				return err
			}
			return tp.Shutdown(ctx)
		}, nil
	case traceOpenCensus:
		exp := &censusWriter{w: w}
		octrace.RegisterExporter(exp)
		octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
		p := profiler.NewOpenCensusAnnotator(env.Runtime, ctx, profiler.WithDocLabeler())
		if err := p.Enable(); err != nil {
			octrace.UnregisterExporter(exp)
			return nil, err
		}
		return func() error {
			defer octrace.UnregisterExporter(exp)
			return p.Complete()
		}, nil
	default:
		return nil, fmt.Errorf("unknown trace format: %q", format)
	}
}

func startProfile(env *lisp.LEnv, path string, format string) (func() error, error) {
	if format != profileCallgrind && format != profilePprof {
		return nil, fmt.Errorf("unknown profile format: %q", format)
	}
	f, err := os.Create(path) //nolint:gosec // user supplied output path
	if err != nil {
		return nil, err
	}
	if format == profileCallgrind {
		p := profiler.NewCallgrindProfiler(env.Runtime, f, profiler.WithDocLabeler())
		if err := p.Enable(); err != nil {
			_ = f.Close()
			return nil, err
		}
		// Complete closes f.
		return p.Complete, nil
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	p := profiler.NewPprofAnnotator(env.Runtime, context.Background(), profiler.WithDocLabeler())
	if err := p.Enable(); err != nil {
		pprof.StopCPUProfile()
		_ = f.Close()
		return nil, err
	}
	return func() error {
		err := p.Complete()
		pprof.StopCPUProfile()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}, nil
}

// spanWriter is an OpenTelemetry span exporter writing one line per span.
type spanWriter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ sdktrace.SpanExporter = &spanWriter{}

func (s *spanWriter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, span := range spans {
		attrs := make(map[string]interface{})
		for _, kv := range span.Attributes() {
			attrs[string(kv.Key)] = kv.Value.AsInterface()
		}
		err := writeSpan(s.w, span.Name(), span.EndTime().Sub(span.StartTime()).String(), attrs)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *spanWriter) Shutdown(ctx context.Context) error {
	return nil
}

// censusWriter is an OpenCensus exporter writing one line per span.
type censusWriter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ octrace.Exporter = &censusWriter{}

func (c *censusWriter) ExportSpan(sd *octrace.SpanData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = writeSpan(c.w, sd.Name, sd.EndTime.Sub(sd.StartTime).String(), sd.Attributes)
}

func writeSpan(w io.Writer, name string, duration string, attrs map[string]interface{}) error {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	_, err := fmt.Fprintf(w, "span %s %s", name, duration)
	if err != nil {
		return err
	}
	for _, k := range keys {
		_, err = fmt.Fprintf(w, " %s=%v", k, attrs[k])
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}
