// Copyright © 2024 The ELPS authors

package diagnostic_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/luthersystems/schemer/diagnostic"
	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib"
	"github.com/luthersystems/schemer/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(io.Discard),
		lisp.WithLoader(lisplib.LoadLibrary))
	require.NoError(t, lisp.GoError(lerr))

	src := "(define (f x) (car x))\n(f 3)"
	v := env.LoadString("test.scm", src)
	require.Equal(t, lisp.LError, v.Type)

	d := diagnostic.FromError(v)
	assert.Equal(t, diagnostic.SeverityError, d.Severity)
	assert.Contains(t, d.Message, "type-error: ")
	require.Len(t, d.Spans, 1)
	assert.Equal(t, "test.scm", d.Spans[0].File)
	assert.Equal(t, 1, d.Spans[0].Line)
	require.NotEmpty(t, d.Notes)
	assert.Contains(t, d.Notes[0], "in car at ")
	assert.Contains(t, d.Notes[len(d.Notes)-1], "in f at test.scm:2")

	r := &diagnostic.Renderer{Color: diagnostic.ColorNever}
	r.AddSource("test.scm", src)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	assert.Contains(t, buf.String(), "(define (f x) (car x))")
}

func TestFromErrorNoStack(t *testing.T) {
	d := diagnostic.FromError(lisp.Errorf("plain failure"))
	assert.Equal(t, "plain failure", d.Message)
	assert.Empty(t, d.Spans)
	assert.Empty(t, d.Notes)
}
