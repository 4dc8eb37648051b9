package profiler_test

import (
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPprofAnnotator(t *testing.T) {
	env := newTestEnv(t)
	//nolint:staticcheck // a nil context means context.Background
	ppa := profiler.NewPprofAnnotator(env.Runtime, nil, profiler.WithBuiltinFilter())
	env.Put(env.Runtime.Intern("current-label"), lisp.Fun("current-label", 0, 0,
		func(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
			return lisp.String(ppa.Label())
		}))
	require.NoError(t, ppa.Enable())
	assert.Error(t, ppa.Enable())

	v := env.LoadString("test.scm", `
(define (probe) (current-label))
(define (outer) (list (probe) (current-label)))
(outer)`)
	require.NoError(t, lisp.GoError(v))
	assert.Equal(t, `("probe" "outer")`, v.String())
	assert.Equal(t, "", ppa.Label())
	assert.NoError(t, ppa.Complete())

	loadTestLisp(t, env)
}
