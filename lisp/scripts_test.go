// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/schemer/lisptest"
)

func TestScripts(t *testing.T) {
	r := &lisptest.Runner{}
	r.RunTestDir(t, "testdata")
}
