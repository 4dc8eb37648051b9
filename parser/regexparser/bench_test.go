// Copyright © 2018 The ELPS authors

package regexparser_test

import (
	"strings"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/parser/regexparser"
)

func BenchmarkParser(b *testing.B) {
	src := strings.Repeat("(define (sq x) (* x x)) `(a ,(sq 3) ,@(list 4 5)) ; done\n", 50)
	b.SetBytes(int64(len(src)))
	for i := 0; i < b.N; i++ {
		_, err := regexparser.NewReader().Read(lisp.NewSymbolTable(), "bench", strings.NewReader(src))
		if err != nil {
			b.Fatalf("Parse failure: %v", err)
		}
	}
}
