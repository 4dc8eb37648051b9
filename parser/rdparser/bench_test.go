// Copyright © 2018 The ELPS authors

package rdparser_test

import (
	"strings"
	"testing"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/parser/rdparser"
)

const benchSource = `
(define (fact n)
  (if (<= n 1)
      1
      (* n (fact (- n 1)))))
(define-macro (unless test body) ` + "`" + `(if ,test #f ,body))
(let ((xs (list 1 2 3 "four" 5.5)))
  (display (apply + (cdr (list 0 1 2 3)))))
`

func BenchmarkParser(b *testing.B) {
	src := strings.Repeat(benchSource, 50)
	b.SetBytes(int64(len(src)))
	for i := 0; i < b.N; i++ {
		_, err := rdparser.NewReader().Read(lisp.NewSymbolTable(), "bench", strings.NewReader(src))
		if err != nil {
			b.Fatalf("Parse failure: %v", err)
		}
	}
}
