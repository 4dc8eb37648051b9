// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"github.com/luthersystems/schemer/lisp"
)

// FromError converts an LError value to a Diagnostic.  The error location
// becomes the only span and the captured call stack becomes notes, innermost
// frame first.
func FromError(lerr *lisp.LVal) Diagnostic {
	ev := (*lisp.ErrorVal)(lerr)
	d := Diagnostic{
		Severity: SeverityError,
		Message:  ev.ErrorMessage(),
	}
	if fname := ev.FunName(); fname != "" {
		d.Message = fname + ": " + d.Message
	}
	if cond := ev.Condition(); cond != "" && cond != lisp.CondError {
		d.Message = cond + ": " + d.Message
	}

	if lerr.Source != nil && lerr.Source.Pos >= 0 {
		span := Span{
			File: lerr.Source.File,
			Line: lerr.Source.Line,
			Col:  lerr.Source.Col,
		}
		// Prefer physical path for reading source
		if lerr.Source.Path != "" {
			span.File = lerr.Source.Path
		}
		d.Spans = append(d.Spans, span)
	}

	stack := ev.CallStack()
	if stack == nil {
		return d
	}
	for i := len(stack.Frames) - 1; i >= 0; i-- {
		frame := &stack.Frames[i]
		loc := "unknown"
		if frame.Source != nil {
			loc = frame.Source.String()
		}
		d.Notes = append(d.Notes, "in "+frame.FunName()+" at "+loc)
	}
	return d
}
