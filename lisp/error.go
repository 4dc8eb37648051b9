// Copyright © 2018 The ELPS authors

package lisp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Error conditions.  The condition of an LError is stored in LVal.Str.
const (
	CondError           = "error"
	CondSyntaxError     = "syntax-error"
	CondUnboundVariable = "unbound-variable"
	CondTypeError       = "type-error"
	CondArityError      = "arity-error"
	CondEscapeExpired   = "escape-expired"
	CondStackOverflow   = "stack-overflow"
)

// ErrorVal implements the error interface so that errors can be first class lisp
// objects.  The error condition is stored in the Str field while the message
// is stored in the Cells slice.
type ErrorVal LVal

// Error implements the error interface.  When the error condition is not
// “error” it will be printed preceding the error message.
func (e *ErrorVal) Error() string {
	if e.Source != nil {
		return fmt.Sprintf("%s: %s", e.Source, e.baseMessage())
	}
	return e.baseMessage()
}

func (e *ErrorVal) baseMessage() string {
	msg := e.ErrorMessage()
	if e.Str != CondError {
		return fmt.Sprintf("%s: %s", e.Str, msg)
	}
	return msg
}

// Condition returns the error condition name (e.g. "syntax-error").
func (e *ErrorVal) Condition() string {
	return e.Str
}

// ErrorMessage returns the underlying message in the error.
func (e *ErrorVal) ErrorMessage() string {
	var buf bytes.Buffer
	for i, cell := range e.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		if cell.Type == LString {
			buf.WriteString(cell.Str)
		} else {
			buf.WriteString(cell.String())
		}
	}
	return buf.String()
}

// Unwrap returns a wrapped Go error, if the error was created from one.
func (e *ErrorVal) Unwrap() error {
	if len(e.Cells) > 0 {
		if err, ok := e.Cells[0].Native.(error); ok {
			return err
		}
	}
	return nil
}

// CallStack returns the call stack captured when the error was created, if
// any.
func (e *ErrorVal) CallStack() *CallStack {
	stack, _ := e.Native.(*CallStack)
	return stack
}

// FunName returns the name of the function on the top of the call stack
// when the error occurred.
func (e *ErrorVal) FunName() string {
	return e.CallStack().Top().FunName()
}

// WriteTrace writes the error and a stack trace to w
func (e *ErrorVal) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(bw.WriteString(e.Error())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	stack := e.CallStack()
	if stack != nil && len(stack.Frames) > 0 {
		if !wrote(stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// GoError returns an error that represents v, if v is an LError.  Otherwise
// GoError returns nil.
func GoError(v *LVal) error {
	if v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}
