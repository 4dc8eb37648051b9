// Copyright © 2018 The ELPS authors

package lisp

// escapeTag identifies the call/cc application an escape procedure returns
// to.  A tag is active only while its call/cc is executing.
type escapeTag struct {
	id     uint
	active bool
}

// EscapeID returns the id of the call/cc application an LMarkEscape value is
// unwinding to.  ok is false if v is not an LMarkEscape.
func (v *LVal) EscapeID() (id uint, ok bool) {
	tag, ok := v.Native.(*escapeTag)
	if v.Type != LMarkEscape || !ok {
		return 0, false
	}
	return tag.id, true
}

// CallCC calls proc with a one-shot escape procedure.  When the escape
// procedure is called with a value v while CallCC is still executing, the
// evaluation in progress unwinds back to CallCC, which returns v.
//
// Escapes travel down the stack as LMarkEscape values returned through the
// evaluator and any builtins in between.  Each CallCC only consumes marks
// carrying its own tag, so nested escapes are independent.  Calling the
// escape procedure after CallCC has returned is an escape-expired error.
func (env *LEnv) CallCC(proc *LVal) *LVal {
	tag := &escapeTag{
		id:     env.Runtime.genEscapeID(),
		active: true,
	}
	k := Fun("escape", 1, 1, func(env *LEnv, args []*LVal) *LVal {
		if !tag.active {
			return env.ErrorConditionf(CondEscapeExpired,
				"continuation %d can no longer be invoked", tag.id)
		}
		return markEscape(tag, args[0])
	})
	ret := env.Apply(proc, []*LVal{k})
	tag.active = false
	if ret.Type == LMarkEscape && ret.Native == tag {
		return ret.Cells[0]
	}
	return ret
}
