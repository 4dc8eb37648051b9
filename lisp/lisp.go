// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/luthersystems/schemer/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LUnspecified is the value of expressions which have no useful result,
	// like set! or a one-armed if whose test failed.
	LUnspecified
	// LInt values store an int in the LVal.Int field.
	LInt
	// LFloat values store a float64 in the LVal.Float field.
	LFloat
	// LString values store a string in the LVal.Str field.
	LString
	// LBool values store a bool in the LVal.Bool field.
	LBool
	// LSymbol values store an interned symbol in the LVal.Sym field.
	LSymbol
	// LSExpr values are lists and store their elements in LVal.Cells.  The
	// empty list is an LSExpr with no cells.
	LSExpr
	// LFun values store an *LFunData in the LVal.Native field.  Builtin
	// functions have a non-nil LFunData.Builtin.  Closures store a parameter
	// spec, a body, and their defining environment.
	LFun
	// LError values store a condition name in LVal.Str and a message in
	// LVal.Cells[0].  The call stack at the time of the error is stored in
	// LVal.Native.
	LError
	// LMarkEscape values transmit an escape continuation invocation back
	// down the stack to the call/cc that created it.  The escape tag is
	// stored in LVal.Native and the escaped value in LVal.Cells[0].
	// Applications never see mark values as arguments.
	LMarkEscape
	// LTypeMax is not a real type but represents a value numerically greater
	// than all valid LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid:     "INVALID",
	LUnspecified: "unspecified",
	LInt:         "int",
	LFloat:       "float",
	LString:      "string",
	LBool:        "boolean",
	LSymbol:      "symbol",
	LSExpr:       "list",
	LFun:         "procedure",
	LError:       "error",
	LMarkEscape:  "marker-escape",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LBuiltin is the calling convention for procedures implemented in Go.  The
// args slice holds fully evaluated arguments.
type LBuiltin func(env *LEnv, args []*LVal) *LVal

// LFunData holds the data for LFun values.
type LFunData struct {
	// Name is the name the function was first defined with, if any.
	Name string
	// Builtin is non-nil for functions implemented in Go.
	Builtin LBuiltin
	// MinArgs and MaxArgs bound the number of arguments to a builtin.  A
	// negative MaxArgs means the builtin is variadic.
	MinArgs int
	MaxArgs int
	// Params is either a list of symbols or a single variadic symbol.
	Params *LVal
	// Body is the (expanded) body expression of a closure.
	Body *LVal
	// Env is the environment a closure was created in.
	Env *LEnv
	// Doc is an optional docstring.
	Doc string
}

// LVal is a lisp value
type LVal struct {
	// Native is generic storage for data which cannot be represented as an
	// LVal (and thus can't be stored in Cells).
	Native interface{}

	// Source is the values originating location in source code.  Programs
	// should not modify the contents of Source as the reference may be shared
	// by multiple LVals.
	Source *token.Location

	// Sym is used by LSymbol values.
	Sym *Symbol

	// Str used by LString and LError values.
	Str string

	// Cells used by LSExpr, LError and LMarkEscape values.
	Cells []*LVal

	// Type is the native type for a value in lisp.
	Type LType

	// Fields used for numeric and boolean types.
	Int   int
	Float float64
	Bool  bool
}

var singletonUnspecified = &LVal{Type: LUnspecified}

// Unspecified returns the value of expressions without a useful result.
//
// The returned value is a shared singleton -- callers MUST NOT mutate it.
func Unspecified() *LVal {
	return singletonUnspecified
}

// Bool returns an LVal representing b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// Int returns an LVal representing the number x.
func Int(x int) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Float returns an LVal representation of the number x
func Float(x float64) *LVal {
	return &LVal{
		Type:  LFloat,
		Float: x,
	}
}

// String returns an LVal representing the string str.
func String(str string) *LVal {
	return &LVal{
		Type: LString,
		Str:  str,
	}
}

// Sym returns an LVal representing the interned symbol s.
func Sym(s *Symbol) *LVal {
	return &LVal{
		Type: LSymbol,
		Sym:  s,
	}
}

// SExpr returns an LVal representing a list.  Provided cells are used as
// backing storage for the returned expression and are not copied.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// Nil returns a new empty list.
func Nil() *LVal {
	return SExpr(nil)
}

// Fun returns a builtin LFun value implemented by fn.  The number of
// arguments fn accepts is bounded by min and max (max < 0 is unbounded).
func Fun(name string, min, max int, fn LBuiltin) *LVal {
	return &LVal{
		Type: LFun,
		Native: &LFunData{
			Name:    name,
			Builtin: fn,
			MinArgs: min,
			MaxArgs: max,
		},
	}
}

// Lambda returns a closure over env with the given parameter spec and body.
func Lambda(params, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:   LFun,
		Source: body.Source,
		Native: &LFunData{
			Params: params,
			Body:   body,
			Env:    env,
		},
	}
}

// Errorf returns an LError value with a formatted message and the generic
// error condition.
func Errorf(format string, v ...interface{}) *LVal {
	return ErrorConditionf(CondError, format, v...)
}

// ErrorConditionf returns an LError value with the given condition and a
// formatted message.
func ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return &LVal{
		Type:  LError,
		Str:   condition,
		Cells: []*LVal{String(fmt.Sprintf(format, v...))},
	}
}

// Error returns an LError wrapping err.
func Error(err error) *LVal {
	return &LVal{
		Type:  LError,
		Str:   CondError,
		Cells: []*LVal{{Type: LString, Str: err.Error(), Native: err}},
	}
}

func markEscape(tag *escapeTag, v *LVal) *LVal {
	return &LVal{
		Type:   LMarkEscape,
		Native: tag,
		Cells:  []*LVal{v},
	}
}

// FunData returns the function data of an LFun value.
func (v *LVal) FunData() *LFunData {
	fd, _ := v.Native.(*LFunData)
	return fd
}

// IsBuiltin returns true if v is a function implemented in Go.
func (v *LVal) IsBuiltin() bool {
	if v.Type != LFun {
		return false
	}
	return v.FunData().Builtin != nil
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LSExpr && len(v.Cells) == 0
}

// IsTrue returns the truthiness of v.  Only the boolean false is false.
func (v *LVal) IsTrue() bool {
	return v.Type != LBool || v.Bool
}

// IsNumeric returns true if v is an int or a float.
func (v *LVal) IsNumeric() bool {
	return v.Type == LInt || v.Type == LFloat
}

// IsPair returns true if v is a non-empty list.
func (v *LVal) IsPair() bool {
	return v.Type == LSExpr && len(v.Cells) > 0
}

// IsSymbol returns true if v is the symbol s.
func (v *LVal) IsSymbol(s *Symbol) bool {
	return v.Type == LSymbol && v.Sym == s
}

// Len returns the number of elements in a list.
func (v *LVal) Len() int {
	if v.Type != LSExpr {
		return 0
	}
	return len(v.Cells)
}

// Interrupts returns true if v is an error or an escape mark, either of
// which must be returned immediately by the evaluator and builtins.
func (v *LVal) Interrupts() bool {
	return v.Type == LError || v.Type == LMarkEscape
}

// Equal returns true if v and other are structurally equal.  Numbers are
// compared by value regardless of representation.
func (v *LVal) Equal(other *LVal) bool {
	if v.IsNumeric() && other.IsNumeric() {
		return v.EqualNum(other)
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LSExpr:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	default:
		return v.Eqv(other)
	}
}

// Eqv returns true if v and other are the same atom or the same object.
// Lists are only eqv when they are the same list or both empty.
func (v *LVal) Eqv(other *LVal) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LUnspecified:
		return true
	case LInt:
		return v.Int == other.Int
	case LFloat:
		return v.Float == other.Float
	case LString:
		return v.Str == other.Str
	case LBool:
		return v.Bool == other.Bool
	case LSymbol:
		return v.Sym == other.Sym
	case LSExpr:
		return v == other || (len(v.Cells) == 0 && len(other.Cells) == 0)
	case LFun:
		return v.FunData() == other.FunData()
	default:
		return v == other
	}
}

// EqualNum returns true if numeric values v and other are equal.
func (v *LVal) EqualNum(other *LVal) bool {
	if v.Type == LInt && other.Type == LInt {
		return v.Int == other.Int
	}
	return v.AsFloat() == other.AsFloat()
}

// AsFloat returns the value of a numeric LVal as a float64.
func (v *LVal) AsFloat() float64 {
	if v.Type == LInt {
		return float64(v.Int)
	}
	return v.Float
}

func (v *LVal) String() string {
	var buf bytes.Buffer
	v.write(&buf)
	return buf.String()
}

func (v *LVal) write(buf *bytes.Buffer) {
	switch v.Type {
	case LBool:
		if v.Bool {
			buf.WriteString(TrueLiteral)
		} else {
			buf.WriteString(FalseLiteral)
		}
	case LString:
		buf.WriteByte('"')
		buf.WriteString(v.Str)
		buf.WriteByte('"')
	case LSymbol:
		buf.WriteString(v.Sym.name)
	case LSExpr:
		buf.WriteByte('(')
		for i, c := range v.Cells {
			if i > 0 {
				buf.WriteByte(' ')
			}
			c.write(buf)
		}
		buf.WriteByte(')')
	case LInt:
		buf.WriteString(strconv.Itoa(v.Int))
	case LFloat:
		buf.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case LFun:
		fd := v.FunData()
		kind := "procedure"
		if fd.Builtin != nil {
			kind = "builtin"
		}
		if fd.Name == "" {
			fmt.Fprintf(buf, "#<%s>", kind)
		} else {
			fmt.Fprintf(buf, "#<%s %s>", kind, fd.Name)
		}
	case LUnspecified:
		buf.WriteString("#<unspecified>")
	case LError:
		buf.WriteString((*ErrorVal)(v).Error())
	case LMarkEscape:
		buf.WriteString("#<escape>")
	default:
		fmt.Fprintf(buf, "#<%s>", v.Type)
	}
}
