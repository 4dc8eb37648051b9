// Copyright © 2018 The ELPS authors

package lisp

// Version is the interpreter version reported by tools.
const Version = "0.1.0"

// TrueLiteral and FalseLiteral are the source text of the two boolean values.
// Only the false value is considered false by conditionals.  The empty list,
// zero, and the empty string are all true.
const (
	TrueLiteral  = "#t"
	FalseLiteral = "#f"
)

// Names of the core special forms recognized by the expander and evaluator.
const (
	QuoteSymbol           = "quote"
	IfSymbol              = "if"
	SetSymbol             = "set!"
	DefineSymbol          = "define"
	LambdaSymbol          = "lambda"
	BeginSymbol           = "begin"
	DefineMacroSymbol     = "define-macro"
	QuasiquoteSymbol      = "quasiquote"
	UnquoteSymbol         = "unquote"
	UnquoteSplicingSymbol = "unquote-splicing"
)

// Names of procedures referenced by expanded quasiquote templates and the
// name of the builtin let macro.
const (
	AppendSymbol = "append"
	ConsSymbol   = "cons"
	LetSymbol    = "let"
)

// NoValue is the text returned by LEnv.Interpret when an evaluation produces
// no printable value (e.g. a top-level define or define-macro).
const NoValue = "!undefined"

// FailureMarker is the text returned by LEnv.Interpret when evaluation fails
// for any reason.  Error details are written to Runtime.Stderr.
const FailureMarker = "*** ERROR ***"

// specialSymbols holds the interned symbols for core forms of a single
// runtime.  Comparisons against these symbols are identity comparisons.
type specialSymbols struct {
	quote           *Symbol
	ifs             *Symbol
	set             *Symbol
	define          *Symbol
	lambda          *Symbol
	begin           *Symbol
	defineMacro     *Symbol
	quasiquote      *Symbol
	unquote         *Symbol
	unquoteSplicing *Symbol
	appends         *Symbol
	cons            *Symbol
	let             *Symbol
}

func newSpecialSymbols(t *SymbolTable) specialSymbols {
	return specialSymbols{
		quote:           t.Intern(QuoteSymbol),
		ifs:             t.Intern(IfSymbol),
		set:             t.Intern(SetSymbol),
		define:          t.Intern(DefineSymbol),
		lambda:          t.Intern(LambdaSymbol),
		begin:           t.Intern(BeginSymbol),
		defineMacro:     t.Intern(DefineMacroSymbol),
		quasiquote:      t.Intern(QuasiquoteSymbol),
		unquote:         t.Intern(UnquoteSymbol),
		unquoteSplicing: t.Intern(UnquoteSplicingSymbol),
		appends:         t.Intern(AppendSymbol),
		cons:            t.Intern(ConsSymbol),
		let:             t.Intern(LetSymbol),
	}
}
