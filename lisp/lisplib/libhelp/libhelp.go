// Copyright © 2021 The ELPS authors

package libhelp

import (
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib/internal/libutil"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// LoadPackage binds the help procedures in the root environment of env.
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	env.AddBuiltins(libutil.Defs(builtins)...)
	return lisp.Nil()
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("help", 0, 1, builtinHelp,
		`
		Prints documentation for the given procedure, or for the global
		variable or macro named by a symbol.  Without an argument a summary
		of every global procedure and macro is printed.
		`),
}

func builtinHelp(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	var err error
	switch {
	case len(args) == 0:
		err = RenderSummary(env.Runtime.Stdout, env)
	case args[0].Type == lisp.LSymbol:
		err = RenderVar(env.Runtime.Stdout, env, args[0].Sym.Name())
	case args[0].Type == lisp.LFun:
		fd := args[0].FunData()
		err = renderFun(env.Runtime.Stdout, kind(args[0]), fd.Name, args[0])
	default:
		return env.ErrorConditionf(lisp.CondTypeError, "argument is not a symbol or procedure: %v", args[0].Type)
	}
	if err != nil {
		return env.Error(err)
	}
	return lisp.Unspecified()
}

// RenderVar writes to w formatted documentation for the global variable or
// macro named name in the context of env.  The exact formatting of the
// rendered documentation is subject to change.
func RenderVar(w io.Writer, env *lisp.LEnv, name string) error {
	sym := env.Runtime.Intern(name)
	if mac := env.Runtime.Macros.Get(sym); mac != nil {
		return renderFun(w, "macro", name, mac)
	}
	v := env.Runtime.Root.Get(sym)
	if err := lisp.GoError(v); err != nil {
		return err
	}
	if v.Type != lisp.LFun {
		_, err := fmt.Fprintf(w, "%v %s %v\n", v.Type, name, v)
		return err
	}
	return renderFun(w, kind(v), name, v)
}

// RenderSummary writes the signature and first line of documentation of
// every global procedure and macro in env to w, sorted by name.
func RenderSummary(w io.Writer, env *lisp.LEnv) error {
	rt := env.Runtime
	for _, name := range rt.Macros.Names() {
		mac := rt.Macros.Get(rt.Intern(name))
		if err := renderSummaryLine(w, "macro", name, mac); err != nil {
			return err
		}
	}
	for _, name := range rt.Symbols.Names() {
		sym := rt.Intern(name)
		v, ok := rt.Root.Scope[sym]
		if !ok || v.Type != lisp.LFun {
			continue
		}
		if err := renderSummaryLine(w, kind(v), name, v); err != nil {
			return err
		}
	}
	return nil
}

func renderSummaryLine(w io.Writer, kind, name string, v *lisp.LVal) error {
	line := fmt.Sprintf("  %-8s %-24s", kind, Signature(name, v))
	doc := strings.TrimSpace(dedentDoc(v.FunData().Doc))
	if doc != "" {
		first := strings.SplitN(doc, "\n", 2)[0]
		line += "  " + strings.TrimSpace(first)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
	return err
}

func kind(v *lisp.LVal) string {
	if v.IsBuiltin() {
		return "builtin"
	}
	return "procedure"
}

func renderFun(w io.Writer, kind, name string, v *lisp.LVal) error {
	_, err := fmt.Fprintf(w, "%s %s\n", kind, Signature(name, v))
	if err != nil {
		return fmt.Errorf("rendering signature: %w", err)
	}
	doc := cleanDocstring(v.FunData().Doc)
	if doc != "" {
		_, err = fmt.Fprintln(w, doc)
		return err
	}
	return nil
}

// Signature renders a call template for the procedure v under name.
// Closures show their parameter names.  Builtins show one placeholder per
// required argument, optional arguments in brackets, and a trailing ellipsis
// when variadic.
func Signature(name string, v *lisp.LVal) string {
	if name == "" {
		name = "lambda"
	}
	fd := v.FunData()
	if fd.Builtin == nil {
		switch fd.Params.Type {
		case lisp.LSymbol:
			return fmt.Sprintf("(%s %v...)", name, fd.Params)
		default:
			if fd.Params.Len() == 0 {
				return "(" + name + ")"
			}
			s := fd.Params.String()
			return "(" + name + " " + s[1:]
		}
	}
	parts := []string{name}
	for i := 0; i < fd.MinArgs; i++ {
		parts = append(parts, argName(i))
	}
	for i := fd.MinArgs; i < fd.MaxArgs; i++ {
		parts = append(parts, "["+argName(i)+"]")
	}
	if fd.MaxArgs < 0 {
		parts = append(parts, argName(fd.MinArgs)+"...")
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func argName(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return fmt.Sprintf("x%d", i)
}

func cleanDocstring(doc string) string {
	if doc == "" {
		return ""
	}
	if doc[0] == '\n' {
		doc = doc[1:]
	}
	doc = indent.String(wordwrap.String(dedentDoc(doc), 72), 2)
	doc = strings.TrimSuffix(doc, "\n")
	return strings.TrimRight(doc, " \n")
}

// dedentDoc removes common leading whitespace from all non-empty lines.
// The first line of a raw string literal usually has no indentation so it
// is not considered.  Tabs are normalized to spaces before processing.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")
	minWS := -1
	start := 0
	if len(lines) > 1 {
		start = 1
	}
	for _, line := range lines[start:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		ws := len(line) - len(trimmed)
		if minWS < 0 || ws < minWS {
			minWS = ws
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		switch {
		case strings.TrimSpace(lines[i]) == "":
			lines[i] = ""
		case minWS > 0 && len(lines[i]) >= minWS:
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
