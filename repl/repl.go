// Copyright © 2018 The ELPS authors

// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/schemer/diagnostic"
	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib"
	"github.com/luthersystems/schemer/parser"
	"github.com/luthersystems/schemer/parser/lexer"
	"github.com/luthersystems/schemer/parser/rdparser"
	"github.com/luthersystems/schemer/parser/token"
)

// SourceName is the source name of expressions read by the REPL.
const SourceName = "stdin"

type config struct {
	stdin       io.ReadCloser
	stderr      io.WriteCloser
	color       diagnostic.ColorMode
	historyFile string
	noHistory   bool
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures a REPL.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithColor sets the color mode for error diagnostics.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithHistoryFile overrides the default history file.  An empty path
// disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
		c.noHistory = path == ""
	}
}

// RunRepl runs a simple repl in an environment with the standard library
// loaded.
func RunRepl(prompt string, opts ...Option) {
	env := lisp.NewEnv(nil)
	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLoader(lisplib.LoadLibrary),
	}
	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStderr(cfg.stderr))
	}
	rc := lisp.InitializeUserEnv(env, envOpts...)
	if rc.Type == lisp.LError {
		errlnf("Language initialization failure: %v", rc)
		os.Exit(1)
	}
	RunEnv(env, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunEnv runs a simple repl with env as a root environment.
func RunEnv(env *lisp.LEnv, prompt, cont string, opts ...Option) {
	if env.Parent != nil {
		errlnf("REPL environment is not a root environment.")
		os.Exit(1)
	}

	p := rdparser.NewInteractive(env.Runtime.Symbols, nil)
	p.SetPrompts(prompt, cont)

	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}
	history := cfg.historyFile
	if history == "" && !cfg.noHistory {
		history = historyPath()
	}
	ensureHistoryFilePermissions(history)

	rlCfg := &readline.Config{
		Stdout:            env.Runtime.Stderr,
		Stderr:            env.Runtime.Stderr,
		Prompt:            p.Prompt(),
		HistoryFile:       history,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	renderer := &diagnostic.Renderer{Color: cfg.color}
	p.Read = func() []*token.Token {
		rl.SetPrompt(p.Prompt())
		for {
			line, err := rl.ReadSlice()
			if err == readline.ErrInterrupt {
				continue
			}
			if err != nil {
				return []*token.Token{{Type: token.EOF}}
			}
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			renderer.AddSource(SourceName, string(line))
			return lexLine(string(line))
		}
	}

	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(env.Runtime.Stderr, err) //nolint:errcheck // best-effort error display
			continue
		}
		out, lerr := env.InterpretForm(expr)
		if lerr != nil {
			renderError(renderer, env.Runtime.Stderr, lerr)
			continue
		}
		if out != lisp.NoValue {
			fmt.Fprintln(env.Runtime.Stderr, out) //nolint:errcheck // best-effort REPL output
		}
	}
}

// lexLine returns the tokens in a line of input, excluding the final EOF.
// Lexing stops after an ERROR token.
func lexLine(line string) []*token.Token {
	lex := lexer.New(SourceName, line)
	var tokens []*token.Token
	for {
		tok := lex.NextToken()
		if tok.Type == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
		if tok.Type == token.ERROR {
			return tokens
		}
	}
}

func renderError(r *diagnostic.Renderer, w io.Writer, lerr *lisp.LVal) {
	d := diagnostic.FromError(lerr)
	d.Notes = append(d.Notes, "use (help 'symbol) to browse available symbols")
	_ = r.Render(w, d)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".schemer_history")
}

// ensureHistoryFilePermissions creates the history file if necessary and
// restricts it to the current user.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // user history file
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}

func errlnf(format string, v ...interface{}) {
	if strings.HasSuffix(format, "\n") {
		errf(format, v...)
		return
	}
	errf(format+"\n", v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
