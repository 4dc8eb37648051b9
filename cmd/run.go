// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/schemer/diagnostic"
	"github.com/luthersystems/schemer/lisp"
	"github.com/spf13/cobra"
)

// RunCommand returns the run command.
func RunCommand(opts ...Option) *cobra.Command {
	var expression, printValues bool
	cmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Run lisp code",
		Long: `Run lisp code supplied via the command line or files.

Every file is evaluated in the same environment, in order.  Evaluation stops
at the first error, which is reported with the failing source line.

Examples:
  schemer run prog.scm
  schemer run -e '(define (sq x) (* x x))' '(sq 12)' -p`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := newCmdConfig(opts...)
			srcs, err := readSources(args, expression)
			if err != nil {
				return err
			}
			env, err := cfg.environment()
			if err != nil {
				return err
			}
			stop, err := startProfiler(env, cfg.stderr)
			if err != nil {
				return err
			}
			err = cfg.eachForm(env, srcs, func(x *lisp.LVal) *lisp.LVal {
				out, lerr := env.InterpretForm(x)
				if lerr != nil {
					return lerr
				}
				if printValues && out != lisp.NoValue {
					fmt.Fprintln(cfg.stdout, out) //nolint:errcheck // best-effort output
				}
				return nil
			})
			if serr := stop(); err == nil {
				err = serr
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	cmd.Flags().BoolVarP(&printValues, "print", "p", false,
		"Print expression values to stdout")
	return cmd
}

// source is named program text.
type source struct {
	name string
	text string
}

// readSources returns the contents of the files named by args.  When
// expression is true the args are the program text itself.
func readSources(args []string, expression bool) ([]source, error) {
	srcs := make([]source, len(args))
	for i, arg := range args {
		if expression {
			srcs[i] = source{name: fmt.Sprintf("expr%d", i+1), text: arg}
			continue
		}
		b, err := os.ReadFile(arg) //nolint:gosec // user supplied source file
		if err != nil {
			return nil, err
		}
		srcs[i] = source{name: arg, text: string(b)}
	}
	return srcs, nil
}

// eachForm reads the top-level forms of each source and calls fn for each
// of them in order.  An error returned by fn is rendered as a diagnostic and
// stops iteration.
func (c *cmdConfig) eachForm(env *lisp.LEnv, srcs []source, fn func(x *lisp.LVal) *lisp.LVal) error {
	r, err := c.renderer()
	if err != nil {
		return err
	}
	for _, src := range srcs {
		r.AddSource(src.name, src.text)
		exprs, err := env.Runtime.Reader.Read(env.Runtime.Symbols, src.name, strings.NewReader(src.text))
		if err != nil {
			fmt.Fprintf(c.stderr, "%s: %v\n", lisp.CondSyntaxError, err) //nolint:errcheck // best-effort error display
			return errFailed
		}
		for _, x := range exprs {
			lerr := fn(x)
			if lerr != nil {
				_ = r.Render(c.stderr, diagnostic.FromError(lerr))
				return errFailed
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(RunCommand())
}
