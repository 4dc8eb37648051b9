// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"

	"github.com/luthersystems/schemer/lisp"
	"github.com/spf13/cobra"
)

// ExpandCommand returns the expand command.
func ExpandCommand(opts ...Option) *cobra.Command {
	var expression bool
	cmd := &cobra.Command{
		Use:   "expand [flags] FILE...",
		Short: "Print the core forms lisp code expands into",
		Long: `Print the core form produced by the macro expander for each top-level
form.  Forms are expanded but not evaluated, with the exception of
define-macro, which registers its macro for the forms that follow it and
prints nothing.

Examples:
  schemer expand -e '(let ((x 1) (y 2)) (+ x y))'
  schemer expand -e '(define-macro (swap! a b) ` + "`" + `(let ((tmp ,a)) (set! ,a ,b) (set! ,b tmp)))' '(swap! x y)'`,
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
			return cfg.eachForm(env, srcs, func(x *lisp.LVal) *lisp.LVal {
				core := env.Expand(x)
				if core.Type == lisp.LError {
					env.Runtime.Stack.Reset()
					return core
				}
				if core.Type != lisp.LUnspecified {
					fmt.Fprintln(cfg.stdout, core) //nolint:errcheck // best-effort output
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	return cmd
}

func init() {
	rootCmd.AddCommand(ExpandCommand())
}
