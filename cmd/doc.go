// Copyright © 2021 The ELPS authors

package cmd

import (
	"bufio"
	"os"

	"github.com/luthersystems/schemer/diagnostic"
	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib/libhelp"
	"github.com/spf13/cobra"
)

// DocCommand returns the doc command.
func DocCommand(opts ...Option) *cobra.Command {
	var sourceFile string
	cmd := &cobra.Command{
		Use:   "doc [flags] [NAME]",
		Short: "Show documentation for builtins, macros and procedures",
		Long: `Show documentation for a global procedure or macro.

Without a NAME a one-line summary of every global procedure and macro is
printed.  Use -f to load a source file first (useful for documenting your
own code).  A procedure is documented by a string at the start of a body
with more than one expression.

Examples:
  schemer doc                      Summarize every builtin and macro
  schemer doc call/cc              Show docs for call/cc
  schemer doc let                  Show docs for the let macro
  schemer doc -f mylib.scm my-fn   Load a file, then show docs for my-fn`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := newCmdConfig(opts...)
			env, err := cfg.environment()
			if err != nil {
				return err
			}
			if sourceFile != "" {
				f, err := os.Open(sourceFile) //nolint:gosec // user supplied source file
				if err != nil {
					return err
				}
				res := env.Load(sourceFile, f)
				_ = f.Close()
				if res.Type == lisp.LError {
					env.Runtime.Stack.Reset()
					r, err := cfg.renderer()
					if err != nil {
						return err
					}
					_ = r.Render(cfg.stderr, diagnostic.FromError(res))
					return errFailed
				}
			}
			out := bufio.NewWriter(cfg.stdout)
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			if len(args) == 0 {
				return libhelp.RenderSummary(out, env)
			}
			return libhelp.RenderVar(out, env, args[0])
		},
	}
	cmd.Flags().StringVarP(&sourceFile, "source-file", "f", "",
		"Evaluate a lisp source file before querying documentation.")
	return cmd
}

func init() {
	rootCmd.AddCommand(DocCommand())
}
