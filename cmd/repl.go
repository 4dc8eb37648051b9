// Copyright © 2018 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/schemer/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive REPL",
	Long: `Start an interactive read-eval-print loop.

The builtin procedures are loaded automatically.  Line editing, symbol
completion and command history are supported via readline.  A form left
open at the end of a line continues on the next line.  Use Ctrl-D to exit.

Example REPL session:
  schemer> (define (sq x) (* x x))
  schemer> (sq 5)
  25
  schemer> (call/cc (lambda (k) (+ 1 (k 42))))
  42
  schemer> (help 'call/cc)
  ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := newCmdConfig()
		env, err := cfg.environment()
		if err != nil {
			return err
		}
		r, err := cfg.renderer()
		if err != nil {
			return err
		}
		stop, err := startProfiler(env, cfg.stderr)
		if err != nil {
			return err
		}
		prompt := filepath.Base(os.Args[0]) + "> "
		repl.RunEnv(env, prompt, strings.Repeat(" ", len(prompt)), repl.WithColor(r.Color))
		return stop()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
