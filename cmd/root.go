// Copyright © 2018 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys.  Each key is also a persistent flag on the root
// command and can be set with an environment variable, e.g. SCHEMER_MAX_DEPTH.
const (
	keyMaxDepth      = "max-depth"
	keyReader        = "reader"
	keyColor         = "color"
	keyTrace         = "trace"
	keyProfile       = "profile"
	keyProfileFormat = "profile-format"
)

var cfgFile string

// errFailed is returned by commands which already reported their failure.
var errFailed = errors.New("evaluation failed")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "schemer",
	Short: "A small Scheme interpreter",
	Long: `schemer interprets a small dialect of Scheme with a static macro
expansion pass, lexical closures and escape-only continuations.

Getting started:
  schemer run file.scm              Run a source file
  schemer run -e '(+ 1 2)' -p       Evaluate an expression and print it
  schemer repl                      Start an interactive REPL
  schemer expand -e '(let ((x 1)) x)'
                                    Show the core form a macro produces
  schemer doc call/cc               Show documentation for a builtin

Language overview:
  Only #f is false.  The empty list () is a value distinct from #f.
  Special forms are quote, if, set!, define, define-macro, lambda, begin
  and quasiquote.  (define (f x) ...) and (define-macro (m x) ...) are
  shorthand for binding a lambda.  let is a builtin macro.
  call/cc passes a one-shot escape procedure which is valid only until
  call/cc returns.

Configuration is read from $HOME/.schemer.yaml and from environment
variables prefixed with SCHEMER_.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.schemer.yaml)")
	flags.Int(keyMaxDepth, 0,
		"Maximum depth of nested procedure applications (0 is unlimited).")
	flags.String(keyReader, "rd",
		`Source reader implementation: "rd" or "parsec".`)
	flags.String(keyColor, "auto",
		`Control colored output: "auto", "always", or "never".`)
	flags.String(keyTrace, "",
		`Write a span per procedure application to stderr: "otel" or "opencensus".`)
	flags.String(keyProfile, "",
		"Write a profile of procedure applications to the given file.")
	flags.String(keyProfileFormat, "callgrind",
		`Profile format: "callgrind" or "pprof".`)
	for _, key := range []string{keyMaxDepth, keyReader, keyColor, keyTrace, keyProfile, keyProfileFormat} {
		err := viper.BindPFlag(key, flags.Lookup(key))
		if err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".schemer" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".schemer")
	}

	viper.SetEnvPrefix("schemer")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	if err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
