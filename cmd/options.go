// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"
	"os"

	"github.com/luthersystems/schemer/diagnostic"
	"github.com/luthersystems/schemer/lisp"
	"github.com/luthersystems/schemer/lisp/lisplib"
	"github.com/luthersystems/schemer/parser"
	"github.com/spf13/viper"
)

// Option configures an exported command factory (RunCommand, DocCommand,
// ...).
type Option func(*cmdConfig)

type cmdConfig struct {
	env    *lisp.LEnv
	stdout io.Writer
	stderr io.Writer
}

// WithEnv injects a fully configured LEnv.  Commands evaluate in env instead
// of constructing an environment from the configuration.
func WithEnv(env *lisp.LEnv) Option {
	return func(c *cmdConfig) { c.env = env }
}

// WithOutput redirects command output.  Program output and printed values
// go to stdout while diagnostics go to stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *cmdConfig) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

func newCmdConfig(opts ...Option) *cmdConfig {
	c := &cmdConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// environment returns the injected environment or a new root environment
// configured by the max-depth and reader settings.
func (c *cmdConfig) environment() (*lisp.LEnv, error) {
	if c.env != nil {
		return c.env, nil
	}
	reader, err := parser.NewNamedReader(viper.GetString(keyReader))
	if err != nil {
		return nil, err
	}
	env := lisp.NewEnv(nil)
	rc := lisp.InitializeUserEnv(env,
		lisp.WithMaximumDepth(viper.GetInt(keyMaxDepth)),
		lisp.WithReader(reader),
		lisp.WithStdout(c.stdout),
		lisp.WithStderr(c.stderr),
		lisp.WithLoader(lisplib.LoadLibrary),
	)
	if err := lisp.GoError(rc); err != nil {
		return nil, err
	}
	return env, nil
}

func (c *cmdConfig) renderer() (*diagnostic.Renderer, error) {
	mode, err := diagnostic.ParseColorMode(viper.GetString(keyColor))
	if err != nil {
		return nil, err
	}
	return &diagnostic.Renderer{Color: mode}, nil
}
