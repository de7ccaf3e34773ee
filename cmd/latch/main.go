// Command latch is the CLI front end for the Latch interpreter: a
// github.com/spf13/cobra command tree exposing run/check/repl/version,
// mirroring the subcommand layout of the original implementation this
// interpreter follows.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/latchlang/latch/internal/analyzer"
	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/diag"
	"github.com/latchlang/latch/internal/eval"
	"github.com/latchlang/latch/internal/parser"
	"github.com/latchlang/latch/internal/repl"
)

const version = "v0.1.0"

var (
	noColor bool
	workers int
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "latch",
		Short:         "Latch — a small, deterministic scripting language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")
	root.PersistentFlags().IntVar(&workers, "workers", 0, "default parallel-for worker count (0 = GOMAXPROCS)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "abort the script if it runs longer than this (0 = no limit)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		color.NoColor = noColor
	}

	root.AddCommand(newRunCmd(), newCheckCmd(), newReplCmd(), newVersionCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Latch script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Check a script for errors without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkFile(args[0])
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := eval.New()
			in.Workers = workers
			r := repl.New(in, !noColor)
			return r.Start(os.Stdin, os.Stdout)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("latch %s\n", version)
			return nil
		},
	}
}

func readSource(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[latch] IO Error\n  file: %s\n  reason: %s\n", file, err)
		return "", err
	}
	return string(data), nil
}

// parseAndCheck runs the lex/parse/semantic pipeline shared by `run` and
// `check`, printing every collected diagnostic before returning the
// parsed program and whether it passed every stage.
func parseAndCheck(file, source string) (*ast.Program, bool) {
	p := parser.New(source)
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		for _, ep := range p.ErrorPos {
			printDiag(diag.Diagnostic{
				Category:   diag.Syntax,
				File:       file,
				Line:       ep.Line,
				Col:        ep.Col,
				SourceLine: diag.SourceLine(source, ep.Line),
				Reason:     ep.Msg,
			})
		}
		return nil, false
	}

	a := analyzer.New(file, source)
	if err := a.Check(prog); err != nil {
		if merr, ok := err.(*multierror.Error); ok {
			for _, e := range merr.Errors {
				if d, ok := e.(diag.Diagnostic); ok {
					printDiag(d)
				} else {
					fmt.Fprintln(os.Stderr, e)
				}
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return nil, false
	}
	return prog, true
}

func runFile(file string) error {
	source, err := readSource(file)
	if err != nil {
		return err
	}
	prog, ok := parseAndCheck(file, source)
	if !ok {
		return fmt.Errorf("latch: %s failed checks", file)
	}

	in := eval.New()
	in.Workers = workers

	runErr := make(chan error, 1)
	go func() {
		_, err := in.Run(prog)
		runErr <- err
	}()

	if timeout <= 0 {
		return finishRun(<-runErr, file)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	select {
	case err := <-runErr:
		return finishRun(err, file)
	case <-ctx.Done():
		fmt.Fprintf(os.Stderr, "[latch] Runtime Error\n  file: %s\n  reason: exceeded timeout of %s\n", file, timeout)
		os.Exit(1)
		return nil
	}
}

func finishRun(err error, file string) error {
	if err == nil {
		return nil
	}
	if code, ok := eval.AsStop(err); ok {
		os.Exit(int(code))
		return nil
	}
	if d, ok := err.(diag.Diagnostic); ok {
		printDiag(d)
	} else {
		printDiag(diag.Diagnostic{
			Category: diag.Runtime,
			File:     file,
			Reason:   err.Error(),
		})
	}
	return fmt.Errorf("latch: %s raised a runtime error", file)
}

func checkFile(file string) error {
	source, err := readSource(file)
	if err != nil {
		return err
	}
	_, ok := parseAndCheck(file, source)
	if !ok {
		return fmt.Errorf("latch: %s failed checks", file)
	}
	fmt.Println("[latch] OK — no errors found.")
	return nil
}

func printDiag(d diag.Diagnostic) {
	fmt.Fprintln(os.Stderr, diag.Format(d, !noColor))
}
