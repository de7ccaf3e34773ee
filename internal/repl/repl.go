// Package repl implements the interactive Latch shell, adapted from the
// teacher's repl package: chzyer/readline for line editing and history,
// fatih/color for the banner and error output. Unlike `latch run`, the
// REPL evaluates one top-level statement per line and skips semantic
// analysis entirely, so a line can be corrected and re-entered without
// re-validating everything that came before it.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/eval"
	"github.com/latchlang/latch/internal/parser"
	"github.com/latchlang/latch/internal/value"
)

const (
	Version = "v0.1.0"
	Prompt  = "latch> "
)

var (
	bannerColor = color.New(color.FgGreen, color.Bold)
	errorColor  = color.New(color.FgRed)
)

// Repl drives a single read-eval-print loop against one long-lived
// Interpreter, so variables and functions persist across lines.
type Repl struct {
	Interp   *eval.Interpreter
	UseColor bool
}

func New(interp *eval.Interpreter, useColor bool) *Repl {
	return &Repl{Interp: interp, UseColor: useColor}
}

// PrintBanner writes the startup banner to w.
func (r *Repl) PrintBanner(w io.Writer) {
	line := fmt.Sprintf("latch %s — a small, deterministic scripting language", Version)
	if r.UseColor {
		bannerColor.Fprintln(w, line)
	} else {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, `type "exit" or "quit" to leave, Ctrl-D also works`)
}

// Start runs the loop until the user exits or input closes.
func (r *Repl) Start(stdin io.ReadCloser, stdout io.Writer) error {
	r.PrintBanner(stdout)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      Prompt,
		HistoryFile: "",
		Stdin:       stdin,
		Stdout:      stdout,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if code, stopped := r.evalLine(line, stdout); stopped {
			fmt.Fprintf(stdout, "[latch] stop %d\n", code)
			return nil
		}
	}
}

func (r *Repl) evalLine(line string, stdout io.Writer) (code int64, stopped bool) {
	p := parser.New(line)
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		for _, e := range p.Errors {
			r.printError(stdout, "Syntax Error", e)
		}
		return 0, false
	}
	if len(prog.Stmts) == 0 {
		return 0, false
	}

	var last value.Value
	haveLast := false
	for _, stmt := range prog.Stmts {
		v, err := r.Interp.Run(&ast.Program{Stmts: []ast.Stmt{stmt}})
		if err != nil {
			if stopCode, ok := eval.AsStop(err); ok {
				return stopCode, true
			}
			r.printError(stdout, "Runtime Error", err.Error())
			return 0, false
		}
		if _, isExprStmt := stmt.(*ast.ExprStmt); isExprStmt {
			last, haveLast = v, true
		} else {
			haveLast = false
		}
	}
	if haveLast {
		fmt.Fprintln(stdout, last.String())
	}
	return 0, false
}

func (r *Repl) printError(w io.Writer, category, reason string) {
	msg := fmt.Sprintf("[latch] %s: %s", category, reason)
	if r.UseColor {
		errorColor.Fprintln(w, msg)
		return
	}
	fmt.Fprintln(w, msg)
}
