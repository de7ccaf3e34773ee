// Package diag renders Latch diagnostics in the documented
// `[latch] Category` block format, colorized the way the teacher's repl
// and main packages colorize banners and errors with fatih/color.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Category groups diagnostics the way the evaluator's error kinds do:
// lexical, syntax, semantic, or runtime.
type Category string

const (
	Lexical  Category = "Lexical Error"
	Syntax   Category = "Syntax Error"
	Semantic Category = "Semantic Error"
	Runtime  Category = "Runtime Error"
)

// Diagnostic is one reportable problem, carrying enough context to
// render the full `[latch] ...` block.
type Diagnostic struct {
	Category   Category
	File       string
	Line, Col  int
	SourceLine string
	Reason     string
	Hint       string
}

func (d Diagnostic) Error() string { return d.Reason }

var (
	headerColor = color.New(color.FgRed, color.Bold)
	fieldColor  = color.New(color.FgYellow)
	hintColor   = color.New(color.FgCyan)
)

// Format renders the diagnostic as the exact multi-line block documented
// for the CLI and REPL. Colors are applied only when useColor is true,
// so `latch check --no-color` and redirected output stay plain.
func Format(d Diagnostic, useColor bool) string {
	var b strings.Builder

	header := fmt.Sprintf("[latch] %s", d.Category)
	if useColor {
		header = headerColor.Sprint(header)
	}
	fmt.Fprintln(&b, header)

	writeField := func(label, val string) {
		line := fmt.Sprintf("  %s: %s", label, val)
		if useColor {
			line = fmt.Sprintf("  %s: %s", fieldColor.Sprint(label), val)
		}
		fmt.Fprintln(&b, line)
	}

	if d.File != "" {
		writeField("file", d.File)
	}
	fmt.Fprintf(&b, "  line: %d  col: %d\n", d.Line, d.Col)
	if d.SourceLine != "" {
		fmt.Fprintf(&b, "  → %s\n", strings.TrimSpace(d.SourceLine))
	}
	writeField("reason", d.Reason)
	if d.Hint != "" {
		hint := fmt.Sprintf("  hint: %s", d.Hint)
		if useColor {
			hint = fmt.Sprintf("  %s: %s", hintColor.Sprint("hint"), d.Hint)
		}
		fmt.Fprintln(&b, hint)
	}
	return strings.TrimRight(b.String(), "\n")
}

// SourceLine extracts the (1-indexed) line from source for the `→`
// context pointer, returning "" if line is out of range.
func SourceLine(source string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
