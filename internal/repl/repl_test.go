package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latchlang/latch/internal/eval"
)

func newTestRepl() (*Repl, *bytes.Buffer) {
	var out bytes.Buffer
	in := eval.New()
	in.Writer = &out
	return New(in, false), &out
}

func TestRepl_EvalLinePrintsBareExpressionResult(t *testing.T) {
	r, stdout := newTestRepl()
	code, stopped := r.evalLine("1 + 2", stdout)
	assert.False(t, stopped)
	assert.Equal(t, int64(0), code)
	assert.Equal(t, "3\n", stdout.String())
}

func TestRepl_EvalLineRetainsStateAcrossCalls(t *testing.T) {
	r, stdout := newTestRepl()
	_, _ = r.evalLine("x := 41", stdout)
	stdout.Reset()
	_, _ = r.evalLine("x + 1", stdout)
	assert.Equal(t, "42\n", stdout.String())
}

func TestRepl_EvalLineSuppressesOutputForNonExprStatements(t *testing.T) {
	r, stdout := newTestRepl()
	_, stopped := r.evalLine("y := 10", stdout)
	assert.False(t, stopped)
	assert.Empty(t, stdout.String())
}

func TestRepl_EvalLineReportsSyntaxError(t *testing.T) {
	r, stdout := newTestRepl()
	_, stopped := r.evalLine("if (", stdout)
	assert.False(t, stopped)
	assert.Contains(t, stdout.String(), "Syntax Error")
}

func TestRepl_EvalLineReportsRuntimeError(t *testing.T) {
	r, stdout := newTestRepl()
	_, stopped := r.evalLine("1 / 0", stdout)
	assert.False(t, stopped)
	assert.Contains(t, stdout.String(), "Runtime Error")
}

func TestRepl_EvalLineHandlesStopSignal(t *testing.T) {
	r, stdout := newTestRepl()
	code, stopped := r.evalLine("stop 7", stdout)
	require.True(t, stopped)
	assert.Equal(t, int64(7), code)
}

func TestRepl_PrintBannerWritesVersionLine(t *testing.T) {
	r, _ := newTestRepl()
	var buf bytes.Buffer
	r.PrintBanner(&buf)
	assert.Contains(t, buf.String(), Version)
}
