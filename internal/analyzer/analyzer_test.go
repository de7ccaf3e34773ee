package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latchlang/latch/internal/parser"
)

func checkSrc(t *testing.T, src string) error {
	t.Helper()
	p := parser.New(src)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	a := New("test.latch", src)
	return a.Check(prog)
}

func TestAnalyzer_UndefinedVariable(t *testing.T) {
	err := checkSrc(t, "print(x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined variable")
}

func TestAnalyzer_CleanProgram(t *testing.T) {
	err := checkSrc(t, "x := 1\nprint(x)")
	assert.NoError(t, err)
}

func TestAnalyzer_AssignToUndeclared(t *testing.T) {
	err := checkSrc(t, "x = 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared variable")
}

func TestAnalyzer_AssignToConst(t *testing.T) {
	err := checkSrc(t, "const x = 1\nx = 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot assign to constant")
}

func TestAnalyzer_ReturnOutsideFunction(t *testing.T) {
	err := checkSrc(t, "return 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "return used outside")
}

func TestAnalyzer_BreakOutsideLoop(t *testing.T) {
	err := checkSrc(t, "break")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "break used outside")
}

func TestAnalyzer_DuplicateFunction(t *testing.T) {
	err := checkSrc(t, "fn f() {}\nfn f() {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined")
}

func TestAnalyzer_ArityMismatch(t *testing.T) {
	err := checkSrc(t, "fn add(a, b) {\n  return a + b\n}\nadd(1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects")
}

func TestAnalyzer_FunctionParamsVisibleInBody(t *testing.T) {
	err := checkSrc(t, "fn f(a, b) {\n  return a + b\n}")
	assert.NoError(t, err)
}

func TestAnalyzer_UnknownModule(t *testing.T) {
	err := checkSrc(t, `bogus.call("x")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown module")
}

func TestAnalyzer_UseMissingFileReported(t *testing.T) {
	err := checkSrc(t, `use "no/such/file.lt"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestAnalyzer_CallingBuiltinIsNotUndefined(t *testing.T) {
	err := checkSrc(t, `print(upper(trim("hi")))`)
	assert.NoError(t, err)
}
