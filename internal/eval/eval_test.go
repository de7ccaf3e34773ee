package eval

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latchlang/latch/internal/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	p := parser.New(src)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	in := New()
	var buf bytes.Buffer
	in.Writer = &buf
	_, err := in.Run(prog)
	return buf.String(), err
}

func TestEval_Arithmetic(t *testing.T) {
	out, err := run(t, "print(1 + 2 * 3)")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestEval_ClosureCapturesSnapshotNotLiveReference(t *testing.T) {
	out, err := run(t, "x := 1\nfn f() {\n  return x\n}\nx = 2\nprint(f())")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out, "closures must snapshot the scope chain at creation time")
}

func TestEval_ListAliasing(t *testing.T) {
	out, err := run(t, "a := [1, 2]\nb := a\npush(b, 3)\nprint(a)")
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3]\n", out)
}

func TestEval_IfElse(t *testing.T) {
	out, err := run(t, "x := 5\nif x > 3 {\n  print(\"big\")\n} else {\n  print(\"small\")\n}")
	require.NoError(t, err)
	assert.Equal(t, "big\n", out)
}

func TestEval_ForLoopSum(t *testing.T) {
	out, err := run(t, "total := 0\nfor i in 1..5 {\n  total += i\n}\nprint(total)")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestEval_WhileBreakContinue(t *testing.T) {
	out, err := run(t, "i := 0\nn := 0\nwhile i < 10 {\n  i += 1\n  if i % 2 == 0 {\n    continue\n  }\n  if i > 7 {\n    break\n  }\n  n += i\n}\nprint(n)")
	require.NoError(t, err)
	assert.Equal(t, "16\n", out)
}

func TestEval_FunctionRecursion(t *testing.T) {
	out, err := run(t, "fn fact(n) {\n  if n <= 1 {\n    return 1\n  }\n  return n * fact(n - 1)\n}\nprint(fact(5))")
	require.NoError(t, err)
	assert.Equal(t, "120\n", out)
}

func TestEval_TryCatch(t *testing.T) {
	out, err := run(t, "try {\n  x := 1 / 0\n} catch (e) {\n  print(\"caught\")\n}")
	require.NoError(t, err)
	assert.Equal(t, "caught\n", out)
}

func TestEval_OrDefaultSuppressesError(t *testing.T) {
	out, err := run(t, `x := (1 / 0) or 99
print(x)`)
	require.NoError(t, err)
	assert.Equal(t, "99\n", out)
}

func TestEval_CoalesceOnlyNull(t *testing.T) {
	out, err := run(t, "m := {}\nprint(m[\"missing\"] ?? \"fallback\")")
	require.NoError(t, err)
	assert.Equal(t, "fallback\n", out)
}

func TestEval_ParallelForRunsBodyPerItem(t *testing.T) {
	out, err := run(t, `parallel v in [1, 2, 3] workers=3 {
  if v == 2 {
    print(v)
  }
}`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestEval_StringInterpolation(t *testing.T) {
	out, err := run(t, `a := 1
b := 2
print("sum: ${a + b}")`)
	require.NoError(t, err)
	assert.Equal(t, "sum: 3\n", out)
}

func TestEval_PipeExpression(t *testing.T) {
	out, err := run(t, "fn double(x) {\n  return x * 2\n}\nprint(5 |> double())")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestEval_ListComprehension(t *testing.T) {
	out, err := run(t, "xs := [v * 2 for v in [1, 2, 3] if v > 1]\nprint(xs)")
	require.NoError(t, err)
	assert.Equal(t, "[4, 6]\n", out)
}

func TestEval_UsePullsDeclarationsIntoCurrentScope(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helpers.lt")
	require.NoError(t, os.WriteFile(path, []byte("fn greet(name) {\n  return \"hi \" + name\n}\n"), 0o644))

	out, err := run(t, fmt.Sprintf("use %q\nprint(greet(\"sam\"))", path))
	require.NoError(t, err)
	assert.Equal(t, "hi sam\n", out)
}

func TestEval_UseMissingFileErrors(t *testing.T) {
	_, err := run(t, `use "no/such/file.lt"`)
	require.Error(t, err)
}

func TestEval_StarRepeatNegativeCountErrors(t *testing.T) {
	_, err := run(t, `print([1, 2] * -1)`)
	require.Error(t, err)

	_, err = run(t, `print("ab" * -1)`)
	require.Error(t, err)
}

func TestEval_ParallelBreakInsideWorkerIsAnError(t *testing.T) {
	_, err := run(t, `parallel v in [1, 2, 3] workers=3 {
  if v == 2 {
    break
  }
}`)
	require.Error(t, err)
}

func TestEval_ParallelContinueInsideWorkerIsAnError(t *testing.T) {
	_, err := run(t, `parallel v in [1, 2, 3] workers=3 {
  if v == 2 {
    continue
  }
}`)
	require.Error(t, err)
}
