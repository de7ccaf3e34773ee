package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latchlang/latch/internal/ast"
)

func TestParser_LetAndArithmetic(t *testing.T) {
	p := New("x := 1 + 2 * 3")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	require.Len(t, prog.Stmts, 1)
	let, ok := prog.Stmts[0].(*ast.LetStmt)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	bin, ok := let.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", string(bin.Op))
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", string(rhs.Op))
}

func TestParser_TypedLet(t *testing.T) {
	p := New(`n: int := 5`)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	let := prog.Stmts[0].(*ast.LetStmt)
	assert.Equal(t, "int", let.Type)
}

func TestParser_IfElse(t *testing.T) {
	p := New("if x > 0 {\n  y := 1\n} else {\n  y := 2\n}")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	ifs, ok := prog.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifs.Else)
}

func TestParser_FunctionDecl(t *testing.T) {
	p := New("fn add(a: int, b: int = 1) -> int {\n  return a + b\n}")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	fn, ok := prog.Stmts[0].(*ast.FuncDeclStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "int", fn.Params[0].Type)
	assert.NotNil(t, fn.Params[1].Default)
	assert.Equal(t, "int", fn.ReturnType)
}

func TestParser_ParallelFor(t *testing.T) {
	p := New("parallel v in items workers=4 {\n  print(v)\n}")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	par, ok := prog.Stmts[0].(*ast.ParallelStmt)
	require.True(t, ok)
	assert.Equal(t, "v", par.Var)
	assert.NotNil(t, par.Workers)
}

func TestParser_PipeAndModuleCall(t *testing.T) {
	p := New(`data |> fs.read("x.txt")`)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	es := prog.Stmts[0].(*ast.ExprStmt)
	pipe, ok := es.X.(*ast.PipeExpr)
	require.True(t, ok)
	mc, ok := pipe.Target.(*ast.ModuleCallExpr)
	require.True(t, ok)
	assert.Equal(t, "fs", mc.Module)
	assert.Equal(t, "read", mc.Method)
}

func TestParser_ListLitAndIndex(t *testing.T) {
	p := New("xs := [1, 2, 3]\ny := xs[0]")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	require.Len(t, prog.Stmts, 2)
	let := prog.Stmts[0].(*ast.LetStmt)
	list, ok := let.Value.(*ast.ListLit)
	require.True(t, ok)
	assert.Len(t, list.Elements, 3)
}

func TestParser_MapLit(t *testing.T) {
	p := New(`m := {a: 1, b: 2}`)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	let := prog.Stmts[0].(*ast.LetStmt)
	m, ok := let.Value.(*ast.MapLit)
	require.True(t, ok)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, "a", m.Entries[0].Key)
}

func TestParser_RangeExpr(t *testing.T) {
	p := New("for i in 1..10 {\n  print(i)\n}")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	fs := prog.Stmts[0].(*ast.ForStmt)
	rng, ok := fs.Iter.(*ast.RangeExpr)
	require.True(t, ok)
	assert.NotNil(t, rng.Start)
	assert.NotNil(t, rng.End)
}

func TestParser_TernaryAndOrDefault(t *testing.T) {
	p := New("x := (a > 0 ? 1 : 2)\ny := risky() or 0")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	let := prog.Stmts[0].(*ast.LetStmt)
	_, ok := let.Value.(*ast.TernaryExpr)
	assert.True(t, ok)
	let2 := prog.Stmts[1].(*ast.LetStmt)
	_, ok2 := let2.Value.(*ast.OrDefaultExpr)
	assert.True(t, ok2)
}

func TestParser_IndexAssign(t *testing.T) {
	p := New("xs[0] = 5")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	ia, ok := prog.Stmts[0].(*ast.IndexAssignStmt)
	require.True(t, ok)
	assert.NotNil(t, ia.Target)
}

func TestParser_StringInterpolationExpr(t *testing.T) {
	p := New(`msg := "total: ${a + b}"`)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors)
	let := prog.Stmts[0].(*ast.LetStmt)
	lit, ok := let.Value.(*ast.InterpStringLit)
	require.True(t, ok)
	require.Len(t, lit.Parts, 2)
	assert.Equal(t, "total: ", lit.Parts[0].Literal)
	assert.NotNil(t, lit.Parts[1].Expr)
}
