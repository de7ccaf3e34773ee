// Package analyzer performs a single static pass over a parsed program,
// catching undefined names, arity mismatches, and other mistakes a
// reader would want flagged before the program ever runs. Diagnostics
// accumulate via hashicorp/go-multierror instead of stopping at the
// first problem, so `latch check` can report everything in one pass.
package analyzer

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/diag"
)

// builtinArity names every built-in function the analyzer accepts
// without a user declaration, with -1 meaning variadic.
var builtinArity = map[string]int{
	"print": -1, "len": 1, "str": 1, "int": 1, "float": 1, "typeof": 1,
	"push": 2, "pop": 1, "keys": 1, "values": 1, "range": -1,
	"sort": -1, "filter": 2, "map": 2, "each": 2, "sum": 1, "max": -1,
	"min": -1, "assert": -1,
	"split": 2, "trim": 1, "lower": 1, "upper": 1, "starts_with": 2,
	"ends_with": 2, "contains": 2, "replace": 3, "repeat": 2,
}

var moduleNames = map[string]bool{
	"fs": true, "proc": true, "http": true, "time": true, "json": true,
	"env": true, "path": true, "ai": true, "math": true, "hash": true,
	"base64": true, "csv": true, "regex": true, "set": true,
}

type funcSig struct {
	arity    int
	minArity int // count of required (non-default) params
}

// scope tracks declared names for one lexical level during the walk.
type scope struct {
	names  map[string]bool
	consts map[string]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: map[string]bool{}, consts: map[string]bool{}, parent: parent}
}

func (s *scope) declare(name string, isConst bool) {
	s.names[name] = true
	if isConst {
		s.consts[name] = true
	}
}

func (s *scope) resolve(name string) (*scope, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.names[name] {
			return cur, true
		}
	}
	return nil, false
}

// Analyzer walks a Program accumulating diagnostics.
type Analyzer struct {
	File    string
	Source  string
	errs    *multierror.Error
	funcs   map[string]funcSig
	inFunc  int
	inLoop  int
}

// New creates an Analyzer for reporting diagnostics against file/source.
func New(file, source string) *Analyzer {
	return &Analyzer{File: file, Source: source, funcs: map[string]funcSig{}}
}

// Check runs the analysis and returns the accumulated errors, or nil if
// the program is clean. Each returned error is a diag.Diagnostic.
func (a *Analyzer) Check(prog *ast.Program) error {
	top := newScope(nil)
	a.collectFuncDecls(prog.Stmts, top)
	for _, s := range prog.Stmts {
		a.checkStmt(s, top)
	}
	if a.errs == nil {
		return nil
	}
	return a.errs.ErrorOrNil()
}

func (a *Analyzer) collectFuncDecls(stmts []ast.Stmt, sc *scope) {
	for _, s := range stmts {
		if fd, ok := s.(*ast.FuncDeclStmt); ok {
			if _, exists := a.funcs[fd.Name]; exists {
				a.report(fd, "Semantic Error", fmt.Sprintf("function %q is already defined", fd.Name), "")
				continue
			}
			min := 0
			for _, p := range fd.Params {
				if p.Default == nil {
					min++
				}
			}
			a.funcs[fd.Name] = funcSig{arity: len(fd.Params), minArity: min}
			sc.declare(fd.Name, true)
		}
	}
}

func (a *Analyzer) report(n ast.Node, category, reason, hint string) {
	line, col := n.Pos()
	d := diag.Diagnostic{
		Category:   diag.Category(category),
		File:       a.File,
		Line:       line,
		Col:        col,
		SourceLine: diag.SourceLine(a.Source, line),
		Reason:     reason,
		Hint:       hint,
	}
	a.errs = multierror.Append(a.errs, d)
}

func (a *Analyzer) checkBlock(b *ast.BlockStmt, parent *scope) {
	sc := newScope(parent)
	for _, s := range b.Stmts {
		a.checkStmt(s, sc)
	}
}

func (a *Analyzer) checkStmt(s ast.Stmt, sc *scope) {
	switch n := s.(type) {
	case *ast.LetStmt:
		a.checkExpr(n.Value, sc)
		if n.Type != "" && !literalMatchesType(n.Value, n.Type) {
			a.report(n, "Semantic Error",
				fmt.Sprintf("variable %q declared as %s but initialized with a mismatched literal", n.Name, n.Type), "")
		}
		sc.declare(n.Name, false)
	case *ast.ConstStmt:
		a.checkExpr(n.Value, sc)
		sc.declare(n.Name, true)
	case *ast.AssignStmt:
		a.checkAssignTarget(n, n.Name, sc)
		a.checkExpr(n.Value, sc)
	case *ast.CompoundAssignStmt:
		a.checkAssignTarget(n, n.Name, sc)
		a.checkExpr(n.Value, sc)
	case *ast.IndexAssignStmt:
		a.checkExpr(n.Target, sc)
		a.checkExpr(n.Index, sc)
		a.checkExpr(n.Value, sc)
	case *ast.ExprStmt:
		a.checkExpr(n.X, sc)
	case *ast.IfStmt:
		a.checkExpr(n.Cond, sc)
		a.checkBlock(n.Then, sc)
		switch e := n.Else.(type) {
		case *ast.BlockStmt:
			a.checkBlock(e, sc)
		case *ast.IfStmt:
			a.checkStmt(e, sc)
		}
	case *ast.WhileStmt:
		a.checkExpr(n.Cond, sc)
		a.inLoop++
		a.checkBlock(n.Body, sc)
		a.inLoop--
	case *ast.ForStmt:
		a.checkExpr(n.Iter, sc)
		inner := newScope(sc)
		inner.declare(n.Var, false)
		a.inLoop++
		for _, st := range n.Body.Stmts {
			a.checkStmt(st, inner)
		}
		a.inLoop--
	case *ast.ParallelStmt:
		a.checkExpr(n.Iter, sc)
		if n.Workers != nil {
			a.checkExpr(n.Workers, sc)
		}
		inner := newScope(sc)
		inner.declare(n.Var, false)
		for _, st := range n.Body.Stmts {
			a.checkStmt(st, inner)
		}
	case *ast.FuncDeclStmt:
		a.checkFuncBody(n, n.Params, n.Body, sc)
	case *ast.ReturnStmt:
		if a.inFunc == 0 {
			a.report(n, "Semantic Error", "return used outside of a function", "")
		}
		if n.Value != nil {
			a.checkExpr(n.Value, sc)
		}
	case *ast.TryStmt:
		a.checkBlock(n.Body, sc)
		catchScope := newScope(sc)
		catchScope.declare(n.CatchVar, false)
		for _, st := range n.Catch.Stmts {
			a.checkStmt(st, catchScope)
		}
		if n.Finally != nil {
			a.checkBlock(n.Finally, sc)
		}
	case *ast.UseStmt:
		if _, err := os.Stat(n.Path); err != nil {
			a.report(n, "Semantic Error", fmt.Sprintf("use %q: file does not exist", n.Path), "")
		}
	case *ast.YieldStmt:
		a.checkExpr(n.Value, sc)
	case *ast.StopStmt:
		if n.Code != nil {
			a.checkExpr(n.Code, sc)
		}
	case *ast.BreakStmt:
		if a.inLoop == 0 {
			a.report(n, "Semantic Error", "break used outside of a loop", "")
		}
	case *ast.ContinueStmt:
		if a.inLoop == 0 {
			a.report(n, "Semantic Error", "continue used outside of a loop", "")
		}
	}
}

func (a *Analyzer) checkAssignTarget(n ast.Node, name string, sc *scope) {
	owner, ok := sc.resolve(name)
	if !ok {
		a.report(n, "Semantic Error", fmt.Sprintf("assignment to undeclared variable %q", name), "declare it first with `:=`")
		return
	}
	if owner.consts[name] {
		a.report(n, "Semantic Error", fmt.Sprintf("cannot assign to constant %q", name), "")
	}
}

func (a *Analyzer) checkFuncBody(n ast.Node, params []ast.Param, body *ast.BlockStmt, parent *scope) {
	inner := newScope(parent)
	for _, p := range params {
		inner.declare(p.Name, false)
		if p.Default != nil {
			a.checkExpr(p.Default, parent)
		}
	}
	a.inFunc++
	for _, st := range body.Stmts {
		a.checkStmt(st, inner)
	}
	a.inFunc--
}

func (a *Analyzer) checkExpr(e ast.Expr, sc *scope) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Identifier:
		if _, ok := sc.resolve(n.Name); !ok {
			if _, isFunc := a.funcs[n.Name]; !isFunc {
				if _, isBuiltin := builtinArity[n.Name]; !isBuiltin {
					a.report(n, "Semantic Error", fmt.Sprintf("undefined variable %q", n.Name), "")
				}
			}
		}
	case *ast.InterpStringLit:
		for _, part := range n.Parts {
			if part.Expr != nil {
				a.checkExpr(part.Expr, sc)
			}
		}
	case *ast.ListLit:
		for _, el := range n.Elements {
			a.checkExpr(el, sc)
		}
	case *ast.MapLit:
		for _, entry := range n.Entries {
			a.checkExpr(entry.Value, sc)
		}
	case *ast.UnaryExpr:
		a.checkExpr(n.Operand, sc)
	case *ast.BinaryExpr:
		a.checkExpr(n.Left, sc)
		a.checkExpr(n.Right, sc)
	case *ast.RangeExpr:
		a.checkExpr(n.Start, sc)
		a.checkExpr(n.End, sc)
	case *ast.CallExpr:
		if ident, ok := n.Callee.(*ast.Identifier); ok {
			// A call-position identifier names a function, not a variable:
			// resolve it against declared functions and builtins first so
			// `print(x)` isn't flagged as referencing an undefined
			// variable named print. Only fall back to a variable lookup
			// for indirect calls through a function-valued variable.
			if _, isFunc := a.funcs[ident.Name]; !isFunc {
				if _, isBuiltin := builtinArity[ident.Name]; !isBuiltin {
					if _, ok := sc.resolve(ident.Name); !ok {
						a.report(ident, "Semantic Error", fmt.Sprintf("undefined function %q", ident.Name), "")
					}
				}
			}
		} else {
			a.checkExpr(n.Callee, sc)
		}
		for _, arg := range n.Args {
			a.checkExpr(arg, sc)
		}
		a.checkCallArity(n, sc)
	case *ast.ModuleCallExpr:
		if !moduleNames[n.Module] {
			a.report(n, "Semantic Error", fmt.Sprintf("unknown module %q", n.Module), "")
		}
		for _, arg := range n.Args {
			a.checkExpr(arg, sc)
		}
	case *ast.IndexExpr:
		a.checkExpr(n.Target, sc)
		a.checkExpr(n.Index, sc)
	case *ast.SliceExpr:
		a.checkExpr(n.Target, sc)
		if n.Start != nil {
			a.checkExpr(n.Start, sc)
		}
		if n.End != nil {
			a.checkExpr(n.End, sc)
		}
	case *ast.FieldExpr:
		a.checkExpr(n.Target, sc)
	case *ast.SafeFieldExpr:
		a.checkExpr(n.Target, sc)
	case *ast.OrDefaultExpr:
		a.checkExpr(n.Expr, sc)
		a.checkExpr(n.Default, sc)
	case *ast.CoalesceExpr:
		a.checkExpr(n.Expr, sc)
		a.checkExpr(n.Default, sc)
	case *ast.PipeExpr:
		if call, ok := n.Target.(*ast.CallExpr); ok {
			// The piped value is passed as the call's first argument, so the
			// call is checked, arity included, with it prepended.
			piped := *call
			piped.Args = append([]ast.Expr{n.Left}, call.Args...)
			a.checkExpr(&piped, sc)
			break
		}
		a.checkExpr(n.Left, sc)
		a.checkExpr(n.Target, sc)
	case *ast.FuncLit:
		a.checkFuncBody(n, n.Params, n.Body, sc)
	case *ast.ListCompExpr:
		inner := newScope(sc)
		a.checkExpr(n.Iter, sc)
		inner.declare(n.Var, false)
		a.checkExpr(n.Body, inner)
		if n.Cond != nil {
			a.checkExpr(n.Cond, inner)
		}
	case *ast.TernaryExpr:
		a.checkExpr(n.Cond, sc)
		a.checkExpr(n.Then, sc)
		a.checkExpr(n.Else, sc)
	}
}

// checkCallArity validates a plain-identifier call's argument count
// against either a user function declaration or the builtin table. For
// the target of a `|>` pipe, checkExpr passes a copy of the call with
// the piped left-hand value prepended, so it counts as one more argument.
func (a *Analyzer) checkCallArity(n *ast.CallExpr, sc *scope) {
	ident, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return
	}
	if sig, ok := a.funcs[ident.Name]; ok {
		if len(n.Args) < sig.minArity || len(n.Args) > sig.arity {
			a.report(n, "Semantic Error",
				fmt.Sprintf("function %q expects %s, got %d", ident.Name, arityDesc(sig), len(n.Args)), "")
		}
		return
	}
	if arity, ok := builtinArity[ident.Name]; ok && arity >= 0 {
		if len(n.Args) != arity {
			a.report(n, "Semantic Error",
				fmt.Sprintf("builtin %q expects %d argument(s), got %d", ident.Name, arity, len(n.Args)), "")
		}
	}
}

func arityDesc(sig funcSig) string {
	if sig.minArity == sig.arity {
		return fmt.Sprintf("%d argument(s)", sig.arity)
	}
	return fmt.Sprintf("between %d and %d argument(s)", sig.minArity, sig.arity)
}

// literalMatchesType does a shallow, literal-only check: it only flags
// an obvious mismatch when the initializer is itself a literal of a
// different primitive kind, leaving anything computed to runtime.
func literalMatchesType(e ast.Expr, declared string) bool {
	switch e.(type) {
	case *ast.IntLit:
		return declared == "int"
	case *ast.FloatLit:
		return declared == "float"
	case *ast.BoolLit:
		return declared == "bool"
	case *ast.StringLit, *ast.InterpStringLit:
		return declared == "string"
	case *ast.ListLit:
		return declared == "list"
	case *ast.MapLit:
		return declared == "map"
	default:
		return true
	}
}
