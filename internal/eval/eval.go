// Package eval implements the tree-walking evaluator: it executes the
// checked AST produced by parser+analyzer against a chain of
// value.Environment frames, dispatching module calls through
// internal/host and built-in calls through internal/builtin.
package eval

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/builtin"
	"github.com/latchlang/latch/internal/host"
	"github.com/latchlang/latch/internal/parser"
	"github.com/latchlang/latch/internal/value"
)

// SyncWriter serializes concurrent writes from parallel-for worker
// bodies that call print(); a bare os.Stdout or bytes.Buffer is not
// safe under concurrent use.
type SyncWriter struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.W.Write(p)
}

// Interpreter walks a Program, evaluating it against Global.
type Interpreter struct {
	Global *value.Environment
	Bridge *host.Bridge
	Writer io.Writer
	Workers int // default parallel-for worker count; 0 means GOMAXPROCS
}

// New builds an Interpreter with a fresh global scope, the standard
// host module bridge, and stdout as its print target.
func New() *Interpreter {
	return &Interpreter{
		Global: value.NewEnvironment(nil),
		Bridge: host.NewBridge(),
		Writer: &SyncWriter{W: os.Stdout},
	}
}

// Run executes every top-level statement in order. The return value is
// only meaningful for a REPL-style bare final expression statement.
func (in *Interpreter) Run(prog *ast.Program) (value.Value, error) {
	var last value.Value
	for _, s := range prog.Stmts {
		v, err := in.execStmt(s, in.Global)
		if err != nil {
			if sig, ok := asSignal(err); ok {
				if stop, ok := sig.(stopSignal); ok {
					return value.Null(), stop
				}
				return value.Null(), fmt.Errorf("unexpected %T at top level", sig)
			}
			return value.Null(), err
		}
		last = v
	}
	return last, nil
}

// execStmt evaluates one statement, returning the value of the last
// bare expression-statement so the REPL can print it.
func (in *Interpreter) execStmt(s ast.Stmt, env *value.Environment) (value.Value, error) {
	switch n := s.(type) {
	case *ast.LetStmt:
		v, err := in.eval(n.Value, env)
		if err != nil {
			return value.Null(), err
		}
		env.Bind(n.Name, v)
		return value.Null(), nil
	case *ast.ConstStmt:
		v, err := in.eval(n.Value, env)
		if err != nil {
			return value.Null(), err
		}
		env.BindConst(n.Name, v)
		return value.Null(), nil
	case *ast.AssignStmt:
		v, err := in.eval(n.Value, env)
		if err != nil {
			return value.Null(), err
		}
		if !env.Assign(n.Name, v) {
			return value.Null(), fmt.Errorf("assignment to undeclared variable %q", n.Name)
		}
		return value.Null(), nil
	case *ast.CompoundAssignStmt:
		cur, ok := env.Get(n.Name)
		if !ok {
			return value.Null(), fmt.Errorf("assignment to undeclared variable %q", n.Name)
		}
		rhs, err := in.eval(n.Value, env)
		if err != nil {
			return value.Null(), err
		}
		op := compoundBaseOp(n.Op)
		result, err := applyBinary(op, cur, rhs)
		if err != nil {
			return value.Null(), err
		}
		env.Assign(n.Name, result)
		return value.Null(), nil
	case *ast.IndexAssignStmt:
		return value.Null(), in.execIndexAssign(n, env)
	case *ast.ExprStmt:
		return in.eval(n.X, env)
	case *ast.IfStmt:
		return value.Null(), in.execIf(n, env)
	case *ast.WhileStmt:
		return value.Null(), in.execWhile(n, env)
	case *ast.ForStmt:
		return value.Null(), in.execFor(n, env)
	case *ast.ParallelStmt:
		return value.Null(), in.execParallel(n, env)
	case *ast.FuncDeclStmt:
		fn := &value.Function{Name: n.Name, Params: convertParams(n.Params), Body: n.Body, ReturnType: n.ReturnType}
		env.Bind(n.Name, value.Fn(fn))
		// Clone after binding so the closure's own name resolves inside
		// its body, enabling direct recursion.
		fn.Closure = env.Clone()
		return value.Null(), nil
	case *ast.ReturnStmt:
		var v value.Value
		if n.Value != nil {
			var err error
			v, err = in.eval(n.Value, env)
			if err != nil {
				return value.Null(), err
			}
		}
		return value.Null(), returnSignal{Value: v}
	case *ast.TryStmt:
		return value.Null(), in.execTry(n, env)
	case *ast.UseStmt:
		return value.Null(), in.execUse(n, env)
	case *ast.YieldStmt:
		v, err := in.eval(n.Value, env)
		if err != nil {
			return value.Null(), err
		}
		return value.Null(), yieldSignal{Value: v}
	case *ast.StopStmt:
		code := int64(0)
		if n.Code != nil {
			v, err := in.eval(n.Code, env)
			if err != nil {
				return value.Null(), err
			}
			code = v.Int
		}
		return value.Null(), stopSignal{Code: code}
	case *ast.BreakStmt:
		return value.Null(), breakSignal{}
	case *ast.ContinueStmt:
		return value.Null(), continueSignal{}
	default:
		return value.Null(), fmt.Errorf("unhandled statement %T", s)
	}
}

func (in *Interpreter) execBlock(b *ast.BlockStmt, env *value.Environment) error {
	child := value.NewEnvironment(env)
	for _, s := range b.Stmts {
		if _, err := in.execStmt(s, child); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execIf(n *ast.IfStmt, env *value.Environment) error {
	cond, err := in.eval(n.Cond, env)
	if err != nil {
		return err
	}
	if cond.IsTruthy() {
		return in.execBlock(n.Then, env)
	}
	switch e := n.Else.(type) {
	case *ast.BlockStmt:
		return in.execBlock(e, env)
	case *ast.IfStmt:
		return in.execIf(e, env)
	}
	return nil
}

func (in *Interpreter) execWhile(n *ast.WhileStmt, env *value.Environment) error {
	for {
		cond, err := in.eval(n.Cond, env)
		if err != nil {
			return err
		}
		if !cond.IsTruthy() {
			return nil
		}
		err = in.execBlock(n.Body, env)
		if err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
}

func (in *Interpreter) execFor(n *ast.ForStmt, env *value.Environment) error {
	iterVal, err := in.eval(n.Iter, env)
	if err != nil {
		return err
	}
	items, err := iterableElems(iterVal)
	if err != nil {
		return err
	}
	for _, item := range items {
		child := value.NewEnvironment(env)
		child.Bind(n.Var, item)
		err := in.execBlockInEnv(n.Body, child)
		if err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// execBlockInEnv runs a block's statements directly in env instead of a
// fresh child (the caller has already created the per-iteration frame).
func (in *Interpreter) execBlockInEnv(b *ast.BlockStmt, env *value.Environment) error {
	for _, s := range b.Stmts {
		if _, err := in.execStmt(s, env); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execTry(n *ast.TryStmt, env *value.Environment) error {
	runFinally := func() error {
		if n.Finally != nil {
			return in.execBlock(n.Finally, env)
		}
		return nil
	}

	err := in.execBlock(n.Body, env)
	if err != nil {
		if _, ok := asSignal(err); ok {
			_ = runFinally()
			return err
		}
		child := value.NewEnvironment(env)
		child.Bind(n.CatchVar, value.Str(err.Error()))
		catchErr := in.execBlockInEnv(n.Catch, child)
		if ferr := runFinally(); ferr != nil {
			return ferr
		}
		return catchErr
	}
	return runFinally()
}

// execUse implements `use "path"`: textual inclusion, not a namespaced
// import. The file is read through the fs host module (so a sandboxed
// host could intercept it the same way it intercepts fs.read calls),
// lexed and parsed into its own program, and its statements run
// directly against env — the caller's own scope, not a child — so
// declarations in the used file land in the caller's scope exactly as
// if its text had been pasted in place of the `use` statement.
func (in *Interpreter) execUse(n *ast.UseStmt, env *value.Environment) error {
	src, err := in.Bridge.Call("fs", "read", []value.Value{value.Str(n.Path)})
	if err != nil {
		return fmt.Errorf("use %q: %w", n.Path, err)
	}

	p := parser.New(src.Str)
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		return fmt.Errorf("use %q: %s", n.Path, p.Errors[0])
	}

	for _, stmt := range prog.Stmts {
		if _, err := in.execStmt(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execIndexAssign(n *ast.IndexAssignStmt, env *value.Environment) error {
	target, err := in.eval(n.Target, env)
	if err != nil {
		return err
	}
	idx, err := in.eval(n.Index, env)
	if err != nil {
		return err
	}
	val, err := in.eval(n.Value, env)
	if err != nil {
		return err
	}
	switch target.Kind {
	case value.KindList:
		i := int(idx.Int)
		if i < 0 {
			i += len(target.List.Elems)
		}
		if i < 0 || i >= len(target.List.Elems) {
			return fmt.Errorf("list index %d out of range", idx.Int)
		}
		target.List.Elems[i] = val
		return nil
	case value.KindMap:
		target.Map.Set(idx.String(), val)
		return nil
	default:
		return fmt.Errorf("cannot index-assign into %s", target.TypeName())
	}
}

func convertParams(params []ast.Param) []value.Param {
	out := make([]value.Param, len(params))
	for i, p := range params {
		out[i] = value.Param{Name: p.Name, Type: p.Type, Default: p.Default}
	}
	return out
}

var _ builtin.Caller = (*Interpreter)(nil)
