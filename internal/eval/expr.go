package eval

import (
	"fmt"
	"strings"

	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/builtin"
	"github.com/latchlang/latch/internal/value"
)

func (in *Interpreter) eval(e ast.Expr, env *value.Environment) (value.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.Int(n.Value), nil
	case *ast.FloatLit:
		return value.Float(n.Value), nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil
	case *ast.StringLit:
		return value.Str(n.Value), nil
	case *ast.NullLit:
		return value.Null(), nil
	case *ast.InterpStringLit:
		return in.evalInterp(n, env)
	case *ast.Identifier:
		v, ok := env.Get(n.Name)
		if ok {
			return v, nil
		}
		return value.Null(), fmt.Errorf("undefined variable %q", n.Name)
	case *ast.ListLit:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := in.eval(el, env)
			if err != nil {
				return value.Null(), err
			}
			elems[i] = v
		}
		return value.NewList(elems...), nil
	case *ast.MapLit:
		m := value.NewMapCell()
		for _, entry := range n.Entries {
			v, err := in.eval(entry.Value, env)
			if err != nil {
				return value.Null(), err
			}
			m.Set(entry.Key, v)
		}
		return value.Map(m), nil
	case *ast.UnaryExpr:
		return in.evalUnary(n, env)
	case *ast.BinaryExpr:
		return in.evalBinary(n, env)
	case *ast.RangeExpr:
		return in.evalRange(n, env)
	case *ast.CallExpr:
		return in.evalCall(n, env)
	case *ast.ModuleCallExpr:
		return in.evalModuleCall(n, env)
	case *ast.IndexExpr:
		return in.evalIndex(n, env)
	case *ast.SliceExpr:
		return in.evalSlice(n, env)
	case *ast.FieldExpr:
		return in.evalField(n, env, false)
	case *ast.SafeFieldExpr:
		return in.evalSafeField(n, env)
	case *ast.OrDefaultExpr:
		v, err := in.eval(n.Expr, env)
		if err != nil {
			return in.eval(n.Default, env)
		}
		return v, nil
	case *ast.CoalesceExpr:
		v, err := in.eval(n.Expr, env)
		if err != nil {
			return value.Null(), err
		}
		if v.IsNull() {
			return in.eval(n.Default, env)
		}
		return v, nil
	case *ast.PipeExpr:
		return in.evalPipe(n, env)
	case *ast.FuncLit:
		fn := &value.Function{Params: convertParams(n.Params), Body: n.Body, Closure: env.Clone(), ReturnType: n.ReturnType}
		return value.Fn(fn), nil
	case *ast.ListCompExpr:
		return in.evalListComp(n, env)
	case *ast.TernaryExpr:
		cond, err := in.eval(n.Cond, env)
		if err != nil {
			return value.Null(), err
		}
		if cond.IsTruthy() {
			return in.eval(n.Then, env)
		}
		return in.eval(n.Else, env)
	default:
		return value.Null(), fmt.Errorf("unhandled expression %T", e)
	}
}

func (in *Interpreter) evalInterp(n *ast.InterpStringLit, env *value.Environment) (value.Value, error) {
	var b strings.Builder
	for _, part := range n.Parts {
		if part.Expr == nil {
			b.WriteString(part.Literal)
			continue
		}
		v, err := in.eval(part.Expr, env)
		if err != nil {
			return value.Null(), err
		}
		b.WriteString(v.String())
	}
	return value.Str(b.String()), nil
}

func (in *Interpreter) evalUnary(n *ast.UnaryExpr, env *value.Environment) (value.Value, error) {
	v, err := in.eval(n.Operand, env)
	if err != nil {
		return value.Null(), err
	}
	switch n.Op {
	case "-":
		if v.Kind == value.KindInt {
			return value.Int(-v.Int), nil
		}
		if v.Kind == value.KindFloat {
			return value.Float(-v.Float), nil
		}
		return value.Null(), fmt.Errorf("unary - does not apply to %s", v.TypeName())
	case "!":
		return value.Bool(!v.IsTruthy()), nil
	default:
		return value.Null(), fmt.Errorf("unknown unary operator %s", n.Op)
	}
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpr, env *value.Environment) (value.Value, error) {
	// && and || short-circuit and are handled before evaluating the RHS.
	if n.Op == "&&" {
		l, err := in.eval(n.Left, env)
		if err != nil {
			return value.Null(), err
		}
		if !l.IsTruthy() {
			return value.Bool(false), nil
		}
		r, err := in.eval(n.Right, env)
		if err != nil {
			return value.Null(), err
		}
		return value.Bool(r.IsTruthy()), nil
	}
	if n.Op == "||" {
		l, err := in.eval(n.Left, env)
		if err != nil {
			return value.Null(), err
		}
		if l.IsTruthy() {
			return value.Bool(true), nil
		}
		r, err := in.eval(n.Right, env)
		if err != nil {
			return value.Null(), err
		}
		return value.Bool(r.IsTruthy()), nil
	}

	l, err := in.eval(n.Left, env)
	if err != nil {
		return value.Null(), err
	}
	r, err := in.eval(n.Right, env)
	if err != nil {
		return value.Null(), err
	}
	return applyBinary(n.Op, l, r)
}

func (in *Interpreter) evalRange(n *ast.RangeExpr, env *value.Environment) (value.Value, error) {
	s, err := in.eval(n.Start, env)
	if err != nil {
		return value.Null(), err
	}
	e, err := in.eval(n.End, env)
	if err != nil {
		return value.Null(), err
	}
	if s.Kind != value.KindInt || e.Kind != value.KindInt {
		return value.Null(), fmt.Errorf("range bounds must be int")
	}
	if e.Int < s.Int {
		return value.NewList(), nil
	}
	elems := make([]value.Value, 0, e.Int-s.Int)
	for i := s.Int; i < e.Int; i++ {
		elems = append(elems, value.Int(i))
	}
	return value.NewList(elems...), nil
}

func (in *Interpreter) evalCall(n *ast.CallExpr, env *value.Environment) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(a, env)
		if err != nil {
			return value.Null(), err
		}
		args[i] = v
	}

	if ident, ok := n.Callee.(*ast.Identifier); ok {
		if fn, ok := env.Get(ident.Name); ok && fn.Kind == value.KindFunction {
			return in.CallFunction(fn.Fn, args)
		}
		if bf, ok := builtin.Table[ident.Name]; ok {
			return bf(in, in.Writer, args)
		}
		return value.Null(), fmt.Errorf("undefined function %q", ident.Name)
	}

	callee, err := in.eval(n.Callee, env)
	if err != nil {
		return value.Null(), err
	}
	if callee.Kind != value.KindFunction {
		return value.Null(), fmt.Errorf("%s is not callable", callee.TypeName())
	}
	return in.CallFunction(callee.Fn, args)
}

func (in *Interpreter) evalModuleCall(n *ast.ModuleCallExpr, env *value.Environment) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(a, env)
		if err != nil {
			return value.Null(), err
		}
		args[i] = v
	}
	return in.Bridge.Call(n.Module, n.Method, args)
}

// CallFunction invokes fn with args against a fresh child of its
// captured closure environment, implementing builtin.Caller so the
// built-in higher-order functions (filter/map/sort/each) can call back
// into user-defined Latch functions.
func (in *Interpreter) CallFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	call := value.NewEnvironment(fn.Closure)
	for i, p := range fn.Params {
		if i < len(args) {
			call.Bind(p.Name, args[i])
			continue
		}
		if p.Default != nil {
			defExpr, ok := p.Default.(ast.Expr)
			if !ok {
				return value.Null(), fmt.Errorf("invalid default for parameter %q", p.Name)
			}
			v, err := in.eval(defExpr, call)
			if err != nil {
				return value.Null(), err
			}
			call.Bind(p.Name, v)
			continue
		}
		return value.Null(), fmt.Errorf("missing argument for parameter %q", p.Name)
	}

	body, ok := fn.Body.(*ast.BlockStmt)
	if !ok {
		return value.Null(), fmt.Errorf("function %q has no body", fn.Name)
	}
	err := in.execBlockInEnv(body, call)
	if err == nil {
		return value.Null(), nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.Value, nil
	}
	return value.Null(), err
}

func (in *Interpreter) evalIndex(n *ast.IndexExpr, env *value.Environment) (value.Value, error) {
	target, err := in.eval(n.Target, env)
	if err != nil {
		return value.Null(), err
	}
	idx, err := in.eval(n.Index, env)
	if err != nil {
		return value.Null(), err
	}
	switch target.Kind {
	case value.KindList:
		i := int(idx.Int)
		if i < 0 {
			i += len(target.List.Elems)
		}
		if i < 0 || i >= len(target.List.Elems) {
			return value.Null(), fmt.Errorf("list index %d out of range", idx.Int)
		}
		return target.List.Elems[i], nil
	case value.KindMap:
		v, ok := target.Map.Get(idx.String())
		if !ok {
			return value.Null(), nil
		}
		return v, nil
	case value.KindString:
		i := int(idx.Int)
		if i < 0 {
			i += len(target.Str)
		}
		if i < 0 || i >= len(target.Str) {
			return value.Null(), fmt.Errorf("string index %d out of range", idx.Int)
		}
		return value.Str(string(target.Str[i])), nil
	default:
		return value.Null(), fmt.Errorf("cannot index %s", target.TypeName())
	}
}

func (in *Interpreter) evalSlice(n *ast.SliceExpr, env *value.Environment) (value.Value, error) {
	target, err := in.eval(n.Target, env)
	if err != nil {
		return value.Null(), err
	}
	length := 0
	switch target.Kind {
	case value.KindList:
		length = len(target.List.Elems)
	case value.KindString:
		length = len(target.Str)
	default:
		return value.Null(), fmt.Errorf("cannot slice %s", target.TypeName())
	}
	start, end := 0, length
	if n.Start != nil {
		v, err := in.eval(n.Start, env)
		if err != nil {
			return value.Null(), err
		}
		start = clampIndex(int(v.Int), length)
	}
	if n.End != nil {
		v, err := in.eval(n.End, env)
		if err != nil {
			return value.Null(), err
		}
		end = clampIndex(int(v.Int), length)
	}
	if end < start {
		end = start
	}
	if target.Kind == value.KindList {
		return value.NewList(append([]value.Value{}, target.List.Elems[start:end]...)...), nil
	}
	return value.Str(target.Str[start:end]), nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func (in *Interpreter) evalField(n *ast.FieldExpr, env *value.Environment, safe bool) (value.Value, error) {
	target, err := in.eval(n.Target, env)
	if err != nil {
		return value.Null(), err
	}
	return fieldAccess(target, n.Field, safe)
}

func (in *Interpreter) evalSafeField(n *ast.SafeFieldExpr, env *value.Environment) (value.Value, error) {
	target, err := in.eval(n.Target, env)
	if err != nil {
		return value.Null(), err
	}
	if target.IsNull() {
		return value.Null(), nil
	}
	return fieldAccess(target, n.Field, true)
}

func fieldAccess(target value.Value, field string, safe bool) (value.Value, error) {
	switch target.Kind {
	case value.KindMap:
		v, ok := target.Map.Get(field)
		if !ok {
			if safe {
				return value.Null(), nil
			}
			return value.Null(), fmt.Errorf("map has no field %q", field)
		}
		return v, nil
	case value.KindProcessResult:
		switch field {
		case "code":
			return value.Int(target.Proc.Code), nil
		case "stdout":
			return value.Str(target.Proc.Stdout), nil
		case "stderr":
			return value.Str(target.Proc.Stderr), nil
		}
	case value.KindHTTPResponse:
		switch field {
		case "status":
			return value.Int(target.HTTP.Status), nil
		case "headers":
			return value.Map(target.HTTP.Headers), nil
		case "body":
			return value.Str(target.HTTP.Body), nil
		}
	}
	if safe {
		return value.Null(), nil
	}
	return value.Null(), fmt.Errorf("%s has no field %q", target.TypeName(), field)
}

func (in *Interpreter) evalPipe(n *ast.PipeExpr, env *value.Environment) (value.Value, error) {
	lhs, err := in.eval(n.Left, env)
	if err != nil {
		return value.Null(), err
	}
	switch target := n.Target.(type) {
	case *ast.CallExpr:
		args := []value.Value{lhs}
		for _, a := range target.Args {
			v, err := in.eval(a, env)
			if err != nil {
				return value.Null(), err
			}
			args = append(args, v)
		}
		if ident, ok := target.Callee.(*ast.Identifier); ok {
			if fn, ok := env.Get(ident.Name); ok && fn.Kind == value.KindFunction {
				return in.CallFunction(fn.Fn, args)
			}
			if bf, ok := builtin.Table[ident.Name]; ok {
				return bf(in, in.Writer, args)
			}
			return value.Null(), fmt.Errorf("undefined function %q", ident.Name)
		}
		callee, err := in.eval(target.Callee, env)
		if err != nil {
			return value.Null(), err
		}
		if callee.Kind != value.KindFunction {
			return value.Null(), fmt.Errorf("%s is not callable", callee.TypeName())
		}
		return in.CallFunction(callee.Fn, args)
	case *ast.ModuleCallExpr:
		args := []value.Value{lhs}
		for _, a := range target.Args {
			v, err := in.eval(a, env)
			if err != nil {
				return value.Null(), err
			}
			args = append(args, v)
		}
		return in.Bridge.Call(target.Module, target.Method, args)
	default:
		fnVal, err := in.eval(target, env)
		if err != nil {
			return value.Null(), err
		}
		if fnVal.Kind != value.KindFunction {
			return value.Null(), fmt.Errorf("pipe target is not callable")
		}
		return in.CallFunction(fnVal.Fn, []value.Value{lhs})
	}
}

func (in *Interpreter) evalListComp(n *ast.ListCompExpr, env *value.Environment) (value.Value, error) {
	iterVal, err := in.eval(n.Iter, env)
	if err != nil {
		return value.Null(), err
	}
	items, err := iterableElems(iterVal)
	if err != nil {
		return value.Null(), err
	}
	var out []value.Value
	for _, item := range items {
		child := value.NewEnvironment(env)
		child.Bind(n.Var, item)
		if n.Cond != nil {
			keep, err := in.eval(n.Cond, child)
			if err != nil {
				return value.Null(), err
			}
			if !keep.IsTruthy() {
				continue
			}
		}
		v, err := in.eval(n.Body, child)
		if err != nil {
			return value.Null(), err
		}
		out = append(out, v)
	}
	return value.NewList(out...), nil
}

func iterableElems(v value.Value) ([]value.Value, error) {
	switch v.Kind {
	case value.KindList:
		return v.List.Elems, nil
	case value.KindString:
		elems := make([]value.Value, len(v.Str))
		for i, ch := range []byte(v.Str) {
			elems[i] = value.Str(string(ch))
		}
		return elems, nil
	default:
		return nil, fmt.Errorf("%s is not iterable", v.TypeName())
	}
}
