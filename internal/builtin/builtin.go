// Package builtin implements the Latch built-in function table: the
// handful of names (print, len, push, sort, filter, ...) available in
// every scope without an explicit `use`, grounded on the teacher's
// std.Builtin registration table but adapted to samber/lo's functional
// slice helpers wherever the operation is a plain transform.
package builtin

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/latchlang/latch/internal/value"
)

// Caller lets a builtin invoke back into a Latch function value, needed
// by filter/map/each/sort. Implemented by the evaluator's Interpreter.
type Caller interface {
	CallFunction(fn *value.Function, args []value.Value) (value.Value, error)
}

// Func is one built-in's implementation.
type Func func(c Caller, w io.Writer, args []value.Value) (value.Value, error)

// Table maps builtin names to their implementation.
var Table = map[string]Func{
	"print":  builtinPrint,
	"len":    builtinLen,
	"str":    builtinStr,
	"int":    builtinInt,
	"float":  builtinFloat,
	"typeof": builtinTypeof,
	"push":   builtinPush,
	"pop":    builtinPop,
	"keys":   builtinKeys,
	"values": builtinValues,
	"range":  builtinRange,
	"sort":   builtinSort,
	"filter": builtinFilter,
	"map":    builtinMap,
	"each":   builtinEach,
	"sum":    builtinSum,
	"max":    builtinMax,
	"min":    builtinMin,
	"assert": builtinAssert,

	"split":       builtinSplit,
	"trim":        builtinTrim,
	"lower":       builtinLower,
	"upper":       builtinUpper,
	"starts_with": builtinStartsWith,
	"ends_with":   builtinEndsWith,
	"contains":    builtinContains,
	"replace":     builtinReplace,
	"repeat":      builtinRepeat,
}

func arityErr(name string, want, got int) error {
	return fmt.Errorf("%s() expects %d argument(s), got %d", name, want, got)
}

func builtinPrint(_ Caller, w io.Writer, args []value.Value) (value.Value, error) {
	parts := lo.Map(args, func(v value.Value, _ int) string { return v.String() })
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += " "
		}
		line += p
	}
	fmt.Fprintln(w, line)
	return value.Null(), nil
}

func builtinLen(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityErr("len", 1, len(args))
	}
	switch args[0].Kind {
	case value.KindString:
		return value.Int(int64(len(args[0].Str))), nil
	case value.KindList:
		return value.Int(int64(len(args[0].List.Elems))), nil
	case value.KindMap:
		return value.Int(int64(args[0].Map.Len())), nil
	default:
		return value.Null(), fmt.Errorf("len() does not accept %s", args[0].TypeName())
	}
}

func builtinStr(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityErr("str", 1, len(args))
	}
	return value.Str(args[0].String()), nil
}

func builtinInt(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityErr("int", 1, len(args))
	}
	v := args[0]
	switch v.Kind {
	case value.KindInt:
		return v, nil
	case value.KindFloat:
		return value.Int(int64(v.Float)), nil
	case value.KindBool:
		if v.Bool {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case value.KindString:
		var n int64
		if _, err := fmt.Sscanf(v.Str, "%d", &n); err != nil {
			return value.Null(), fmt.Errorf("cannot convert %q to int", v.Str)
		}
		return value.Int(n), nil
	default:
		return value.Null(), fmt.Errorf("int() does not accept %s", v.TypeName())
	}
}

func builtinFloat(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityErr("float", 1, len(args))
	}
	v := args[0]
	switch v.Kind {
	case value.KindFloat:
		return v, nil
	case value.KindInt:
		return value.Float(float64(v.Int)), nil
	case value.KindString:
		var f float64
		if _, err := fmt.Sscanf(v.Str, "%g", &f); err != nil {
			return value.Null(), fmt.Errorf("cannot convert %q to float", v.Str)
		}
		return value.Float(f), nil
	default:
		return value.Null(), fmt.Errorf("float() does not accept %s", v.TypeName())
	}
}

func builtinTypeof(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityErr("typeof", 1, len(args))
	}
	return value.Str(args[0].TypeName()), nil
}

func builtinPush(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindList {
		return value.Null(), fmt.Errorf("push() expects (list, value)")
	}
	args[0].List.Elems = append(args[0].List.Elems, args[1])
	return args[0], nil
}

func builtinPop(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.KindList {
		return value.Null(), fmt.Errorf("pop() expects a list")
	}
	elems := args[0].List.Elems
	if len(elems) == 0 {
		return value.Null(), fmt.Errorf("pop() on empty list")
	}
	last := elems[len(elems)-1]
	args[0].List.Elems = elems[:len(elems)-1]
	return last, nil
}

func builtinKeys(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.KindMap {
		return value.Null(), fmt.Errorf("keys() expects a map")
	}
	ks := args[0].Map.SortedKeys()
	elems := lo.Map(ks, func(k string, _ int) value.Value { return value.Str(k) })
	return value.NewList(elems...), nil
}

func builtinValues(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.KindMap {
		return value.Null(), fmt.Errorf("values() expects a map")
	}
	ks := args[0].Map.SortedKeys()
	elems := lo.Map(ks, func(k string, _ int) value.Value {
		v, _ := args[0].Map.Get(k)
		return v
	})
	return value.NewList(elems...), nil
}

func builtinRange(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	var start, end int64
	switch len(args) {
	case 1:
		end = args[0].Int
	case 2:
		start, end = args[0].Int, args[1].Int
	default:
		return value.Null(), fmt.Errorf("range() expects 1 or 2 arguments, got %d", len(args))
	}
	if end < start {
		return value.NewList(), nil
	}
	elems := make([]value.Value, 0, end-start)
	for i := start; i < end; i++ {
		elems = append(elems, value.Int(i))
	}
	return value.NewList(elems...), nil
}

func builtinSum(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.KindList {
		return value.Null(), fmt.Errorf("sum() expects a list")
	}
	var isFloat bool
	var fsum float64
	var isum int64
	for _, e := range args[0].List.Elems {
		if e.Kind == value.KindFloat {
			isFloat = true
		}
	}
	for _, e := range args[0].List.Elems {
		if isFloat {
			if e.Kind == value.KindInt {
				fsum += float64(e.Int)
			} else {
				fsum += e.Float
			}
		} else {
			isum += e.Int
		}
	}
	if isFloat {
		return value.Float(fsum), nil
	}
	return value.Int(isum), nil
}

func builtinMax(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("max() requires at least one argument")
	}
	vals := args
	if len(args) == 1 && args[0].Kind == value.KindList {
		vals = args[0].List.Elems
	}
	if len(vals) == 0 {
		return value.Null(), fmt.Errorf("max() on empty list")
	}
	best := vals[0]
	for _, v := range vals[1:] {
		if numericOf(v) > numericOf(best) {
			best = v
		}
	}
	return best, nil
}

func builtinMin(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("min() requires at least one argument")
	}
	vals := args
	if len(args) == 1 && args[0].Kind == value.KindList {
		vals = args[0].List.Elems
	}
	if len(vals) == 0 {
		return value.Null(), fmt.Errorf("min() on empty list")
	}
	best := vals[0]
	for _, v := range vals[1:] {
		if numericOf(v) < numericOf(best) {
			best = v
		}
	}
	return best, nil
}

func numericOf(v value.Value) float64 {
	if v.Kind == value.KindInt {
		return float64(v.Int)
	}
	return v.Float
}

func builtinAssert(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("assert() requires at least one argument")
	}
	if !args[0].IsTruthy() {
		msg := "assertion failed"
		if len(args) > 1 {
			msg = args[1].String()
		}
		return value.Null(), fmt.Errorf("%s", msg)
	}
	return value.Null(), nil
}

// builtinSort returns a new list sorted by natural ordering, or by the
// result of calling the optional key function on each element.
func builtinSort(c Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) < 1 || args[0].Kind != value.KindList {
		return value.Null(), fmt.Errorf("sort() expects a list")
	}
	elems := append([]value.Value{}, args[0].List.Elems...)
	var keyFn *value.Function
	if len(args) == 2 && args[1].Kind == value.KindFunction {
		keyFn = args[1].Fn
	}
	var sortErr error
	sort.SliceStable(elems, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		a, b := elems[i], elems[j]
		if keyFn != nil {
			ka, err := c.CallFunction(keyFn, []value.Value{a})
			if err != nil {
				sortErr = err
				return false
			}
			kb, err := c.CallFunction(keyFn, []value.Value{b})
			if err != nil {
				sortErr = err
				return false
			}
			a, b = ka, kb
		}
		return lessValue(a, b)
	})
	if sortErr != nil {
		return value.Null(), sortErr
	}
	return value.NewList(elems...), nil
}

func lessValue(a, b value.Value) bool {
	if a.Kind == value.KindString && b.Kind == value.KindString {
		return a.Str < b.Str
	}
	return numericOf(a) < numericOf(b)
}

func builtinFilter(c Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindList || args[1].Kind != value.KindFunction {
		return value.Null(), fmt.Errorf("filter() expects (list, function)")
	}
	var out []value.Value
	for _, e := range args[0].List.Elems {
		keep, err := c.CallFunction(args[1].Fn, []value.Value{e})
		if err != nil {
			return value.Null(), err
		}
		if keep.IsTruthy() {
			out = append(out, e)
		}
	}
	return value.NewList(out...), nil
}

func builtinMap(c Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindList || args[1].Kind != value.KindFunction {
		return value.Null(), fmt.Errorf("map() expects (list, function)")
	}
	out := make([]value.Value, len(args[0].List.Elems))
	for i, e := range args[0].List.Elems {
		r, err := c.CallFunction(args[1].Fn, []value.Value{e})
		if err != nil {
			return value.Null(), err
		}
		out[i] = r
	}
	return value.NewList(out...), nil
}

func builtinEach(c Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindList || args[1].Kind != value.KindFunction {
		return value.Null(), fmt.Errorf("each() expects (list, function)")
	}
	for _, e := range args[0].List.Elems {
		if _, err := c.CallFunction(args[1].Fn, []value.Value{e}); err != nil {
			return value.Null(), err
		}
	}
	return value.Null(), nil
}

func builtinSplit(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindString || args[1].Kind != value.KindString {
		return value.Null(), fmt.Errorf("split() expects (string, string)")
	}
	parts := strings.Split(args[0].Str, args[1].Str)
	elems := lo.Map(parts, func(s string, _ int) value.Value { return value.Str(s) })
	return value.NewList(elems...), nil
}

func builtinTrim(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.KindString {
		return value.Null(), fmt.Errorf("trim() expects a string")
	}
	return value.Str(strings.TrimSpace(args[0].Str)), nil
}

func builtinLower(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.KindString {
		return value.Null(), fmt.Errorf("lower() expects a string")
	}
	return value.Str(strings.ToLower(args[0].Str)), nil
}

func builtinUpper(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.KindString {
		return value.Null(), fmt.Errorf("upper() expects a string")
	}
	return value.Str(strings.ToUpper(args[0].Str)), nil
}

func builtinStartsWith(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindString || args[1].Kind != value.KindString {
		return value.Null(), fmt.Errorf("starts_with() expects (string, string)")
	}
	return value.Bool(strings.HasPrefix(args[0].Str, args[1].Str)), nil
}

func builtinEndsWith(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindString || args[1].Kind != value.KindString {
		return value.Null(), fmt.Errorf("ends_with() expects (string, string)")
	}
	return value.Bool(strings.HasSuffix(args[0].Str, args[1].Str)), nil
}

func builtinContains(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindString || args[1].Kind != value.KindString {
		return value.Null(), fmt.Errorf("contains() expects (string, string)")
	}
	return value.Bool(strings.Contains(args[0].Str, args[1].Str)), nil
}

func builtinReplace(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 3 || args[0].Kind != value.KindString || args[1].Kind != value.KindString || args[2].Kind != value.KindString {
		return value.Null(), fmt.Errorf("replace() expects (string, string, string)")
	}
	return value.Str(strings.ReplaceAll(args[0].Str, args[1].Str, args[2].Str)), nil
}

// builtinRepeat mirrors the `*` operator's list/string repetition rule:
// a negative count is an error, not an empty result.
func builtinRepeat(_ Caller, _ io.Writer, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.KindString || args[1].Kind != value.KindInt {
		return value.Null(), fmt.Errorf("repeat() expects (string, int)")
	}
	if args[1].Int < 0 {
		return value.Null(), fmt.Errorf("repeat() count must be non-negative, got %d", args[1].Int)
	}
	return value.Str(strings.Repeat(args[0].Str, int(args[1].Int))), nil
}
