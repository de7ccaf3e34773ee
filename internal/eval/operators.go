package eval

import (
	"fmt"
	"strings"

	"github.com/latchlang/latch/internal/token"
	"github.com/latchlang/latch/internal/value"
)

// compoundBaseOp maps a compound-assignment token to the binary
// operator it desugars to: `x += 1` behaves like `x = x + 1`.
func compoundBaseOp(op token.Type) token.Type {
	switch op {
	case token.PLUS_EQ:
		return token.PLUS
	case token.MINUS_EQ:
		return token.MINUS
	case token.STAR_EQ:
		return token.STAR
	case token.SLASH_EQ:
		return token.SLASH
	case token.PCT_EQ:
		return token.PERCENT
	default:
		return op
	}
}

// applyBinary implements every documented binary operator: numeric
// promotion between int/float, string concatenation and repetition,
// list concatenation and int-repeat, structural equality, ordering, and
// membership.
func applyBinary(op token.Type, l, r value.Value) (value.Value, error) {
	switch op {
	case token.EQ:
		return value.Bool(value.Equal(l, r)), nil
	case token.NOT_EQ:
		return value.Bool(!value.Equal(l, r)), nil
	case token.IN:
		return evalIn(l, r)
	}

	switch op {
	case token.PLUS:
		return evalPlus(l, r)
	case token.MINUS:
		return numericOp(l, r, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case token.STAR:
		return evalStar(l, r)
	case token.SLASH:
		return evalSlash(l, r)
	case token.PERCENT:
		return evalPercent(l, r)
	case token.LT, token.GT, token.LT_EQ, token.GT_EQ:
		return evalCompare(op, l, r)
	default:
		return value.Null(), fmt.Errorf("unsupported binary operator %s", op)
	}
}

func bothNumeric(l, r value.Value) bool {
	isNum := func(v value.Value) bool { return v.Kind == value.KindInt || v.Kind == value.KindFloat }
	return isNum(l) && isNum(r)
}

func numericOp(l, r value.Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (value.Value, error) {
	if !bothNumeric(l, r) {
		return value.Null(), fmt.Errorf("operator requires numeric operands, got %s and %s", l.TypeName(), r.TypeName())
	}
	if l.Kind == value.KindInt && r.Kind == value.KindInt {
		return value.Int(intOp(l.Int, r.Int)), nil
	}
	return value.Float(floatOp(asFloat(l), asFloat(r))), nil
}

func asFloat(v value.Value) float64 {
	if v.Kind == value.KindInt {
		return float64(v.Int)
	}
	return v.Float
}

func evalPlus(l, r value.Value) (value.Value, error) {
	if l.Kind == value.KindString || r.Kind == value.KindString {
		return value.Str(l.String() + r.String()), nil
	}
	if l.Kind == value.KindList && r.Kind == value.KindList {
		out := append(append([]value.Value{}, l.List.Elems...), r.List.Elems...)
		return value.NewList(out...), nil
	}
	if bothNumeric(l, r) {
		if l.Kind == value.KindInt && r.Kind == value.KindInt {
			return value.Int(l.Int + r.Int), nil
		}
		return value.Float(asFloat(l) + asFloat(r)), nil
	}
	return value.Null(), fmt.Errorf("+ does not apply to %s and %s", l.TypeName(), r.TypeName())
}

func evalStar(l, r value.Value) (value.Value, error) {
	if l.Kind == value.KindList && r.Kind == value.KindInt {
		return repeatList(l.List.Elems, r.Int)
	}
	if l.Kind == value.KindInt && r.Kind == value.KindList {
		return repeatList(r.List.Elems, l.Int)
	}
	if l.Kind == value.KindString && r.Kind == value.KindInt {
		return repeatString(l.Str, r.Int)
	}
	if l.Kind == value.KindInt && r.Kind == value.KindString {
		return repeatString(r.Str, l.Int)
	}
	return numericOp(l, r, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
}

// repeatList and repeatString require a non-negative count; a negative
// repeat is an error, not an empty result.
func repeatList(elems []value.Value, n int64) (value.Value, error) {
	if n < 0 {
		return value.Null(), fmt.Errorf("* repeat count must be non-negative, got %d", n)
	}
	var out []value.Value
	for i := int64(0); i < n; i++ {
		out = append(out, elems...)
	}
	return value.NewList(out...), nil
}

func repeatString(s string, n int64) (value.Value, error) {
	if n < 0 {
		return value.Null(), fmt.Errorf("* repeat count must be non-negative, got %d", n)
	}
	out := ""
	for i := int64(0); i < n; i++ {
		out += s
	}
	return value.Str(out), nil
}

func evalSlash(l, r value.Value) (value.Value, error) {
	if !bothNumeric(l, r) {
		return value.Null(), fmt.Errorf("/ requires numeric operands, got %s and %s", l.TypeName(), r.TypeName())
	}
	if asFloat(r) == 0 {
		return value.Null(), fmt.Errorf("division by zero")
	}
	if l.Kind == value.KindInt && r.Kind == value.KindInt {
		return value.Int(l.Int / r.Int), nil
	}
	return value.Float(asFloat(l) / asFloat(r)), nil
}

func evalPercent(l, r value.Value) (value.Value, error) {
	if l.Kind != value.KindInt || r.Kind != value.KindInt {
		return value.Null(), fmt.Errorf("%% requires int operands, got %s and %s", l.TypeName(), r.TypeName())
	}
	if r.Int == 0 {
		return value.Null(), fmt.Errorf("division by zero")
	}
	return value.Int(l.Int % r.Int), nil
}

func evalCompare(op token.Type, l, r value.Value) (value.Value, error) {
	if bothNumeric(l, r) {
		a, b := asFloat(l), asFloat(r)
		return value.Bool(compareFloats(op, a, b)), nil
	}
	if l.Kind == value.KindString && r.Kind == value.KindString {
		return value.Bool(compareStrings(op, l.Str, r.Str)), nil
	}
	return value.Null(), fmt.Errorf("cannot compare %s and %s", l.TypeName(), r.TypeName())
}

func compareFloats(op token.Type, a, b float64) bool {
	switch op {
	case token.LT:
		return a < b
	case token.GT:
		return a > b
	case token.LT_EQ:
		return a <= b
	case token.GT_EQ:
		return a >= b
	default:
		return false
	}
}

func compareStrings(op token.Type, a, b string) bool {
	switch op {
	case token.LT:
		return a < b
	case token.GT:
		return a > b
	case token.LT_EQ:
		return a <= b
	case token.GT_EQ:
		return a >= b
	default:
		return false
	}
}

func evalIn(l, r value.Value) (value.Value, error) {
	switch r.Kind {
	case value.KindList:
		for _, e := range r.List.Elems {
			if value.Equal(l, e) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case value.KindMap:
		_, ok := r.Map.Get(l.String())
		return value.Bool(ok), nil
	case value.KindString:
		if l.Kind != value.KindString {
			return value.Bool(false), nil
		}
		return value.Bool(strings.Contains(r.Str, l.Str)), nil
	default:
		return value.Null(), fmt.Errorf("in requires a list, map, or string on the right, got %s", r.TypeName())
	}
}
