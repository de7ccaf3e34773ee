package host

import (
	"github.com/samber/lo"

	"github.com/latchlang/latch/internal/value"
)

// Set implements the supplemental set module, operating on Latch list
// values as sets of values, deduplicated by their Repr: new (dedupe),
// add, contains, union, intersect. Uses samber/lo's slice helpers for the set algebra rather
// than hand-rolled loops.
type Set struct{}

func NewSet() *Set { return &Set{} }

func (s *Set) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "new":
		if len(args) != 1 || args[0].Kind != value.KindList {
			return value.Null(), wrongType("set", method, "argument", "a list")
		}
		return value.NewList(lo.UniqBy(args[0].List.Elems, func(v value.Value) string { return v.Repr() })...), nil
	case "add":
		if len(args) != 2 || args[0].Kind != value.KindList {
			return value.Null(), wrongType("set", method, "first argument", "a list")
		}
		merged := append(append([]value.Value{}, args[0].List.Elems...), args[1])
		return value.NewList(lo.UniqBy(merged, func(v value.Value) string { return v.Repr() })...), nil
	case "contains":
		if len(args) != 2 || args[0].Kind != value.KindList {
			return value.Null(), wrongType("set", method, "first argument", "a list")
		}
		found := lo.ContainsBy(args[0].List.Elems, func(v value.Value) bool { return value.Equal(v, args[1]) })
		return value.Bool(found), nil
	case "union":
		if len(args) != 2 || args[0].Kind != value.KindList || args[1].Kind != value.KindList {
			return value.Null(), wrongType("set", method, "arguments", "two lists")
		}
		merged := append(append([]value.Value{}, args[0].List.Elems...), args[1].List.Elems...)
		return value.NewList(lo.UniqBy(merged, func(v value.Value) string { return v.Repr() })...), nil
	case "intersect":
		if len(args) != 2 || args[0].Kind != value.KindList || args[1].Kind != value.KindList {
			return value.Null(), wrongType("set", method, "arguments", "two lists")
		}
		result := lo.Filter(args[0].List.Elems, func(v value.Value, _ int) bool {
			return lo.ContainsBy(args[1].List.Elems, func(o value.Value) bool { return value.Equal(v, o) })
		})
		return value.NewList(lo.UniqBy(result, func(v value.Value) string { return v.Repr() })...), nil
	default:
		return value.Null(), wrongType("set", method, "method", "new, add, contains, union, or intersect")
	}
}
