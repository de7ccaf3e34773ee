package host

import (
	"regexp"

	"github.com/latchlang/latch/internal/value"
)

// Regex implements the supplemental regex module on the standard
// library's RE2 engine: no repo in the pack wraps a third-party regex
// engine, and RE2's linear-time guarantees suit a scripting host better
// than a backtracking alternative would anyway, so this stays stdlib.
type Regex struct{}

func NewRegex() *Regex { return &Regex{} }

func (r *Regex) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "match":
		if len(args) != 2 {
			return value.Null(), argErr("regex", method, 2, len(args))
		}
		re, err := regexp.Compile(args[0].Str)
		if err != nil {
			return value.Null(), err
		}
		return value.Bool(re.MatchString(args[1].Str)), nil
	case "find_all":
		if len(args) != 2 {
			return value.Null(), argErr("regex", method, 2, len(args))
		}
		re, err := regexp.Compile(args[0].Str)
		if err != nil {
			return value.Null(), err
		}
		matches := re.FindAllString(args[1].Str, -1)
		elems := make([]value.Value, len(matches))
		for i, m := range matches {
			elems[i] = value.Str(m)
		}
		return value.NewList(elems...), nil
	case "replace":
		if len(args) != 3 {
			return value.Null(), argErr("regex", method, 3, len(args))
		}
		re, err := regexp.Compile(args[0].Str)
		if err != nil {
			return value.Null(), err
		}
		return value.Str(re.ReplaceAllString(args[1].Str, args[2].Str)), nil
	default:
		return value.Null(), wrongType("regex", method, "method", "match, find_all, or replace")
	}
}
