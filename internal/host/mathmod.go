package host

import (
	"math"
	"math/rand"

	"github.com/latchlang/latch/internal/value"
)

// Math implements the supplemental math module carried over from the
// original implementation's runtime::math: abs, ceil, floor, round,
// sqrt, pow, min, max, random. random is seeded per-Bridge instance so
// a CLI run is reproducible when a fixed seed is supplied via Seed.
type Math struct {
	rng *rand.Rand
}

func NewMath() *Math { return &Math{rng: rand.New(rand.NewSource(1))} }

// Seed reseeds the module's generator.
func (m *Math) Seed(n int64) { m.rng = rand.New(rand.NewSource(n)) }

func (m *Math) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "abs":
		if len(args) != 1 {
			return value.Null(), argErr("math", method, 1, len(args))
		}
		if args[0].Kind == value.KindInt {
			v := args[0].Int
			if v < 0 {
				v = -v
			}
			return value.Int(v), nil
		}
		return value.Float(math.Abs(toFloat(args[0]))), nil
	case "ceil":
		return value.Float(math.Ceil(toFloat(single(args)))), argOK(args, "math", method, 1)
	case "floor":
		return value.Float(math.Floor(toFloat(single(args)))), argOK(args, "math", method, 1)
	case "round":
		return value.Float(math.Round(toFloat(single(args)))), argOK(args, "math", method, 1)
	case "sqrt":
		return value.Float(math.Sqrt(toFloat(single(args)))), argOK(args, "math", method, 1)
	case "pow":
		if len(args) != 2 {
			return value.Null(), argErr("math", method, 2, len(args))
		}
		return value.Float(math.Pow(toFloat(args[0]), toFloat(args[1]))), nil
	case "max":
		return extremum(args, "math", method, false)
	case "min":
		return extremum(args, "math", method, true)
	case "random":
		return value.Float(m.rng.Float64()), nil
	default:
		return value.Null(), wrongType("math", method, "method", "a known math method")
	}
}

func single(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Null()
	}
	return args[0]
}

func argOK(args []value.Value, module, method string, want int) error {
	if len(args) != want {
		return argErr(module, method, want, len(args))
	}
	return nil
}

func toFloat(v value.Value) float64 {
	if v.Kind == value.KindInt {
		return float64(v.Int)
	}
	return v.Float
}

func extremum(args []value.Value, module, method string, wantMin bool) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), argErr(module, method, 1, 0)
	}
	best := args[0]
	for _, a := range args[1:] {
		if (wantMin && toFloat(a) < toFloat(best)) || (!wantMin && toFloat(a) > toFloat(best)) {
			best = a
		}
	}
	return best, nil
}
