package host

import (
	"os"

	"github.com/latchlang/latch/internal/value"
)

// Env implements the env module: get, set, all.
type Env struct{}

func NewEnv() *Env { return &Env{} }

func (e *Env) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "get":
		if len(args) < 1 {
			return value.Null(), argErr("env", method, 1, len(args))
		}
		v, ok := os.LookupEnv(args[0].Str)
		if !ok {
			if len(args) > 1 {
				return args[1], nil
			}
			return value.Null(), nil
		}
		return value.Str(v), nil
	case "set":
		if len(args) != 2 {
			return value.Null(), argErr("env", method, 2, len(args))
		}
		if err := os.Setenv(args[0].Str, args[1].Str); err != nil {
			return value.Null(), err
		}
		return value.Null(), nil
	case "all":
		m := value.NewMapCell()
		for _, kv := range os.Environ() {
			for i := 0; i < len(kv); i++ {
				if kv[i] == '=' {
					m.Set(kv[:i], value.Str(kv[i+1:]))
					break
				}
			}
		}
		return value.Map(m), nil
	default:
		return value.Null(), wrongType("env", method, "method", "get, set, or all")
	}
}
