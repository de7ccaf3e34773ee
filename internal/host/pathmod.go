package host

import (
	"path/filepath"

	"github.com/latchlang/latch/internal/value"
)

// Path implements the path module: join, base, dir, ext, abs.
type Path struct{}

func NewPath() *Path { return &Path{} }

func (p *Path) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "join":
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.Str
		}
		return value.Str(filepath.Join(parts...)), nil
	case "base":
		if len(args) != 1 {
			return value.Null(), argErr("path", method, 1, len(args))
		}
		return value.Str(filepath.Base(args[0].Str)), nil
	case "dir":
		if len(args) != 1 {
			return value.Null(), argErr("path", method, 1, len(args))
		}
		return value.Str(filepath.Dir(args[0].Str)), nil
	case "ext":
		if len(args) != 1 {
			return value.Null(), argErr("path", method, 1, len(args))
		}
		return value.Str(filepath.Ext(args[0].Str)), nil
	case "abs":
		if len(args) != 1 {
			return value.Null(), argErr("path", method, 1, len(args))
		}
		abs, err := filepath.Abs(args[0].Str)
		if err != nil {
			return value.Null(), err
		}
		return value.Str(abs), nil
	default:
		return value.Null(), wrongType("path", method, "method", "join, base, dir, ext, or abs")
	}
}
