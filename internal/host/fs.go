package host

import (
	"os"

	"github.com/latchlang/latch/internal/value"
)

// FS implements the fs module: read, write, append, exists, remove,
// list_dir, mkdir.
type FS struct{}

func NewFS() *FS { return &FS{} }

func (f *FS) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "read":
		if len(args) != 1 {
			return value.Null(), argErr("fs", method, 1, len(args))
		}
		data, err := os.ReadFile(args[0].Str)
		if err != nil {
			return value.Null(), err
		}
		return value.Str(string(data)), nil
	case "write":
		if len(args) != 2 {
			return value.Null(), argErr("fs", method, 2, len(args))
		}
		if err := os.WriteFile(args[0].Str, []byte(args[1].Str), 0o644); err != nil {
			return value.Null(), err
		}
		return value.Null(), nil
	case "append":
		if len(args) != 2 {
			return value.Null(), argErr("fs", method, 2, len(args))
		}
		fh, err := os.OpenFile(args[0].Str, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return value.Null(), err
		}
		defer fh.Close()
		if _, err := fh.WriteString(args[1].Str); err != nil {
			return value.Null(), err
		}
		return value.Null(), nil
	case "exists":
		if len(args) != 1 {
			return value.Null(), argErr("fs", method, 1, len(args))
		}
		_, err := os.Stat(args[0].Str)
		return value.Bool(err == nil), nil
	case "remove":
		if len(args) != 1 {
			return value.Null(), argErr("fs", method, 1, len(args))
		}
		if err := os.Remove(args[0].Str); err != nil {
			return value.Null(), err
		}
		return value.Null(), nil
	case "mkdir":
		if len(args) != 1 {
			return value.Null(), argErr("fs", method, 1, len(args))
		}
		if err := os.MkdirAll(args[0].Str, 0o755); err != nil {
			return value.Null(), err
		}
		return value.Null(), nil
	case "list_dir":
		if len(args) != 1 {
			return value.Null(), argErr("fs", method, 1, len(args))
		}
		entries, err := os.ReadDir(args[0].Str)
		if err != nil {
			return value.Null(), err
		}
		elems := make([]value.Value, len(entries))
		for i, e := range entries {
			elems[i] = value.Str(e.Name())
		}
		return value.NewList(elems...), nil
	default:
		return value.Null(), wrongType("fs", method, "method", "a known fs method")
	}
}
