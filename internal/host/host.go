// Package host implements the single bridge through which Latch scripts
// reach the outside world: `call(module, method, args) -> (Value, error)`.
// Every `module.method(...)` call in a script is dispatched here rather
// than being special-cased in the evaluator, keeping the interpreter's
// core free of I/O concerns.
package host

import (
	"fmt"

	"github.com/latchlang/latch/internal/value"
)

// Module implements one named host module (fs, proc, http, ...).
type Module interface {
	Call(method string, args []value.Value) (value.Value, error)
}

// Bridge dispatches module.method calls to registered Modules.
type Bridge struct {
	modules map[string]Module
}

// NewBridge builds a Bridge with the standard module set wired in.
func NewBridge() *Bridge {
	b := &Bridge{modules: map[string]Module{}}
	b.Register("fs", NewFS())
	b.Register("proc", NewProc())
	b.Register("http", NewHTTP())
	b.Register("time", NewTime())
	b.Register("json", NewJSON())
	b.Register("env", NewEnv())
	b.Register("path", NewPath())
	b.Register("math", NewMath())
	b.Register("hash", NewHash())
	b.Register("base64", NewBase64())
	b.Register("csv", NewCSV())
	b.Register("regex", NewRegex())
	b.Register("set", NewSet())
	b.Register("ai", NewAI())
	return b
}

func (b *Bridge) Register(name string, m Module) { b.modules[name] = m }

// Call dispatches to the named module's method, surfacing an unknown
// module/method as a plain Go error for the evaluator to wrap into a
// diagnostic with source position.
func (b *Bridge) Call(module, method string, args []value.Value) (value.Value, error) {
	m, ok := b.modules[module]
	if !ok {
		return value.Null(), fmt.Errorf("unknown module %q", module)
	}
	return m.Call(method, args)
}

// ErrUnconfiguredModule is returned by modules that have no usable
// backend wired in this build (currently only `ai`, which requires an
// external model credential this interpreter does not manage).
var ErrUnconfiguredModule = fmt.Errorf("module not configured in this build")

func argErr(module, method string, want, got int) error {
	return fmt.Errorf("%s.%s expects %d argument(s), got %d", module, method, want, got)
}

func wrongType(module, method, param, wantKind string) error {
	return fmt.Errorf("%s.%s: %s must be %s", module, method, param, wantKind)
}
