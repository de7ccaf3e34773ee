// Package value defines the dynamic runtime values the Latch evaluator
// manipulates, and the lexically-scoped Environment they live in.
//
// The variant shape mirrors the teacher's objects package (a Kind tag
// plus one concrete Go type per kind), but lists and maps are backed by
// a shared mutable cell so that aliasing one container and mutating it
// through either reference is visible from both, per the language's
// reference-container semantics.
package value

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags the dynamic type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindList
	KindMap
	KindFunction
	KindProcessResult
	KindHTTPResponse
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindFunction:
		return "function"
	case KindProcessResult:
		return "process_result"
	case KindHTTPResponse:
		return "http_response"
	default:
		return "unknown"
	}
}

// Value is the tagged union of every runtime value a Latch expression
// can produce. Exactly one of the typed fields is meaningful for a
// given Kind; List and Map hold pointers so aliasing is shared.
type Value struct {
	Kind Kind

	Int    int64
	Float  float64
	Bool   bool
	Str    string
	List   *ListCell
	Map    *MapCell
	Fn     *Function
	Proc   *ProcessResult
	HTTP   *HTTPResponse
}

// ListCell is the shared, mutable backing store for a list value. Two
// Values referencing the same ListCell observe each other's mutations.
type ListCell struct {
	Elems []Value
}

// MapCell is the shared, mutable, insertion-ordered backing store for a
// map value.
type MapCell struct {
	keys   []string
	values map[string]Value
}

// NewMapCell returns an empty, insertion-ordered map cell.
func NewMapCell() *MapCell {
	return &MapCell{values: map[string]Value{}}
}

func (m *MapCell) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *MapCell) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *MapCell) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *MapCell) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *MapCell) SortedKeys() []string {
	out := m.Keys()
	sort.Strings(out)
	return out
}

func (m *MapCell) Len() int { return len(m.keys) }

// Clone returns a new MapCell with the same entries but an independent
// backing store — a shallow copy (element Values are copied by value,
// so nested containers are still shared, matching reference semantics).
func (m *MapCell) Clone() *MapCell {
	c := NewMapCell()
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// Function is a closure: its parameter list, body, and a snapshot of
// the defining environment.
type Function struct {
	Name       string
	Params     []Param
	Body       interface{} // *ast.BlockStmt; interface{} avoids an import cycle
	Closure    *Environment
	ReturnType string
}

type Param struct {
	Name    string
	Type    string
	Default interface{} // ast.Expr, evaluated lazily in the closure's scope
}

// ProcessResult is the value produced by proc.exec / proc.run.
type ProcessResult struct {
	Code   int64
	Stdout string
	Stderr string
}

// HTTPResponse is the value produced by http.get/post/etc.
type HTTPResponse struct {
	Status  int64
	Headers *MapCell
	Body    string
}

func Null() Value               { return Value{Kind: KindNull} }
func Int(v int64) Value         { return Value{Kind: KindInt, Int: v} }
func Float(v float64) Value     { return Value{Kind: KindFloat, Float: v} }
func Bool(v bool) Value         { return Value{Kind: KindBool, Bool: v} }
func Str(v string) Value        { return Value{Kind: KindString, Str: v} }
func List(cell *ListCell) Value { return Value{Kind: KindList, List: cell} }
func Map(cell *MapCell) Value   { return Value{Kind: KindMap, Map: cell} }
func Fn(f *Function) Value      { return Value{Kind: KindFunction, Fn: f} }

func NewList(elems ...Value) Value { return List(&ListCell{Elems: elems}) }
func NewMap() Value                { return Map(NewMapCell()) }

func (v Value) IsNull() bool { return v.Kind == KindNull }
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindString:
		return v.Str != ""
	case KindList:
		return len(v.List.Elems) > 0
	case KindMap:
		return v.Map.Len() > 0
	default:
		return true
	}
}

// TypeName returns the Latch-level type name used by typeof() and
// annotation-mismatch diagnostics.
func (v Value) TypeName() string { return v.Kind.String() }

// String renders a Value the way print() and string interpolation do:
// unquoted for strings, canonical literal form for everything else.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return formatFloat(v.Float)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List.Elems))
		for i, e := range v.List.Elems {
			parts[i] = e.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := v.Map.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			val, _ := v.Map.Get(k)
			parts[i] = fmt.Sprintf("%s: %s", k, val.Repr())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.Fn.Name)
	case KindProcessResult:
		return fmt.Sprintf("<process_result code=%d>", v.Proc.Code)
	case KindHTTPResponse:
		return fmt.Sprintf("<http_response status=%d>", v.HTTP.Status)
	default:
		return "<unknown>"
	}
}

// Repr renders a Value the way it would be written back as a literal,
// used when formatting nested container elements (so strings appear
// quoted inside list/map output).
func (v Value) Repr() string {
	if v.Kind == KindString {
		return fmt.Sprintf("%q", v.Str)
	}
	return v.String()
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Equal implements structural equality: containers compare element-wise
// by value rather than by identity, and int/float compare by numeric
// value across kinds.
func Equal(a, b Value) bool {
	if a.Kind == KindNull || b.Kind == KindNull {
		return a.Kind == b.Kind
	}
	if (a.Kind == KindInt || a.Kind == KindFloat) && (b.Kind == KindInt || b.Kind == KindFloat) {
		return numeric(a) == numeric(b)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBool:
		return a.Bool == b.Bool
	case KindString:
		return a.Str == b.Str
	case KindList:
		if len(a.List.Elems) != len(b.List.Elems) {
			return false
		}
		for i := range a.List.Elems {
			if !Equal(a.List.Elems[i], b.List.Elems[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if a.Map.Len() != b.Map.Len() {
			return false
		}
		for _, k := range a.Map.Keys() {
			av, _ := a.Map.Get(k)
			bv, ok := b.Map.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindFunction:
		return a.Fn == b.Fn
	default:
		return false
	}
}

func numeric(v Value) float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// SameRef reports whether two container values share the same backing
// cell.
func SameRef(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindList:
		return a.List == b.List
	case KindMap:
		return a.Map == b.Map
	default:
		return Equal(a, b)
	}
}
