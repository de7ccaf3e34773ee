package host

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/latchlang/latch/internal/value"
)

// JSON implements the json module. Parsing and single-field patches go
// through gjson/sjson for their zero-allocation path queries; the final
// pretty-printed stringify still goes through the standard library's
// encoding/json, since gjson has no serializer of its own.
type JSON struct{}

func NewJSON() *JSON { return &JSON{} }

func (j *JSON) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "parse":
		if len(args) != 1 {
			return value.Null(), argErr("json", method, 1, len(args))
		}
		if !gjson.Valid(args[0].Str) {
			return value.Null(), wrongType("json", method, "argument", "valid JSON text")
		}
		return fromGJSON(gjson.Parse(args[0].Str)), nil
	case "get":
		if len(args) != 2 {
			return value.Null(), argErr("json", method, 2, len(args))
		}
		res := gjson.Get(args[0].Str, args[1].Str)
		if !res.Exists() {
			return value.Null(), nil
		}
		return fromGJSON(res), nil
	case "set":
		if len(args) != 3 {
			return value.Null(), argErr("json", method, 3, len(args))
		}
		out, err := sjson.Set(args[0].Str, args[1].Str, toNative(args[2]))
		if err != nil {
			return value.Null(), err
		}
		return value.Str(out), nil
	case "stringify":
		if len(args) != 1 {
			return value.Null(), argErr("json", method, 1, len(args))
		}
		data, err := json.MarshalIndent(toNative(args[0]), "", "  ")
		if err != nil {
			return value.Null(), err
		}
		return value.Str(string(data)), nil
	default:
		return value.Null(), wrongType("json", method, "method", "parse, get, set, or stringify")
	}
}

func fromGJSON(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Null()
	case gjson.False:
		return value.Bool(false)
	case gjson.True:
		return value.Bool(true)
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return value.Int(int64(r.Num))
		}
		return value.Float(r.Num)
	case gjson.String:
		return value.Str(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromGJSON(v))
				return true
			})
			return value.NewList(elems...)
		}
		m := value.NewMapCell()
		r.ForEach(func(k, v gjson.Result) bool {
			m.Set(k.Str, fromGJSON(v))
			return true
		})
		return value.Map(m)
	default:
		return value.Null()
	}
}

func toNative(v value.Value) interface{} {
	switch v.Kind {
	case value.KindNull:
		return nil
	case value.KindInt:
		return v.Int
	case value.KindFloat:
		return v.Float
	case value.KindBool:
		return v.Bool
	case value.KindString:
		return v.Str
	case value.KindList:
		out := make([]interface{}, len(v.List.Elems))
		for i, e := range v.List.Elems {
			out[i] = toNative(e)
		}
		return out
	case value.KindMap:
		out := map[string]interface{}{}
		for _, k := range v.Map.Keys() {
			val, _ := v.Map.Get(k)
			out[k] = toNative(val)
		}
		return out
	default:
		return v.String()
	}
}
