package host

import (
	"encoding/base64"

	"github.com/latchlang/latch/internal/value"
)

// Base64 implements the supplemental base64 module: encode, decode.
type Base64 struct{}

func NewBase64() *Base64 { return &Base64{} }

func (b *Base64) Call(method string, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), argErr("base64", method, 1, len(args))
	}
	switch method {
	case "encode":
		return value.Str(base64.StdEncoding.EncodeToString([]byte(args[0].Str))), nil
	case "decode":
		data, err := base64.StdEncoding.DecodeString(args[0].Str)
		if err != nil {
			return value.Null(), err
		}
		return value.Str(string(data)), nil
	default:
		return value.Null(), wrongType("base64", method, "method", "encode or decode")
	}
}
