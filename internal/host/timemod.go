package host

import (
	"strings"
	"time"

	"github.com/latchlang/latch/internal/value"
)

// Time implements the time module: now, unix, sleep, format.
type Time struct{}

func NewTime() *Time { return &Time{} }

func (t *Time) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "now":
		return value.Int(time.Now().Unix()), nil
	case "unix":
		if len(args) != 1 {
			return value.Null(), argErr("time", method, 1, len(args))
		}
		return value.Int(args[0].Int), nil
	case "sleep":
		if len(args) != 1 {
			return value.Null(), argErr("time", method, 1, len(args))
		}
		time.Sleep(time.Duration(args[0].Int) * time.Millisecond)
		return value.Null(), nil
	case "format":
		if len(args) != 2 {
			return value.Null(), argErr("time", method, 2, len(args))
		}
		tm := time.Unix(args[0].Int, 0).UTC()
		return value.Str(tm.Format(goLayout(args[1].Str))), nil
	default:
		return value.Null(), wrongType("time", method, "method", "now, unix, sleep, or format")
	}
}

// goLayout accepts the handful of strftime-ish tokens the spec's time
// module documents and maps them onto Go's reference-time layout.
func goLayout(pattern string) string {
	replacer := map[string]string{
		"%Y": "2006", "%m": "01", "%d": "02",
		"%H": "15", "%M": "04", "%S": "05",
	}
	out := pattern
	for k, v := range replacer {
		out = strings.ReplaceAll(out, k, v)
	}
	return out
}
