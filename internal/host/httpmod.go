package host

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/latchlang/latch/internal/value"
)

// HTTP implements the http module on net/http directly: no example repo
// in the pack ships an HTTP client abstraction worth adopting over the
// standard library's, so this one component is deliberately stdlib-only.
type HTTP struct {
	client *http.Client
}

func NewHTTP() *HTTP {
	return &HTTP{client: &http.Client{Timeout: 30 * time.Second}}
}

func (h *HTTP) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "get":
		return h.do("GET", args)
	case "post":
		return h.do("POST", args)
	case "put":
		return h.do("PUT", args)
	case "delete":
		return h.do("DELETE", args)
	default:
		return value.Null(), wrongType("http", method, "method", "get, post, put, or delete")
	}
}

func (h *HTTP) do(verb string, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), argErr("http", strings.ToLower(verb), 1, len(args))
	}
	url := args[0].Str
	var body io.Reader
	if len(args) > 1 && args[1].Kind == value.KindString {
		body = strings.NewReader(args[1].Str)
	}
	req, err := http.NewRequest(verb, url, body)
	if err != nil {
		return value.Null(), err
	}
	if len(args) > 2 && args[2].Kind == value.KindMap {
		for _, k := range args[2].Map.Keys() {
			v, _ := args[2].Map.Get(k)
			req.Header.Set(k, v.String())
		}
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return value.Null(), err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return value.Null(), err
	}
	headers := value.NewMapCell()
	for k := range resp.Header {
		headers.Set(k, value.Str(resp.Header.Get(k)))
	}
	return value.Value{
		Kind: value.KindHTTPResponse,
		HTTP: &value.HTTPResponse{Status: int64(resp.StatusCode), Headers: headers, Body: string(data)},
	}, nil
}
