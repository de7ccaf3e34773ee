package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latchlang/latch/internal/value"
)

func TestBridge_UnknownModule(t *testing.T) {
	b := NewBridge()
	_, err := b.Call("nope", "go", nil)
	require.Error(t, err)
}

func TestMath_AbsAndMax(t *testing.T) {
	m := NewMath()
	v, err := m.Call("abs", []value.Value{value.Int(-5)})
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.Int)

	mx, err := m.Call("max", []value.Value{value.Int(1), value.Int(9), value.Int(4)})
	require.NoError(t, err)
	assert.Equal(t, int64(9), mx.Int)
}

func TestHash_SHA256(t *testing.T) {
	h := NewHash()
	v, err := h.Call("sha256", []value.Value{value.Str("abc")})
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", v.Str)
}

func TestBase64_RoundTrip(t *testing.T) {
	b := NewBase64()
	enc, err := b.Call("encode", []value.Value{value.Str("hello")})
	require.NoError(t, err)
	dec, err := b.Call("decode", []value.Value{enc})
	require.NoError(t, err)
	assert.Equal(t, "hello", dec.Str)
}

func TestSet_UnionAndIntersect(t *testing.T) {
	s := NewSet()
	a := value.NewList(value.Int(1), value.Int(2))
	bv := value.NewList(value.Int(2), value.Int(3))
	u, err := s.Call("union", []value.Value{a, bv})
	require.NoError(t, err)
	assert.Len(t, u.List.Elems, 3)

	i, err := s.Call("intersect", []value.Value{a, bv})
	require.NoError(t, err)
	assert.Len(t, i.List.Elems, 1)
}

func TestAI_Unconfigured(t *testing.T) {
	a := NewAI()
	_, err := a.Call("complete", []value.Value{value.Str("hi")})
	assert.ErrorIs(t, err, ErrUnconfiguredModule)
}

func TestJSON_ParseAndStringify(t *testing.T) {
	j := NewJSON()
	parsed, err := j.Call("parse", []value.Value{value.Str(`{"a":1,"b":[1,2,3]}`)})
	require.NoError(t, err)
	require.Equal(t, value.KindMap, parsed.Kind)
	av, _ := parsed.Map.Get("a")
	assert.Equal(t, int64(1), av.Int)

	out, err := j.Call("stringify", []value.Value{parsed})
	require.NoError(t, err)
	assert.Contains(t, out.Str, "\"a\": 1")
}
