package builtin

import (
	"bytes"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latchlang/latch/internal/value"
)

type noopCaller struct{}

func (noopCaller) CallFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	return value.Null(), nil
}

func TestBuiltinPrint(t *testing.T) {
	var buf bytes.Buffer
	_, err := Table["print"](noopCaller{}, &buf, []value.Value{value.Str("hi"), value.Int(1)})
	require.NoError(t, err)
	assert.Equal(t, "hi 1\n", buf.String())
}

func TestBuiltinLen(t *testing.T) {
	v, err := Table["len"](noopCaller{}, nil, []value.Value{value.Str("abc")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Int)
}

func TestBuiltinPushMutatesSharedCell(t *testing.T) {
	list := value.NewList(value.Int(1))
	alias := list
	_, err := Table["push"](noopCaller{}, nil, []value.Value{list, value.Int(2)})
	require.NoError(t, err)
	assert.Len(t, alias.List.Elems, 2)
}

func TestBuiltinRange(t *testing.T) {
	v, err := Table["range"](noopCaller{}, nil, []value.Value{value.Int(3)})
	require.NoError(t, err)
	assert.Len(t, v.List.Elems, 3)
	assert.Equal(t, int64(0), v.List.Elems[0].Int)
}

func TestBuiltinSum(t *testing.T) {
	v, err := Table["sum"](noopCaller{}, nil, []value.Value{value.NewList(value.Int(1), value.Int(2), value.Int(3))})
	require.NoError(t, err)
	assert.Equal(t, int64(6), v.Int)
}

func TestBuiltinAssertFailure(t *testing.T) {
	_, err := Table["assert"](noopCaller{}, nil, []value.Value{value.Bool(false), value.Str("boom")})
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}

func TestBuiltinKeysSorted(t *testing.T) {
	m := value.NewMapCell()
	m.Set("z", value.Int(1))
	m.Set("a", value.Int(2))
	v, err := Table["keys"](noopCaller{}, nil, []value.Value{value.Map(m)})
	require.NoError(t, err)
	assert.Equal(t, "a", v.List.Elems[0].Str)
	assert.Equal(t, "z", v.List.Elems[1].Str)
}

func TestBuiltinSplit(t *testing.T) {
	v, err := Table["split"](noopCaller{}, nil, []value.Value{value.Str("a,b,c"), value.Str(",")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, lo.Map(v.List.Elems, func(e value.Value, _ int) string { return e.Str }))
}

func TestBuiltinTrim(t *testing.T) {
	v, err := Table["trim"](noopCaller{}, nil, []value.Value{value.Str("  hi  ")})
	require.NoError(t, err)
	assert.Equal(t, "hi", v.Str)
}

func TestBuiltinLowerUpper(t *testing.T) {
	v, err := Table["lower"](noopCaller{}, nil, []value.Value{value.Str("HeLLo")})
	require.NoError(t, err)
	assert.Equal(t, "hello", v.Str)

	v, err = Table["upper"](noopCaller{}, nil, []value.Value{value.Str("HeLLo")})
	require.NoError(t, err)
	assert.Equal(t, "HELLO", v.Str)
}

func TestBuiltinStartsEndsWith(t *testing.T) {
	v, err := Table["starts_with"](noopCaller{}, nil, []value.Value{value.Str("hello"), value.Str("he")})
	require.NoError(t, err)
	assert.True(t, v.Bool)

	v, err = Table["ends_with"](noopCaller{}, nil, []value.Value{value.Str("hello"), value.Str("lo")})
	require.NoError(t, err)
	assert.True(t, v.Bool)
}

func TestBuiltinContains(t *testing.T) {
	v, err := Table["contains"](noopCaller{}, nil, []value.Value{value.Str("hello"), value.Str("ell")})
	require.NoError(t, err)
	assert.True(t, v.Bool)
}

func TestBuiltinReplace(t *testing.T) {
	v, err := Table["replace"](noopCaller{}, nil, []value.Value{value.Str("banana"), value.Str("a"), value.Str("o")})
	require.NoError(t, err)
	assert.Equal(t, "bonono", v.Str)
}

func TestBuiltinRepeat(t *testing.T) {
	v, err := Table["repeat"](noopCaller{}, nil, []value.Value{value.Str("ab"), value.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, "ababab", v.Str)
}

func TestBuiltinRepeatNegativeErrors(t *testing.T) {
	_, err := Table["repeat"](noopCaller{}, nil, []value.Value{value.Str("ab"), value.Int(-1)})
	require.Error(t, err)
}
