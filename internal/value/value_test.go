package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasing_ListSharedThroughReference(t *testing.T) {
	cell := &ListCell{Elems: []Value{Int(1), Int(2)}}
	a := List(cell)
	b := a // same cell, aliased
	b.List.Elems[0] = Int(99)
	assert.Equal(t, int64(99), a.List.Elems[0].Int)
	assert.True(t, SameRef(a, b))
}

func TestEqual_NumericCrossKind(t *testing.T) {
	assert.True(t, Equal(Int(2), Float(2.0)))
	assert.False(t, Equal(Int(2), Float(2.5)))
}

func TestEqual_NullOnlyEqualsNull(t *testing.T) {
	assert.True(t, Equal(Null(), Null()))
	assert.False(t, Equal(Null(), Int(0)))
	assert.False(t, Equal(Null(), Bool(false)))
}

func TestEqual_StructuralLists(t *testing.T) {
	a := NewList(Int(1), Str("x"))
	b := NewList(Int(1), Str("x"))
	assert.True(t, Equal(a, b))
	assert.False(t, SameRef(a, b))
}

func TestEnvironment_CloneInsulatesFromLaterMutation(t *testing.T) {
	root := NewEnvironment(nil)
	root.Bind("x", Int(1))
	snapshot := root.Clone()
	root.Assign("x", Int(2))

	v, ok := snapshot.Get("x")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.Int, "clone must not observe later mutation of the original chain")

	v2, _ := root.Get("x")
	assert.Equal(t, int64(2), v2.Int)
}

func TestEnvironment_AssignWalksToOwningFrame(t *testing.T) {
	root := NewEnvironment(nil)
	root.Bind("x", Int(1))
	child := NewEnvironment(root)
	ok := child.Assign("x", Int(5))
	assert.True(t, ok)
	v, _ := root.Get("x")
	assert.Equal(t, int64(5), v.Int)
	_, definedInChild := child.vars["x"]
	assert.False(t, definedInChild)
}

func TestMapCell_PreservesInsertionOrder(t *testing.T) {
	m := NewMapCell()
	m.Set("b", Int(1))
	m.Set("a", Int(2))
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, []string{"a", "b"}, m.SortedKeys())
}

func TestValue_StringFormatting(t *testing.T) {
	assert.Equal(t, "3.5", Float(3.5).String())
	assert.Equal(t, "3.0", Float(3).String())
	assert.Equal(t, "[1, \"a\"]", NewList(Int(1), Str("a")).String())
}
