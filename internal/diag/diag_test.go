package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_PlainBlock(t *testing.T) {
	d := Diagnostic{
		Category:   Runtime,
		File:       "main.latch",
		Line:       3,
		Col:        7,
		SourceLine: "  x := 1 / 0",
		Reason:     "division by zero",
		Hint:       "check the divisor before dividing",
	}
	out := Format(d, false)
	assert.Contains(t, out, "[latch] Runtime Error")
	assert.Contains(t, out, "file: main.latch")
	assert.Contains(t, out, "line: 3  col: 7")
	assert.Contains(t, out, "→ x := 1 / 0")
	assert.Contains(t, out, "reason: division by zero")
	assert.Contains(t, out, "hint: check the divisor before dividing")
}

func TestFormat_OmitsAbsentFields(t *testing.T) {
	d := Diagnostic{Category: Syntax, Line: 1, Col: 1, Reason: "unexpected token"}
	out := Format(d, false)
	assert.NotContains(t, out, "file:")
	assert.NotContains(t, out, "hint:")
	assert.NotContains(t, out, "→")
}

func TestSourceLine(t *testing.T) {
	src := "a\nb\nc"
	assert.Equal(t, "b", SourceLine(src, 2))
	assert.Equal(t, "", SourceLine(src, 0))
	assert.Equal(t, "", SourceLine(src, 99))
}
