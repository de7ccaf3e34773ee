package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAndCheck_CleanProgramSucceeds(t *testing.T) {
	prog, ok := parseAndCheck("clean.lt", "x := 1\nprint(x + 1)")
	assert.True(t, ok)
	assert.NotNil(t, prog)
}

func TestParseAndCheck_SyntaxErrorFails(t *testing.T) {
	prog, ok := parseAndCheck("bad.lt", "if (")
	assert.False(t, ok)
	assert.Nil(t, prog)
}

func TestParseAndCheck_SemanticErrorFails(t *testing.T) {
	prog, ok := parseAndCheck("bad.lt", "print(undefinedVar)")
	assert.False(t, ok)
	assert.Nil(t, prog)
}

func TestFinishRun_NilErrorIsClean(t *testing.T) {
	assert.NoError(t, finishRun(nil, "f.lt"))
}

func TestFinishRun_RuntimeErrorReturnsFailure(t *testing.T) {
	err := finishRun(assertionError{}, "f.lt")
	assert.Error(t, err)
}

type assertionError struct{}

func (assertionError) Error() string { return "boom" }
