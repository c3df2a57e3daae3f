package codeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Python(t *testing.T) {
	code := `import os
from typing import List

def load(path):
    return open(path)

class Loader:
    def read(self):
        pass
`
	s := Parse(code, "python")

	assert.Equal(t, []string{"load", "read"}, s.Functions)
	assert.Equal(t, []string{"Loader"}, s.Classes)
	assert.Equal(t, []string{"os", "typing"}, s.Imports)

	require.NotEmpty(t, s.Elements)
	assert.Equal(t, KindImport, s.Elements[0].Kind)
	assert.Equal(t, 1, s.Elements[0].Line)
}

func TestParse_UnknownLanguage(t *testing.T) {
	s := Parse("PERFORM UNTIL DONE", "cobol")
	assert.Empty(t, s.Functions)
	assert.Empty(t, s.Classes)
	assert.Empty(t, s.Imports)
}

func TestCheckSyntax_Valid(t *testing.T) {
	code := `def f(x):
    return [x * 2 for x in range(10)]
`
	assert.Nil(t, CheckSyntax(code, "python"))
}

func TestCheckSyntax_UnclosedParen(t *testing.T) {
	issue := CheckSyntax("def f(:\n  pass", "python")
	require.NotNil(t, issue)
	assert.Contains(t, issue.Message, `unclosed "("`)
	assert.Equal(t, 1, issue.Line)
}

func TestCheckSyntax_MismatchedBrackets(t *testing.T) {
	issue := CheckSyntax("function f() { return [1, 2); }", "javascript")
	require.NotNil(t, issue)
	assert.Contains(t, issue.Message, "mismatched")
}

func TestCheckSyntax_UnmatchedCloser(t *testing.T) {
	issue := CheckSyntax("x = 1)\n", "python")
	require.NotNil(t, issue)
	assert.Contains(t, issue.Message, "unmatched")
	assert.Equal(t, 1, issue.Line)
}

func TestCheckSyntax_IgnoresStringsAndComments(t *testing.T) {
	python := `s = "a ( string with ] brackets"
# a comment with ( unbalanced
x = (1 + 2)
`
	assert.Nil(t, CheckSyntax(python, "python"))

	js := `// comment with ( unbalanced
const s = 'another ] string';
let x = f(1);
`
	assert.Nil(t, CheckSyntax(js, "javascript"))
}
