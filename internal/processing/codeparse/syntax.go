package codeparse

import "fmt"

// SyntaxIssue describes a syntax problem found by CheckSyntax.
type SyntaxIssue struct {
	// Message describes the problem.
	Message string

	// Line is the 1-based line the problem was detected on, zero when
	// the problem is end-of-input (e.g. an unclosed bracket).
	Line int
}

// bracket pairs checked by the balancer.
var closing = map[byte]byte{'(': ')', '[': ']', '{': '}'}

// CheckSyntax runs a bracket-balance check over the code, skipping
// string literals and line comments. It catches the structural errors
// an LLM most often produces (unbalanced parens, unclosed braces)
// without attempting full parsing. A nil return means no problem was
// found, not a proof of validity.
func CheckSyntax(code, language string) *SyntaxIssue {
	type open struct {
		ch   byte
		line int
	}
	var stack []open

	line := 1
	inString := false
	var quote byte

	for i := 0; i < len(code); i++ {
		ch := code[i]

		if ch == '\n' {
			line++
			// Single-quoted strings don't span lines in the
			// languages we check.
			if inString && quote != '`' {
				inString = false
			}
			continue
		}

		if inString {
			if ch == '\\' {
				i++ // skip escaped character
				continue
			}
			if ch == quote {
				inString = false
			}
			continue
		}

		switch ch {
		case '"', '\'', '`':
			inString = true
			quote = ch
		case '#':
			if language == "python" {
				i = skipLine(code, i)
				line++
			}
		case '/':
			if i+1 < len(code) && code[i+1] == '/' && language != "python" {
				i = skipLine(code, i)
				line++
			}
		case '(', '[', '{':
			stack = append(stack, open{ch: ch, line: line})
		case ')', ']', '}':
			if len(stack) == 0 {
				return &SyntaxIssue{
					Message: fmt.Sprintf("unmatched %q", string(ch)),
					Line:    line,
				}
			}
			top := stack[len(stack)-1]
			if closing[top.ch] != ch {
				return &SyntaxIssue{
					Message: fmt.Sprintf("mismatched %q: expected %q", string(ch), string(closing[top.ch])),
					Line:    line,
				}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &SyntaxIssue{
			Message: fmt.Sprintf("unclosed %q opened on line %d", string(top.ch), top.line),
			Line:    top.line,
		}
	}

	return nil
}

// skipLine advances to the index of the next newline.
func skipLine(code string, i int) int {
	for i < len(code) && code[i] != '\n' {
		i++
	}
	return i
}
