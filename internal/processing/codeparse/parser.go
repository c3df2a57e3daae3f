// Package codeparse extracts coarse structure from source code: the
// functions, classes and imports a file declares, plus a lightweight
// syntax check. It exists to improve retrieval metadata and to gate
// code validation; it is not an exact parser for any language.
package codeparse

import (
	"strings"
)

// Element kinds.
const (
	KindFunction = "function"
	KindClass    = "class"
	KindImport   = "import"
)

// Element is one declared item found in source code.
type Element struct {
	// Kind is function, class or import.
	Kind string

	// Name is the declared identifier.
	Name string

	// Line is the 1-based line the declaration starts on.
	Line int
}

// Structure is the parsed shape of a source file.
type Structure struct {
	// Language is the language the code was parsed as.
	Language string

	// Elements lists every declaration found, in source order.
	Elements []Element

	// Functions, Classes and Imports are the declared names by kind.
	Functions []string
	Classes   []string
	Imports   []string
}

// declPrefixes maps a language to the line prefixes that declare
// functions, classes and imports.
var declPrefixes = map[string]struct {
	function []string
	class    []string
	imports  []string
}{
	"python": {
		function: []string{"def ", "async def "},
		class:    []string{"class "},
		imports:  []string{"import ", "from "},
	},
	"javascript": {
		function: []string{"function ", "async function "},
		class:    []string{"class "},
		imports:  []string{"import ", "const "},
	},
	"typescript": {
		function: []string{"function ", "async function "},
		class:    []string{"class ", "interface "},
		imports:  []string{"import "},
	},
	"java": {
		function: []string{"public ", "private ", "protected ", "static "},
		class:    []string{"class ", "public class ", "abstract class "},
		imports:  []string{"import "},
	},
	"go": {
		function: []string{"func "},
		class:    []string{"type "},
		imports:  []string{"import "},
	},
}

// Parse extracts the declared structure of the code. Unknown languages
// yield an empty structure rather than an error.
func Parse(code, language string) Structure {
	language = strings.ToLower(language)
	s := Structure{Language: language}

	prefixes, ok := declPrefixes[language]
	if !ok {
		return s
	}

	for i, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		lineNo := i + 1

		switch {
		case matchesAny(line, prefixes.class):
			if name := declaredName(trimmed, prefixes.class); name != "" {
				s.Elements = append(s.Elements, Element{Kind: KindClass, Name: name, Line: lineNo})
				s.Classes = append(s.Classes, name)
			}
		case matchesAny(line, prefixes.function):
			if name := declaredName(trimmed, prefixes.function); name != "" {
				s.Elements = append(s.Elements, Element{Kind: KindFunction, Name: name, Line: lineNo})
				s.Functions = append(s.Functions, name)
			}
		case matchesAny(line, prefixes.imports):
			if name := importTarget(trimmed); name != "" {
				s.Elements = append(s.Elements, Element{Kind: KindImport, Name: name, Line: lineNo})
				s.Imports = append(s.Imports, name)
			}
		}
	}

	return s
}

// matchesAny reports whether the line starts with one of the prefixes.
// Indentation is stripped first, so nested declarations such as Python
// methods count too.
func matchesAny(line string, prefixes []string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// declaredName pulls the identifier following a declaration prefix.
func declaredName(line string, prefixes []string) string {
	for _, p := range prefixes {
		if !strings.HasPrefix(line, p) {
			continue
		}
		rest := strings.TrimSpace(line[len(p):])
		end := strings.IndexAny(rest, " (:{<")
		if end == -1 {
			return rest
		}
		return strings.TrimSpace(rest[:end])
	}
	return ""
}

// importTarget pulls the imported module or package name.
func importTarget(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	target := strings.Trim(fields[1], `";`)
	return target
}
