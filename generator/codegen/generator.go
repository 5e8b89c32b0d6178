// Package codegen emits one Go source file per directive: module
// constants, the program-id accessor, and one call stub per synthesized
// binding.
package codegen

import (
	"bytes"
	"fmt"
	"strings"
)

// Generator assembles Go source text for one emitted module
type Generator struct {
	buf     *bytes.Buffer
	indent  int
	imports map[string]bool
}

// NewGenerator creates a new module generator
func NewGenerator() *Generator {
	return &Generator{
		buf:     &bytes.Buffer{},
		indent:  0,
		imports: make(map[string]bool),
	}
}

// reset clears the generator state
func (g *Generator) reset() {
	g.buf.Reset()
	g.indent = 0
	g.imports = make(map[string]bool)
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}

	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("\t")
	}

	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// writeImports writes the import block, stdlib first, then external
func (g *Generator) writeImports() {
	if len(g.imports) == 0 {
		return
	}

	g.writeLine("import (")
	g.indent++

	var stdlibImports []string
	var externalImports []string
	for imp := range g.imports {
		if strings.Contains(imp, ".") {
			externalImports = append(externalImports, imp)
		} else {
			stdlibImports = append(stdlibImports, imp)
		}
	}

	for _, imp := range sortStrings(stdlibImports) {
		g.writeLine("%q", imp)
	}
	if len(stdlibImports) > 0 && len(externalImports) > 0 {
		g.writeLine("")
	}
	for _, imp := range sortStrings(externalImports) {
		g.writeLine("%q", imp)
	}

	g.indent--
	g.writeLine(")")
}

// sortStrings is a simple insertion sort for short import lists
func sortStrings(strs []string) []string {
	result := make([]string, len(strs))
	copy(result, strs)

	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j-1] > result[j]; j-- {
			result[j-1], result[j] = result[j], result[j-1]
		}
	}

	return result
}
