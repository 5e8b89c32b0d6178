package ui

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	generr "github.com/solbind/solbind/generator/errors"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestRenderErrorStructured(t *testing.T) {
	err := generr.Wrap(generr.PhaseLoader, generr.ErrDocumentUnreadable,
		"failed to read IDL document 'tok.json'",
		generr.SourceLocation{File: "tok.directive", Line: 3, Column: 12},
		fmt.Errorf("no such file"))

	var buf bytes.Buffer
	RenderError(&buf, err)

	out := buf.String()
	assert.Contains(t, out, "LOADER ERROR [L101]")
	assert.Contains(t, out, "failed to read IDL document 'tok.json'")
	assert.Contains(t, out, "--> tok.directive:3:12")
	assert.Contains(t, out, "caused by: no such file")
}

func TestRenderErrorStructuredWithoutLocation(t *testing.T) {
	err := generr.New(generr.PhaseEmit, generr.ErrWriteFailed, "disk full", generr.SourceLocation{})

	var buf bytes.Buffer
	RenderError(&buf, err)

	out := buf.String()
	assert.Contains(t, out, "EMIT ERROR [E301]")
	assert.NotContains(t, out, "-->")
	assert.NotContains(t, out, "caused by")
}

func TestRenderErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	RenderError(&buf, fmt.Errorf("no .directive files found"))

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "no .directive files found")
}

func TestSuccessAndInfo(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "Generated %d binding package(s)", 2)
	Info(&buf, "  Output: %s", "bindings")

	out := buf.String()
	assert.Contains(t, out, "✓ Generated 2 binding package(s)")
	assert.Contains(t, out, "  Output: bindings")
}
