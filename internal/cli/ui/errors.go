// Package ui renders generation results and failures for the terminal.
package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	generr "github.com/solbind/solbind/generator/errors"
)

// RenderError writes a generation failure to w. Structured pipeline
// errors get the phase/code/location treatment; anything else falls
// back to a plain colored line.
func RenderError(w io.Writer, err error) {
	headerColor := color.New(color.FgRed, color.Bold)
	bodyColor := color.New(color.FgRed)

	var genErr generr.GenerateError
	if stderrors.As(err, &genErr) {
		headerColor.Fprintf(w, "❌ %s ERROR [%s]\n", strings.ToUpper(genErr.Phase), genErr.Code)
		bodyColor.Fprintf(w, "   %s\n", genErr.Message)
		if genErr.Location.File != "" {
			fmt.Fprintf(w, "   --> %s:%d:%d\n", genErr.Location.File, genErr.Location.Line, genErr.Location.Column)
		}
		if genErr.Cause != nil {
			fmt.Fprintf(w, "   caused by: %s\n", genErr.Cause)
		}
		return
	}

	headerColor.Fprintf(w, "❌ ERROR\n")
	bodyColor.Fprintf(w, "   %s\n", err)
}

// Success writes a green success line
func Success(w io.Writer, format string, args ...interface{}) {
	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

// Info writes a cyan informational line
func Info(w io.Writer, format string, args ...interface{}) {
	infoColor := color.New(color.FgCyan)
	infoColor.Fprintf(w, format+"\n", args...)
}
