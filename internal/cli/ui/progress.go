package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ProgressBar tracks a determinate operation, one unit per directive
// processed.
type ProgressBar struct {
	writer  io.Writer
	total   int
	current int
	width   int
	message string
	noColor bool
}

// NewProgressBar creates a progress bar for total units. A width of 0
// defaults to 40 columns.
func NewProgressBar(w io.Writer, total, width int, message string, noColor bool) *ProgressBar {
	if width == 0 {
		width = 40
	}
	return &ProgressBar{
		writer:  w,
		total:   total,
		width:   width,
		message: message,
		noColor: noColor,
	}
}

// Add advances the bar by n units, clamped to the total.
func (p *ProgressBar) Add(n int) {
	p.current += n
	if p.current > p.total {
		p.current = p.total
	}
	p.render()
}

// Finish fills the bar and moves to the next line.
func (p *ProgressBar) Finish() {
	p.current = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

// Clear erases the bar line, so error output is not interleaved with a
// stale bar.
func (p *ProgressBar) Clear() {
	fmt.Fprint(p.writer, "\r\033[K")
}

func (p *ProgressBar) render() {
	if p.total == 0 {
		return
	}

	percent := float64(p.current) / float64(p.total)
	filledWidth := int(float64(p.width) * percent)

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if p.noColor {
		cyan.DisableColor()
		gray.DisableColor()
	}

	var bar strings.Builder
	bar.WriteString("[")
	cyan.Fprint(&bar, strings.Repeat("█", filledWidth))
	gray.Fprint(&bar, strings.Repeat("░", p.width-filledWidth))
	bar.WriteString("]")

	message := ""
	if p.message != "" {
		message = " " + p.message
	}
	fmt.Fprintf(p.writer, "\r%s %3d%%%s", bar.String(), int(percent*100), message)
}
