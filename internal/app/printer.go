package app

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/linestack/internal/engine"
)

const ellipsis = "..."

// Printer writes menu output with optional styling.
type Printer struct {
	out      io.Writer
	maxWidth int

	heading *color.Color
	success *color.Color
	failure *color.Color
	number  *color.Color
}

// NewPrinter creates a printer. Styling is also suppressed when out is not
// a terminal.
func NewPrinter(out io.Writer, useColor bool, maxWidth int) *Printer {
	p := &Printer{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		number:  color.New(color.FgYellow),
	}
	p.SetColor(useColor)
	p.SetMaxWidth(maxWidth)
	return p
}

// SetColor turns styling off, or back to the terminal default.
func (p *Printer) SetColor(on bool) {
	for _, c := range []*color.Color{p.heading, p.success, p.failure, p.number} {
		if on && !color.NoColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// SetMaxWidth sets the display width printed lines are cut to. Zero
// disables truncation.
func (p *Printer) SetMaxWidth(width int) {
	if width < 0 {
		width = 0
	}
	p.maxWidth = width
}

// Heading prints a section heading.
func (p *Printer) Heading(text string) {
	_, _ = p.heading.Fprintf(p.out, "\n%s\n", text)
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a confirmation.
func (p *Printer) Success(format string, args ...any) {
	_, _ = p.success.Fprintf(p.out, format+"\n", args...)
}

// Failure prints a problem report.
func (p *Printer) Failure(format string, args ...any) {
	_, _ = p.failure.Fprintf(p.out, format+"\n", args...)
}

// Line prints one numbered buffer line.
func (p *Printer) Line(n int, text string) {
	_, _ = p.number.Fprintf(p.out, "%d", n)
	_, _ = fmt.Fprintf(p.out, ": %s\n", p.Truncate(text))
}

// Buffer prints every line, or a notice when there are none.
func (p *Printer) Buffer(lines []engine.Line) {
	if len(lines) == 0 {
		p.Plain(msgNoLines)
		return
	}
	for _, l := range lines {
		p.Line(l.Number, l.Text)
	}
}

// Truncate cuts text to the configured display width.
func (p *Printer) Truncate(text string) string {
	if p.maxWidth == 0 || runewidth.StringWidth(text) <= p.maxWidth {
		return text
	}
	return runewidth.Truncate(text, p.maxWidth, ellipsis)
}
