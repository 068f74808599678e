package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes result lines for CLI operations: a check for success, a
// cross for failures, an info mark for soft "nothing to do" conditions.
// It is passed explicitly into operations, never stashed on a global.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	NoColor bool
}

// NewPrinter returns a printer on stdout/stderr with color auto-detection.
func NewPrinter() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr, NoColor: !ShouldUseColor()}
}

func (p *Printer) symbol(descriptor, glyph string) string {
	if p.NoColor {
		return glyph
	}
	return ParseStyle(descriptor).Render(glyph)
}

// Succeed prints a green-check result line.
func (p *Printer) Succeed(format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", p.symbol("green", "✔"), fmt.Sprintf(format, args...))
}

// Fail prints a red-cross result line to stderr.
func (p *Printer) Fail(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", p.symbol("red", "✖"), fmt.Sprintf(format, args...))
}

// Info prints an informational line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", p.symbol("blue", "ℹ"), fmt.Sprintf(format, args...))
}

// Line prints a plain line to Out.
func (p *Printer) Line(s string) {
	fmt.Fprintln(p.Out, s)
}
