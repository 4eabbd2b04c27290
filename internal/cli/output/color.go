package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes human-facing status lines, coloured when enabled.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	NoColor bool
}

// NewPrinter creates a printer. Colour is disabled when noColor is set or
// out is not a terminal.
func NewPrinter(out, errOut io.Writer, noColor bool) *Printer {
	return &Printer{
		Out:     out,
		Err:     errOut,
		NoColor: noColor || color.NoColor || !IsTerminal(out),
	}
}

// Successf prints a success line to Out.
func (p *Printer) Successf(format string, args ...any) {
	p.print(p.Out, color.FgGreen, format, args...)
}

// Infof prints a plain line to Out.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Warnf prints a warning line to Err.
func (p *Printer) Warnf(format string, args ...any) {
	p.print(p.Err, color.FgYellow, format, args...)
}

// Errorf prints an error line to Err.
func (p *Printer) Errorf(format string, args ...any) {
	p.print(p.Err, color.FgRed, format, args...)
}

func (p *Printer) print(w io.Writer, attr color.Attribute, format string, args ...any) {
	c := color.New(attr)
	if p.NoColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	c.Fprintf(w, format+"\n", args...)
}
