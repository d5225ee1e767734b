package cli

import (
	"fmt"
	"io"
)

// IO routes command output. Warnings are written to stderr ahead of the
// first stdout line and repeated once the command finishes, so they stay
// visible when output is piped through head or a pager.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	flushed  bool
}

// NewIO returns an IO writing to out and errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a problem together with what the operator can do about it.
// Warnings never change the exit code.
func (o *IO) Warn(issue string, action string) {
	o.warnings = append(o.warnings, issue+": "+action)
}

// Println writes a line to stdout.
func (o *IO) Println(a ...any) {
	o.write(fmt.Sprintln(a...))
}

// Printf writes formatted text to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.write(fmt.Sprintf(format, a...))
}

// ErrPrintln writes a line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish prints pending warnings. Warnings already shown before the output
// are shown again after it.
func (o *IO) Finish() {
	if len(o.warnings) == 0 {
		return
	}

	if !o.flushed {
		o.flush()
		return
	}

	o.printWarnings()
}

func (o *IO) write(s string) {
	o.flush()
	_, _ = io.WriteString(o.out, s)
}

func (o *IO) flush() {
	if o.flushed || len(o.warnings) == 0 {
		return
	}

	o.flushed = true
	o.printWarnings()
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
