package main

import (
	"fmt"
	"os"
)

// termProgress implements indexed.ProgressSink as a single overwritten
// terminal line. Cancellation is not wired to any signal; CheckCancel
// always reports false since gimpconvert runs one conversion and exits.
type termProgress struct {
	quiet bool
	text  string
}

func (p *termProgress) SetText(msg string) {
	p.text = msg
}

func (p *termProgress) SetValue(fraction float64) {
	if p.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "\r%-28s %5.1f%%", p.text, fraction*100)
	if fraction >= 1 {
		fmt.Fprintln(os.Stderr)
	}
}

func (p *termProgress) CheckCancel() bool { return false }
