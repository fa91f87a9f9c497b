package main

import (
	"io"

	"github.com/fatih/color"
)

var (
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
)

// consoleReporter renders pipeline messages as coloured lines. Info and
// success go to out; warnings and errors go to errOut.
type consoleReporter struct {
	out    io.Writer
	errOut io.Writer
}

func newConsoleReporter(out, errOut io.Writer) *consoleReporter {
	return &consoleReporter{out: out, errOut: errOut}
}

func (c *consoleReporter) Info(msg string)    { infoColor.Fprintln(c.out, msg) }
func (c *consoleReporter) Warn(msg string)    { warnColor.Fprintln(c.errOut, msg) }
func (c *consoleReporter) Error(msg string)   { errorColor.Fprintln(c.errOut, msg) }
func (c *consoleReporter) Success(msg string) { successColor.Fprintln(c.out, msg) }

// warnDefaultKeys tells the user when a session runs on fallback keys.
func warnDefaultKeys(r *consoleReporter, usedDefaults bool) {
	if usedDefaults {
		r.Warn("Using default API keys.")
	}
}
