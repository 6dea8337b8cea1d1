// Package report prints the human-readable progress of an analysis run:
// success lines prefixed with ✓, advisories with ⚠, and fatal errors with ✗.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

const ruleWidth = 70

// Reporter writes progress messages to a single writer.
type Reporter struct {
	w       io.Writer
	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{
		w:       w,
		success: prefixPrinter(w, "✓", pterm.FgGreen),
		warning: prefixPrinter(w, "⚠", pterm.FgYellow),
		failure: prefixPrinter(w, "✗", pterm.FgRed),
	}
}

func prefixPrinter(w io.Writer, symbol string, color pterm.Color) *pterm.PrefixPrinter {
	return &pterm.PrefixPrinter{
		Prefix:       pterm.Prefix{Text: symbol, Style: pterm.NewStyle(color, pterm.Bold)},
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Writer:       w,
	}
}

func (r *Reporter) Success(format string, args ...any) {
	r.success.Printfln(format, args...)
}

func (r *Reporter) Warn(format string, args ...any) {
	r.warning.Printfln(format, args...)
}

func (r *Reporter) Error(format string, args ...any) {
	r.failure.Printfln(format, args...)
}

// Detail prints an indented follow-up line under the previous message.
func (r *Reporter) Detail(format string, args ...any) {
	pterm.Fprintln(r.w, "  "+fmt.Sprintf(format, args...))
}

// Plain prints an unadorned line.
func (r *Reporter) Plain(format string, args ...any) {
	pterm.Fprintln(r.w, fmt.Sprintf(format, args...))
}

// Section prints a blank line followed by a stage heading.
func (r *Reporter) Section(title string) {
	pterm.Fprintln(r.w)
	pterm.Fprintln(r.w, title)
}

// Banner prints a title framed by horizontal rules.
func (r *Reporter) Banner(title string) {
	rule := strings.Repeat("=", ruleWidth)
	pterm.Fprintln(r.w, rule)
	pterm.Fprintln(r.w, title)
	pterm.Fprintln(r.w, rule)
}

// Rule prints a single horizontal rule.
func (r *Reporter) Rule() {
	pterm.Fprintln(r.w, strings.Repeat("=", ruleWidth))
}

// Count formats n with thousands separators, e.g. 12,345.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Money formats an hourly amount with two decimals and separators, e.g. $1,234.50.
func Money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
