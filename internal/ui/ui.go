// Package ui renders the user-facing status lines.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "•"
)

const (
	ColorSuccess lipgloss.Color = "2"
	ColorError   lipgloss.Color = "1"
	ColorWarning lipgloss.Color = "3"
	ColorInfo    lipgloss.Color = "6"
	ColorMuted   lipgloss.Color = "8"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Printer writes styled lines. Quiet drops progress output only; results,
// warnings and failures are always written.
type Printer struct {
	Out   io.Writer
	Quiet bool
}

// New returns a Printer writing to out.
func New(out io.Writer, quiet bool) *Printer {
	return &Printer{Out: out, Quiet: quiet}
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...any) {
	p.line(successStyle.Render(SymbolSuccess), format, args...)
}

// Fail prints a failed step.
func (p *Printer) Fail(format string, args ...any) {
	p.line(errorStyle.Render(SymbolFail), format, args...)
}

// Warn prints an advisory note.
func (p *Printer) Warn(format string, args ...any) {
	p.line(warningStyle.Render(SymbolWarning), format, args...)
}

// Progress prints an in-flight step unless quiet.
func (p *Printer) Progress(format string, args ...any) {
	if p.Quiet {
		return
	}
	p.line(infoStyle.Render(SymbolInfo), format, args...)
}

// Hint prints a muted follow-up line unless quiet.
func (p *Printer) Hint(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.Out, "  %s\n", mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Plain prints an unstyled line unless quiet.
func (p *Printer) Plain(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.Out, format+"\n", args...)
}

func (p *Printer) line(symbol, format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", symbol, fmt.Sprintf(format, args...))
}
