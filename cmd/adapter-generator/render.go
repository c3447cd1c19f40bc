package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"adapter-generator/internal/diagnostic"
)

// printer renders diagnostics and summaries. Colors are dropped when w is
// not a terminal.
type printer struct {
	w io.Writer

	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	infoStyle    lipgloss.Style
	requestStyle lipgloss.Style
	dimStyle     lipgloss.Style
	okStyle      lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)

	return &printer{
		w:            w,
		errorStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		warningStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		infoStyle:    r.NewStyle().Foreground(lipgloss.Color("86")),
		requestStyle: r.NewStyle().Bold(true),
		dimStyle:     r.NewStyle().Foreground(lipgloss.Color("245")),
		okStyle:      r.NewStyle().Foreground(lipgloss.Color("46")),
	}
}

func (p *printer) severity(s diagnostic.DiagnosticSeverity) string {
	label := s.String()

	switch s {
	case diagnostic.DiagnosticError:
		return p.errorStyle.Render(label)
	case diagnostic.DiagnosticWarning:
		return p.warningStyle.Render(label)
	default:
		return p.infoStyle.Render(label)
	}
}

// diagnostic renders d as
//
//	error[code] request: member: message
//	    candidates: a, b
func (p *printer) diagnostic(d diagnostic.Diagnostic) string {
	var sb strings.Builder

	sb.WriteString(p.severity(d.Severity))

	if d.Code != "" {
		sb.WriteString(p.dimStyle.Render("[" + d.Code + "]"))
	}

	sb.WriteString(" ")

	if d.Request != "" {
		sb.WriteString(p.requestStyle.Render(d.Request))
		sb.WriteString(": ")
	}

	if d.Member != "" {
		sb.WriteString(d.Member)
		sb.WriteString(": ")
	}

	sb.WriteString(d.Message)

	if len(d.Candidates) > 0 {
		sb.WriteString("\n    ")
		sb.WriteString(p.dimStyle.Render("candidates: " + strings.Join(d.Candidates, ", ")))
	}

	return sb.String()
}

func (p *printer) diagnostics(ds []diagnostic.Diagnostic) {
	for _, d := range ds {
		fmt.Fprintln(p.w, p.diagnostic(d))
	}
}

// failure renders err. Aggregated diagnostics get one line each.
func (p *printer) failure(err error) {
	if de, ok := diagnostic.AsError(err); ok {
		p.diagnostics(de.Diagnostics)
		fmt.Fprintf(p.w, "%s %d problem(s) found\n", p.errorStyle.Render("failed:"), len(de.Diagnostics))

		return
	}

	fmt.Fprintf(p.w, "%s %v\n", p.errorStyle.Render("error:"), err)
}

func (p *printer) ok(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.okStyle.Render("ok"), fmt.Sprintf(format, args...))
}
