package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/vizconnect/internal/source"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way commands should output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = clampWidth(width)
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params map[string]string) {
	p.Println(NewHeader(title, command, params).SetWidth(p.width).Render())
	p.Newline()
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details map[string]string) {
	p.Println(NewSuccessResult(title, details).SetWidth(p.width).Render())
}

// PrintFailure prints an error result box with troubleshooting tips
func (p *Printer) PrintFailure(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details map[string]string) {
	p.Println(NewWarningResult(title, details).SetWidth(p.width).Render())
}

// PrintSources prints a table of sources
func (p *Printer) PrintSources(sources []source.Descriptor) {
	p.Println(RenderSourceTable(sources))
}

// RenderSourceTable renders one row per source: ID, name, and status.
func RenderSourceTable(sources []source.Descriptor) string {
	if len(sources) == 0 {
		return DisabledRowStyle.Render("  No sources.")
	}

	idWidth, nameWidth := len("ID"), len("NAME")
	for _, d := range sources {
		idWidth = max(idWidth, lipgloss.Width(d.ID))
		nameWidth = max(nameWidth, lipgloss.Width(d.DisplayName))
	}

	row := func(id, name, status string) string {
		return fmt.Sprintf("  %-*s  %-*s  %s", idWidth, id, nameWidth, name, status)
	}

	lines := []string{TableHeaderStyle.Render(row("ID", "NAME", "STATUS"))}
	for _, d := range sources {
		if d.Disabled() {
			status := "disabled"
			if reason := *d.DisabledReason; reason != "" {
				status += ": " + reason
			}
			lines = append(lines, DisabledRowStyle.Render(row(d.ID, d.DisplayName, status)))
			continue
		}

		status := "available"
		if d.Warning != "" {
			status = WarningMarker + " " + d.Warning
		}
		lines = append(lines, row(d.ID, d.DisplayName, status))
	}
	return strings.Join(lines, "\n")
}
