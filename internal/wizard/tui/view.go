package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Action is a footer button of the modal shell.
type Action struct {
	Key      string // key hint, e.g. "esc"
	Label    string
	Disabled bool
}

// ViewProps describes one render of the modal shell. A nil action hides
// its slot.
type ViewProps struct {
	Title   string
	Content string

	Back   *Action
	Cancel *Action
	Open   *Action

	Help   string
	Width  int
	Height int
}

// RenderView renders the modal shell: title, content, the back / cancel /
// open slots, and the help line, inside the application container.
func RenderView(p ViewProps) string {
	var b strings.Builder

	if p.Title != "" {
		b.WriteString(RenderTitle(p.Title))
		b.WriteString("\n")
	}
	b.WriteString(p.Content)

	if actions := renderActions(p.Back, p.Cancel, p.Open); actions != "" {
		b.WriteString("\n\n")
		b.WriteString(actions)
	}

	return RenderApplicationContainer(b.String(), p.Help, p.Width, p.Height)
}

// renderActions lays out back on the left and cancel / open on the right.
func renderActions(back, cancel, open *Action) string {
	var left, right []string

	if back != nil {
		left = append(left, renderAction(back, ActionStyle))
	}
	if cancel != nil {
		right = append(right, renderAction(cancel, ActionStyle))
	}
	if open != nil {
		right = append(right, renderAction(open, PrimaryActionStyle))
	}

	if len(left) == 0 && len(right) == 0 {
		return ""
	}

	parts := left
	if len(left) > 0 && len(right) > 0 {
		parts = append(parts, "   ")
	}
	parts = append(parts, right...)
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderAction(a *Action, style lipgloss.Style) string {
	text := a.Label
	if a.Key != "" {
		text = a.Label + " (" + a.Key + ")"
	}
	if a.Disabled {
		return DisabledActionStyle.Render(text)
	}
	return style.Render(text)
}
