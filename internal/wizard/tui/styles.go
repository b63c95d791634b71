package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/vizconnect/internal/version"
)

// Application branding constants
const (
	AppName       = "VIZCONNECT"
	GitHubURL     = "github.com/muurk/vizconnect"
	GitHubFullURL = "https://github.com/muurk/vizconnect"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// MinTerminalWidth is the narrowest layout the dialog renders at
const MinTerminalWidth = 72

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - borders, title, open button
	SuccessColor = lipgloss.Color("#43BF6D") // Green - selection, success
	WarningColor = lipgloss.Color("#FFA500") // Orange - connector warnings
	ErrorColor   = lipgloss.Color("#FF5555") // Red - field errors
	TextColor    = lipgloss.Color("#FFFFFF") // White
	SubtleColor  = lipgloss.Color("#626262") // Gray - disabled, hints
)

// Shell and result styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Result of the open attempt
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SuccessColor)

	// Selection summary on the opened screen
	InfoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// Connection dialog styles
var (
	// Tab list column
	TabListStyle = lipgloss.NewStyle().
			Border(lipgloss.Border{Right: "│"}).
			BorderForeground(PrimaryColor).
			PaddingRight(2).
			MarginRight(2)

	// Tab list column while it has focus
	FocusedTabListStyle = TabListStyle.
				BorderForeground(SuccessColor)

	TabStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	SelectedTabStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	// Disabled tab (greyed but still selectable)
	DisabledTabStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(SubtleColor)

	WarningBoxStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(0, 1)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// Input prompt of the focused field
	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	// Values of fields that cannot be edited, and placeholders
	BlurredInputStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	DisabledNoteStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Italic(true)

	DocsLinkStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Underline(true)

	// Footer action slots
	ActionStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			Padding(0, 1)

	PrimaryActionStyle = ActionStyle.
				Background(PrimaryColor)

	DisabledActionStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Padding(0, 1)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderError renders an error message
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// RenderSuccess renders a success message
func RenderSuccess(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

// RenderInfo renders an info box
func RenderInfo(text string) string {
	return InfoBoxStyle.Render(text)
}

// BuildHeaderContent returns the app name, version, and project URL line
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// RenderApplicationContainer wraps every screen: a bordered full-terminal
// panel with the header line on top and the help text pinned to the bottom.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	inner := terminalWidth - 4 // outer border plus one column each side

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(PrimaryColor).
		Width(inner).
		Padding(0, 1).
		Render(BuildHeaderContent())

	footer := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(PrimaryColor).
		Foreground(SubtleColor).
		Width(inner).
		Padding(0, 1).
		Render(footerText)

	// Callers control their own content margins
	body := lipgloss.NewStyle().Width(inner).Render(content)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(PrimaryColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// SafeModalWidth returns requestedWidth capped to the terminal, never
// below 40 columns
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	maxWidth := max(terminalWidth-4, 40)
	return min(requestedWidth, maxWidth)
}
