package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet started
	StepRunning                    // Currently executing
	StepComplete                   // Successfully completed
	StepFailed                     // Failed
	StepSkipped                    // Skipped
)

// Step represents a single step in a multi-step operation
type Step struct {
	Number  int        // Step number (1-based)
	Name    string     // Step description
	Status  StepStatus // Current status
	Message string     // Optional status message (e.g., "HTTP 200", "412ms")
}

// Steps tracks the step list of a command
type Steps struct {
	Items []Step
}

// NewSteps creates a step list with the given names, all pending
func NewSteps(names ...string) *Steps {
	items := make([]Step, len(names))
	for i, name := range names {
		items[i] = Step{Number: i + 1, Name: name, Status: StepPending}
	}
	return &Steps{Items: items}
}

// Total returns the number of steps
func (s *Steps) Total() int {
	return len(s.Items)
}

// Update updates a step's status and optional message. Unknown step
// numbers are ignored.
func (s *Steps) Update(stepNumber int, status StepStatus, message string) (Step, bool) {
	if stepNumber < 1 || stepNumber > len(s.Items) {
		return Step{}, false
	}
	step := &s.Items[stepNumber-1]
	step.Status = status
	step.Message = message
	return *step, true
}

// Completed returns how many steps finished, counting skipped ones
func (s *Steps) Completed() int {
	n := 0
	for _, step := range s.Items {
		if step.Status == StepComplete || step.Status == StepSkipped {
			n++
		}
	}
	return n
}

// RenderLine renders a single step line
func (s *Steps) RenderLine(step Step) string {
	prefix := fmt.Sprintf("  [%d/%d]", step.Number, s.Total())

	var (
		marker    string
		nameStyle lipgloss.Style
	)
	switch step.Status {
	case StepComplete:
		marker, nameStyle = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, nameStyle = StepMarkerRunning, StepRunningStyle
	case StepFailed:
		marker, nameStyle = FailureMarker, ErrorTitleStyle
	case StepSkipped:
		marker, nameStyle = "⊘", StepPendingStyle
	default:
		marker, nameStyle = StepMarkerPending, StepPendingStyle
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(nameStyle.Render(step.Name))

	// Markers line up in one column
	padding := 40 - lipgloss.Width(step.Name)
	if padding < 1 {
		padding = 1
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(nameStyle.Render(marker))

	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}

	return b.String()
}

// Render returns the whole step list
func (s *Steps) Render() string {
	lines := make([]string, 0, len(s.Items))
	for _, step := range s.Items {
		lines = append(lines, s.RenderLine(step))
	}
	return strings.Join(lines, "\n")
}

// StepCallback is the function signature for step progress updates.
// Commands call this to report progress.
type StepCallback func(stepNumber int, status StepStatus, message string)
