package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// RunnerConfig holds configuration for a command execution
type RunnerConfig struct {
	Title     string            // Command title (e.g., "Open source")
	Command   string            // Full command (e.g., "vizconnect open rosbridge")
	Params    map[string]string // Parameters to display in header
	StepNames []string          // Names for each step
	// Troubleshoot turns a failure into tips for the result box.
	Troubleshoot func(error) []string
	Output       io.Writer // Output writer (default: os.Stdout)
	Width        int       // Render width (default: terminal width)
}

// Operation is the work a Runner wraps. It reports progress through
// onStep and returns details for the success box.
type Operation func(ctx context.Context, onStep StepCallback) (map[string]string, error)

// Runner orchestrates the header → steps → result flow of a command.
type Runner struct {
	config RunnerConfig
	header *Header
	steps  *Steps
	output io.Writer
	width  int
}

// NewRunner creates a new runner for a command
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := config.Width
	if width == 0 {
		width = GetTerminalWidth()
	}

	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	return &Runner{
		config: config,
		header: header,
		steps:  NewSteps(config.StepNames...),
		output: config.Output,
		width:  width,
	}
}

// Steps returns the runner's step list
func (r *Runner) Steps() *Steps {
	return r.steps
}

// Run executes the operation with UI updates.
// It displays the header, prints each step as it finishes, and shows the result.
func (r *Runner) Run(ctx context.Context, operation Operation) (map[string]string, error) {
	start := time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	details, err := operation(ctx, r.onStep)
	duration := time.Since(start)

	_, _ = fmt.Fprintln(r.output)
	if err != nil {
		var tips []string
		if r.config.Troubleshoot != nil {
			tips = r.config.Troubleshoot(err)
		}
		result := NewFailureResult(r.config.Title+" failed", err, tips)
		result.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, result.Render())
		return details, err
	}

	if details == nil {
		details = make(map[string]string)
	}
	details["duration"] = duration.Round(time.Millisecond).String()

	result := NewSuccessResult(r.config.Title+" complete", details)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())
	return details, nil
}

// onStep updates the step list and prints finished steps
func (r *Runner) onStep(stepNumber int, status StepStatus, message string) {
	step, ok := r.steps.Update(stepNumber, status, message)
	if !ok {
		return
	}

	switch status {
	case StepComplete, StepFailed, StepSkipped:
		_, _ = fmt.Fprintln(r.output, r.steps.RenderLine(step))
	case StepRunning:
		// Overwritten when the step finishes
		_, _ = fmt.Fprint(r.output, r.steps.RenderLine(step)+"\r")
	}
}

// SplitHint splits a multi-line troubleshooting hint into its lead text
// and its bullet points.
func SplitHint(hint string) (string, []string) {
	var (
		lead []string
		tips []string
	)
	for _, line := range strings.Split(hint, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line == "Troubleshooting:":
		case strings.HasPrefix(line, "•"):
			tips = append(tips, strings.TrimSpace(strings.TrimPrefix(line, "•")))
		default:
			lead = append(lead, line)
		}
	}
	return strings.Join(lead, " "), tips
}
