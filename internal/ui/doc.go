// Package ui provides terminal output components for the vizconnect CLI.
//
// Unlike the interactive connection dialog, these components print once
// and return: a Header naming the command and its parameters, a Steps
// list, and a Result box for success, failure, or warning.
//
// Runner ties them together for commands that talk to a source:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:     "Open source",
//	    Command:   "vizconnect open rosbridge",
//	    Params:    sel.Params,
//	    StepNames: []string{"Validate parameters", "Connect"},
//	})
//
//	details, err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) (map[string]string, error) {
//	    onStep(1, ui.StepRunning, "")
//	    // ... do work ...
//	    onStep(1, ui.StepComplete, "")
//	    return nil, nil
//	})
//
// Output width follows the terminal (x/term), clamped between
// MinTerminalWidth and MaxContentWidth.
package ui
