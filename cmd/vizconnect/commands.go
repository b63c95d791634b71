package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/vizconnect/internal/config"
	"github.com/muurk/vizconnect/internal/connection"
	"github.com/muurk/vizconnect/internal/discovery"
	"github.com/muurk/vizconnect/internal/logging"
	"github.com/muurk/vizconnect/internal/player"
	"github.com/muurk/vizconnect/internal/server"
	"github.com/muurk/vizconnect/internal/source"
	"github.com/muurk/vizconnect/internal/ui"
	"github.com/muurk/vizconnect/internal/wizard/tui"
)

// Command flags
var (
	scanTimeout    int
	openParams     []string
	openLast       bool
	serveHost      string
	servePort      int
	serveName      string
	serveAdvertise bool
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(serveCmd)
}

// initLogging routes logs to a file while the dialog owns the terminal
func initLogging(cmd *cobra.Command) error {
	output := logFile
	if output == "" && !cmd.HasParent() {
		path, err := config.GetLogPath()
		if err != nil {
			return err
		}
		output = path
	}
	return logging.Initialize(logLevel, output)
}

// loadRegistry loads --config, or the default config file
func loadRegistry() (*config.Registry, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.LoadRegistry()
}

// activeSource returns the source to select initially: --source if given,
// otherwise the last opened one.
func activeSource(reg *config.Registry, catalog []source.Descriptor) (*source.Descriptor, error) {
	if sourceID == "" {
		return reg.Active(catalog), nil
	}
	d, ok := source.Find(catalog, sourceID)
	if !ok {
		return nil, fmt.Errorf("unknown source %q (see 'vizconnect sources')", sourceID)
	}
	return &d, nil
}

// discoverFunc scans for WebSocket servers unless discovery is turned off
func discoverFunc(reg *config.Registry) tui.DiscoverFunc {
	if noDiscover || !reg.Preferences.Discover {
		return nil
	}
	timeout := time.Duration(reg.Preferences.DiscoverTimeout) * time.Second
	return func(ctx context.Context) ([]source.Descriptor, error) {
		services, err := discovery.ScanForServices(ctx, timeout)
		if err != nil {
			return nil, err
		}
		return discovery.Descriptors(services), nil
	}
}

func runDialog(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	catalog := reg.Catalog()
	active, err := activeSource(reg, catalog)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	session := player.NewSession(ctx, player.DefaultDrivers()...)
	app := tui.NewAppModel(tui.Options{
		Sources:  catalog,
		Active:   active,
		Session:  session,
		Discover: discoverFunc(reg),
	})

	final, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("dialog error: %w", err)
	}

	m, ok := final.(tui.AppModel)
	if !ok || m.Cancelled || m.SourceID == "" {
		fmt.Println("No source selected.")
		return nil
	}

	result, openErr := m.Result, m.LastError
	if m.Waiting {
		// Quit before the attempt finished
		waitCtx, waitCancel := context.WithTimeout(ctx, player.DefaultOpenTimeout)
		result, openErr = session.Wait(waitCtx)
		waitCancel()
	}

	printer := ui.NewPrinter(nil)
	printer.PrintHeader("Open source", "vizconnect", logging.RedactParams(m.Selection.Params))
	if openErr != nil {
		printOpenFailure(printer, openErr)
		return openErr
	}

	if err := remember(reg, m.SourceID, m.Selection.Params); err != nil {
		logging.Warn("Failed to save config", zap.Error(err))
	}
	printOpenResult(printer, result)
	return nil
}

// remember records a successful selection in the config file. Secret
// parameters are not written; --last callers pass them again with --param.
func remember(reg *config.Registry, id string, params map[string]string) error {
	kept := maps.Clone(params)
	maps.DeleteFunc(kept, func(k, _ string) bool {
		return logging.IsSecretParam(k)
	})
	reg.RecordSelection(id, kept, time.Now())
	return reg.Save()
}

func printOpenResult(printer *ui.Printer, result *player.Result) {
	if result == nil {
		return
	}
	details := maps.Clone(result.Details)
	if details == nil {
		details = make(map[string]string)
	}
	details["source"] = result.SourceID
	if !result.Verified {
		printer.PrintWarning(result.Summary+" (not verified)", details)
		return
	}
	printer.PrintSuccess(result.Summary, details)
}

func printOpenFailure(printer *ui.Printer, err error) {
	_, tips := ui.SplitHint(player.GetTroubleshootingHint(err))
	printer.PrintFailure(player.GetShortErrorMessage(err), err, tips)
}

// sourcesCmd lists the catalog
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the data sources the dialog offers",
	Long: `List every data source in dialog order: enabled sources first, then
disabled ones with the reason they cannot be opened.

Includes connectors defined in the config file.`,
	RunE: runSources,
}

func runSources(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintSources(connection.EnabledFirst(reg.Catalog()))

	if reg.ActiveSource != "" {
		printer.Newline()
		printer.Println(fmt.Sprintf("Last opened: %s", reg.ActiveSource))
	}
	return nil
}

// scanCmd discovers WebSocket servers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Foxglove WebSocket servers on the network",
	Long: `Scan for Foxglove WebSocket servers using mDNS/DNS-SD discovery.

Every server found is offered in the connection dialog as its own source.`,
	Example: `  # Scan for 5 seconds (default)
  vizconnect scan

  # Longer scan for busy networks
  vizconnect scan --timeout 15`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Scan", "vizconnect scan", map[string]string{
		"service": discovery.ServiceType,
		"timeout": fmt.Sprintf("%ds", scanTimeout),
	})

	services, err := discovery.ScanForServices(cmd.Context(), time.Duration(scanTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		printer.PrintWarning("No servers found", map[string]string{
			"hint": "start one with 'vizconnect serve --advertise'",
		})
		return nil
	}

	printer.Println(fmt.Sprintf("Found %d server(s):", len(services)))
	printer.Newline()
	for _, svc := range services {
		printer.Println("  " + svc.String())
	}
	printer.Newline()
	printer.PrintSources(discovery.Descriptors(services))
	return nil
}

// openCmd opens a source without the dialog
var openCmd = &cobra.Command{
	Use:   "open <source-id>",
	Short: "Open a source without the dialog",
	Long: `Open a source non-interactively.

Parameters start from the source's defaults (or the last used values with
--last) and are overridden by --param. Each value is validated the same way
the dialog validates it.`,
	Example: `  # Open the local Foxglove WebSocket server
  vizconnect open foxglove-websocket

  # Open a rosbridge server on another machine
  vizconnect open rosbridge-websocket --param url=ws://robot.local:9090

  # Reuse the parameters from the last time
  vizconnect open remote-file --last`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringArrayVarP(&openParams, "param", "p", nil, "Parameter as key=value (repeatable)")
	openCmd.Flags().BoolVar(&openLast, "last", false, "Start from the parameters used last time")
}

func runOpen(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	catalog := reg.Catalog()
	d, ok := source.Find(catalog, args[0])
	if !ok {
		return fmt.Errorf("unknown source %q (see 'vizconnect sources')", args[0])
	}

	params, err := parseParams(openParams)
	if err != nil {
		return err
	}
	if openLast {
		if last, ok := reg.LastParams(d.ID); ok {
			maps.Copy(last, params)
			params = last
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	session := player.NewSession(ctx, player.DefaultDrivers()...)

	var opened source.Selection
	runner := ui.NewRunner(ui.RunnerConfig{
		Title:     "Open " + d.DisplayName,
		Command:   "vizconnect open " + d.ID,
		Params:    logging.RedactParams(params),
		StepNames: []string{"Validate parameters", "Hand off selection", "Verify source"},
		Troubleshoot: func(err error) []string {
			_, tips := ui.SplitHint(player.GetTroubleshootingHint(err))
			return tips
		},
		Output: cmd.OutOrStdout(),
	})

	_, err = runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) (map[string]string, error) {
		panel := connection.New(catalog, &d)

		onStep(1, ui.StepRunning, "")
		if err := applyParams(panel, d, params); err != nil {
			onStep(1, ui.StepFailed, "")
			return nil, err
		}
		onStep(1, ui.StepComplete, fmt.Sprintf("%d value(s)", len(panel.Values())))

		onStep(2, ui.StepRunning, "")
		if !panel.Open(session) {
			onStep(2, ui.StepFailed, "")
			return nil, fmt.Errorf("%s cannot be opened with these parameters", d.DisplayName)
		}
		_, opened, _ = session.Current()
		onStep(2, ui.StepComplete, "")

		onStep(3, ui.StepRunning, "")
		result, err := session.Wait(ctx)
		if err != nil {
			onStep(3, ui.StepFailed, "")
			return nil, err
		}
		if !result.Verified {
			onStep(3, ui.StepSkipped, "no check available")
		} else {
			onStep(3, ui.StepComplete, result.Duration().Round(time.Millisecond).String())
		}

		details := maps.Clone(result.Details)
		if details == nil {
			details = make(map[string]string)
		}
		details["result"] = result.Summary
		return details, nil
	})
	if err != nil {
		return err
	}

	if err := remember(reg, d.ID, opened.Params); err != nil {
		logging.Warn("Failed to save config", zap.Error(err))
	}
	return nil
}

// parseParams parses repeated key=value flags
func parseParams(raw []string) (map[string]string, error) {
	params := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q (want key=value)", kv)
		}
		params[key] = value
	}
	return params, nil
}

// applyParams sets params on the panel the way the dialog's form fields do:
// invalid values are recorded as field errors and leave the value unchanged.
func applyParams(panel *connection.Panel, d source.Descriptor, params map[string]string) error {
	if d.Disabled() {
		reason := *d.DisabledReason
		if reason == "" {
			reason = "it is disabled"
		}
		return source.NewValidationError(fmt.Sprintf("%s cannot be opened: %s", d.DisplayName, reason))
	}

	for _, id := range slices.Sorted(maps.Keys(params)) {
		f, ok := d.Field(id)
		if !ok {
			return source.NewFieldError(id, fmt.Sprintf("%s has no parameter %q", d.DisplayName, id))
		}
		validate, err := source.ValidatorFor(f.Validate)
		if err != nil {
			return err
		}
		if err := validate(params[id]); err != nil {
			panel.SetFieldError(id, source.UserMessage(err))
			continue
		}
		panel.SetFieldValue(id, params[id])
	}

	errs := panel.Errors()
	if len(errs) == 0 {
		return nil
	}
	var joined []error
	for _, id := range slices.Sorted(maps.Keys(errs)) {
		joined = append(joined, source.NewFieldError(id, errs[id]))
	}
	return errors.Join(joined...)
}

// serveCmd runs the demo WebSocket server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a demo Foxglove WebSocket server",
	Long: `Run a small Foxglove WebSocket server that greets clients with
serverInfo. With --advertise it announces itself over mDNS, so
'vizconnect scan' and the dialog can find it.`,
	Example: `  # Serve on the default port
  vizconnect serve

  # Serve and announce over mDNS
  vizconnect serve --advertise --name "lab bench"`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", discovery.DefaultPort, "Listen port")
	serveCmd.Flags().StringVar(&serveName, "name", server.DefaultName, "Server name sent in serverInfo")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Announce the server over mDNS")
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(&server.Config{
		Host:      serveHost,
		Port:      servePort,
		Name:      serveName,
		Advertise: serveAdvertise,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Serve", "vizconnect serve", map[string]string{
		"address":   fmt.Sprintf("%s:%d", serveHost, servePort),
		"name":      serveName,
		"advertise": fmt.Sprintf("%t", serveAdvertise),
	})
	printer.Println("Press Ctrl+C to stop.")

	if err := srv.Start(cmd.Context()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
