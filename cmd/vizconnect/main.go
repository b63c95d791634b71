// Vizconnect opens robotics data sources from the terminal.
//
// Running without arguments shows the connection dialog: pick a source,
// fill in its parameters, and open it. WebSocket servers announced over
// mDNS are added to the dialog while it is on screen. The last opened
// source and its parameters are remembered in the config file.
//
// Usage:
//
//	vizconnect [command] [flags]
//
// See 'vizconnect --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/vizconnect/internal/logging"
	"github.com/muurk/vizconnect/internal/version"
	"github.com/muurk/vizconnect/internal/wizard/tui"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
	logFile    string
	sourceID   string
	noDiscover bool
)

var rootCmd = &cobra.Command{
	Use:   "vizconnect",
	Short: "Open a connection to a robotics data source",
	Long: `Open a connection to a robotics data source.

Shows the connection dialog: a list of data sources (Foxglove WebSocket,
Rosbridge, ROS, Velodyne, remote files) with a parameter form for the
selected one. Open hands the parameters off and verifies the source is
reachable.

If no command is specified, the connection dialog launches automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(cmd)
	},
	RunE: runDialog,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <config dir>/vizconnect/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: stderr, or <config dir>/vizconnect.log for the dialog)")
	rootCmd.PersistentFlags().StringVar(&sourceID, "source", "", "Source to select initially (overrides the last opened source)")
	rootCmd.PersistentFlags().BoolVar(&noDiscover, "no-discover", false, "Do not scan the local network for WebSocket servers")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vizconnect %s\n%s\n", version.Full(), tui.GitHubFullURL)
	},
}
