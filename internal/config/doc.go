// Package config provides user configuration management for vizconnect.
//
// This package manages a YAML-based configuration file that stores the last
// opened data source, recently used connection parameters, user-defined
// connectors, and application preferences. The configuration follows
// OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/vizconnect/config.yaml or $HOME/.config/vizconnect/config.yaml
//   - macOS: $HOME/.config/vizconnect/config.yaml
//   - Windows: %LOCALAPPDATA%\vizconnect\config.yaml
//
// # Custom Connectors
//
// Connectors listed under "connectors" are appended to the built-in ones in
// the dialog. A custom connector with a built-in ID replaces that built-in:
//
//	version: 1
//	connectors:
//	  - id: lab-robot
//	    display_name: Lab robot
//	    icon: "◆"
//	    description: Foxglove bridge on the lab robot.
//	    form:
//	      fields:
//	        - id: url
//	          label: WebSocket URL
//	          default: ws://lab-robot.local:8765
//	          validate: url:ws,wss
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry.RecordSelection("foxglove-websocket", params, time.Now())
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
