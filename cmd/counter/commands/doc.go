// Package commands defines the counter CLI.
//
// Commands
//
//   - serve   Serve the web surface, the JSON API and metrics
//   - tui     Drive the counter from the terminal
//   - both    Serve the web surface and run the terminal UI on one shared counter
//
// # Implementation
//
// The root command loads the configuration and configures logging before any
// subcommand runs. Each subcommand builds its own App, so every surface it
// starts shares one counter.
package commands
