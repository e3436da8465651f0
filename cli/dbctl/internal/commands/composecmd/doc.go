// Package composecmd covers the compose lifecycle actions
// up/down/logs/ps/restart.
//
// Each runs the engine's compose file under the runtime's compose
// subcommand; handlers are registered with the CLI command registry so
// `main.go` stays focused on argument parsing.
package composecmd
