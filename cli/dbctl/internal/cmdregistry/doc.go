// Package cmdregistry defines the closed set of actions the CLI accepts, the
// engine alias table, and the strategy table that maps each action to a typed
// handler. Handlers receive a shared Context payload, so command
// implementations live in separate packages while main.go stays focused on
// argument parsing.
package cmdregistry
