// Package handlercmd serves the interactive and utility actions
// cli/seed/health/conninfo.
//
// Each invocation picks one concrete handler: an executable found under the
// engine's cmd/ directory or the shared common/cmd/ directory, then an
// in-process builtin bound in the manifest, then (for conninfo only) a
// printout of the manifest's connection keys.
package handlercmd
