// Package runner centralizes helpers that execute compose and handler
// commands against the selected container runtime.
//
// These wrappers keep consistent dry-run tracing and exit-status handling
// across the CLI: a child's non-zero status is handed back unchanged so the
// dispatcher can exit with it.
package runner
