// Package cli defines the Cobra command tree for the compkit CLI. Each file
// in this package registers one top-level command with the root command.
// Commands build a core.Core from the user's settings and only handle flag
// parsing and output formatting.
package cli
