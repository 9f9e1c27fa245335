// Package cli provides helpers shared by the praetor commands: output
// formatting, signal-aware contexts, and command error types.
package cli
