// Package logging builds structured slog loggers from the Praetor
// logging configuration.
//
// The rest of the codebase obtains component loggers with
// slog.Default().With("component", ...), so installing the configured
// logger as the process default via Setup is enough to route every
// component through it.
package logging
