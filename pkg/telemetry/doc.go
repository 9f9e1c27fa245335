// Package telemetry groups the observability subpackages: metrics for
// Prometheus instrumentation, logging for structured slog setup, and
// health for liveness and readiness probes.
package telemetry
