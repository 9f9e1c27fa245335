// Package metrics provides Prometheus instrumentation for the statute
// pipeline: parse outcomes and durations, warning counts, registry
// state, and archive activity.
//
// The Collector owns a dedicated Prometheus registry and exposes it
// through an HTTP handler in the exposition format. All recording
// methods are no-ops when metrics are disabled in the configuration.
package metrics
