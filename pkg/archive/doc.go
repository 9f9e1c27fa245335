// Package archive keeps an append-only history of statute lifecycle
// events. Every registration, amendment, and supersession is recorded
// with a UUID, an actor, a SHA-256 payload hash, and a timestamp, so
// the provenance of a statute can be reconstructed after the fact.
//
// Two storage backends are provided: an in-memory one for tests and a
// SQLite one for durable history. A Pruner with an optional cron
// Scheduler enforces the retention window.
package archive
