// Package store persists parsed statutes.
//
// A Record pairs searchable metadata columns (jurisdiction, version,
// validity window) with the full statute node as a JSON payload, so
// consumers can filter cheaply and still recover the complete tree.
// Two backends implement the Backend interface: MemoryBackend for tests
// and ephemeral runs, and SQLiteBackend for single-instance deployments
// that need statutes to survive restarts.
package store
