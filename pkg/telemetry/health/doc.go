// Package health provides liveness and readiness probes for the Praetor
// registry service.
//
// Components register CheckFunc callbacks with a Checker; the readiness
// endpoint runs them all concurrently with a per-check timeout and
// answers 503 while any component is unhealthy. Liveness never runs
// component checks, so a wedged store cannot make the orchestrator
// restart the process.
package health
