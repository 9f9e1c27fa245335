// Package config defines Praetor's configuration model and loading.
//
// Configuration is read from a YAML file, filled in with defaults,
// overlaid with PRAETOR_* environment variables, and validated. All
// validation errors are collected and reported together rather than
// failing on the first problem.
//
// Example configuration file:
//
//	sources:
//	  paths:
//	    - ./statutes
//	  watch: true
//	  debounce_interval: 100ms
//
//	store:
//	  backend: sqlite
//	  path: data/statutes.db
//
//	archive:
//	  enabled: true
//	  backend: sqlite
//	  path: data/history.db
//	  retention_days: 365
//	  prune_schedule: "0 3 * * *"
//
//	metrics:
//	  enabled: true
//	  listen_address: 127.0.0.1:9090
//
//	logging:
//	  level: info
//	  format: text
package config
