// Package registry maintains the in-memory index of loaded statutes.
//
// Loader reads SDL sources from the file system (or bytes) and parses
// them, tagging each load session with a unique id and collecting parser
// warnings per source. Registry indexes parsed statutes by id with
// atomic per-source replacement, and answers cross-statute questions:
// which statutes are superseded, and which REQUIRES targets are missing.
// Watcher keeps a registry in sync with a source directory through
// debounced fsnotify reloads; a failed reload keeps the last good state.
package registry
