package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"veritas-hq/praetor/pkg/sdl/ast"
)

// Registry is a thread-safe in-memory index of loaded statutes, keyed by
// statute id. Reloads replace a source's statutes atomically.
type Registry struct {
	mu       sync.RWMutex
	statutes map[string]*entry
	version  string
	loadTime time.Time
}

// entry tracks a registered statute together with the source it came from.
type entry struct {
	statute *ast.StatuteNode
	source  string
}

// RegistryError describes a registry operation failure.
type RegistryError struct {
	StatuteID string
	Operation string
	Message   string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.StatuteID != "" {
		return fmt.Sprintf("registry %s %q: %s", e.Operation, e.StatuteID, e.Message)
	}
	return fmt.Sprintf("registry %s: %s", e.Operation, e.Message)
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		statutes: make(map[string]*entry),
		loadTime: time.Now(),
	}
}

// RegisterDocument adds every statute of a parsed document under the
// given source name. A statute id already registered from a different
// source is an error; re-registering from the same source replaces the
// previous version.
func (r *Registry) RegisterDocument(doc *ast.Document, source string) error {
	if doc == nil {
		return &RegistryError{Operation: "register", Message: "document cannot be nil"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range doc.Statutes {
		statute := &doc.Statutes[i]
		if statute.ID == "" {
			return &RegistryError{Operation: "register", Message: "statute id cannot be empty"}
		}
		if existing, ok := r.statutes[statute.ID]; ok && existing.source != source {
			return &RegistryError{
				StatuteID: statute.ID,
				Operation: "register",
				Message:   fmt.Sprintf("already registered from %s", existing.source),
			}
		}
	}

	for i := range doc.Statutes {
		statute := &doc.Statutes[i]
		r.statutes[statute.ID] = &entry{statute: statute, source: source}
	}

	r.updateVersion()
	return nil
}

// Unregister removes a statute by id.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.statutes[id]; !ok {
		return &RegistryError{StatuteID: id, Operation: "unregister", Message: "statute not found"}
	}
	delete(r.statutes, id)
	r.updateVersion()
	return nil
}

// RemoveSource drops every statute registered under the given source and
// returns how many were removed. Used when a watched file disappears or
// before re-registering its new contents.
func (r *Registry) RemoveSource(source string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.statutes {
		if e.source == source {
			delete(r.statutes, id)
			removed++
		}
	}
	if removed > 0 {
		r.updateVersion()
	}
	return removed
}

// Get retrieves a statute by id.
func (r *Registry) Get(id string) (*ast.StatuteNode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.statutes[id]
	if !ok {
		return nil, false
	}
	return e.statute, true
}

// Source returns the source name a statute was registered from.
func (r *Registry) Source(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.statutes[id]
	if !ok {
		return "", false
	}
	return e.source, true
}

// List returns all registered statutes sorted by id.
func (r *Registry) List() []*ast.StatuteNode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ast.StatuteNode, 0, len(r.statutes))
	for _, e := range r.statutes {
		out = append(out, e.statute)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered statutes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.statutes)
}

// Superseded returns the ids of statutes that some other registered
// statute supersedes, sorted.
func (r *Registry) Superseded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := make(map[string]struct{})
	for _, e := range r.statutes {
		for _, target := range e.statute.Supersedes {
			if _, ok := r.statutes[target]; ok {
				set[target] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MissingRequirements returns, per statute id, the REQUIRES targets that
// are not registered. Statutes with all requirements satisfied are
// absent from the result.
func (r *Registry) MissingRequirements() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	missing := make(map[string][]string)
	for id, e := range r.statutes {
		for _, required := range e.statute.Requires {
			if _, ok := r.statutes[required]; !ok {
				missing[id] = append(missing[id], required)
			}
		}
	}
	return missing
}

// Version returns an opaque fingerprint of the registry contents. It
// changes whenever the set of registered statutes changes.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// LoadTime returns when the registry contents last changed.
func (r *Registry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadTime
}

// updateVersion recomputes the content fingerprint. Caller holds the lock.
func (r *Registry) updateVersion() {
	ids := make([]string, 0, len(r.statutes))
	for id := range r.statutes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		e := r.statutes[id]
		fmt.Fprintf(h, "%s:%d:%s\n", id, e.statute.Version, e.source)
	}
	r.version = hex.EncodeToString(h.Sum(nil)[:8])
	r.loadTime = time.Now()
}
