package store

import (
	"context"
	"fmt"
	"time"

	"veritas-hq/praetor/pkg/sdl/ast"
)

// Record is one persisted statute: searchable metadata columns plus the
// full statute node as a JSON payload.
type Record struct {
	// ID is the statute id.
	ID string

	// Jurisdiction mirrors the statute's JURISDICTION clause.
	Jurisdiction string

	// Version mirrors the statute's VERSION clause.
	Version int

	// EffectiveDate and ExpiryDate bound the statute's validity window,
	// as written in the source (empty when absent).
	EffectiveDate string
	ExpiryDate    string

	// Statute is the full parsed node.
	Statute *ast.StatuteNode

	// CreatedAt is when the record was first saved; UpdatedAt when it
	// was last replaced.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	// Jurisdiction matches records with this exact jurisdiction.
	Jurisdiction string

	// ActiveOn keeps records whose validity window contains the date
	// (lexicographic ISO comparison; open bounds always match).
	ActiveOn string
}

// Backend is the persistence interface for statutes. Implementations
// must be safe for concurrent use.
type Backend interface {
	// Save persists a record, replacing any record with the same id.
	Save(ctx context.Context, record *Record) error

	// Get retrieves a record by statute id. Returns ErrNotFound if the
	// record does not exist.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records matching the filter, sorted by id.
	List(ctx context.Context, filter Filter) ([]*Record, error)

	// Delete removes a record by id. Returns ErrNotFound if the record
	// does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources. The backend must not be used
	// afterwards.
	Close() error
}

// ErrNotFound is returned when a requested statute record does not exist.
var ErrNotFound = fmt.Errorf("statute record not found")

// NewRecord builds a record from a parsed statute, stamping both
// timestamps with now. Save backends preserve CreatedAt on replacement.
func NewRecord(statute *ast.StatuteNode) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:            statute.ID,
		Jurisdiction:  statute.Jurisdiction,
		Version:       statute.Version,
		EffectiveDate: statute.EffectiveDate,
		ExpiryDate:    statute.ExpiryDate,
		Statute:       statute,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// matches reports whether a record passes the filter.
func (f Filter) matches(r *Record) bool {
	if f.Jurisdiction != "" && r.Jurisdiction != f.Jurisdiction {
		return false
	}
	if f.ActiveOn != "" {
		if r.EffectiveDate != "" && r.EffectiveDate > f.ActiveOn {
			return false
		}
		if r.ExpiryDate != "" && r.ExpiryDate < f.ActiveOn {
			return false
		}
	}
	return true
}
