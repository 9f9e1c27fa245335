package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"veritas-hq/praetor/pkg/sdl/ast"
)

// EventType categorizes what happened to a statute.
type EventType string

const (
	// EventRegistered records a statute version entering the registry.
	EventRegistered EventType = "registered"

	// EventAmended records an AMENDMENT clause targeting a statute.
	EventAmended EventType = "amended"

	// EventSuperseded records a statute being superseded by another.
	EventSuperseded EventType = "superseded"
)

// Record is one append-only history entry. Records are immutable once
// written; the payload hash lets auditors verify the stored statute was
// not altered after the fact.
type Record struct {
	// RecordID is a UUIDv4 unique to this entry.
	RecordID string

	// StatuteID is the statute the event concerns.
	StatuteID string

	// Version is the statute version at the time of the event.
	Version int

	// Event is what happened.
	Event EventType

	// Actor is the statute that caused the event, for amended and
	// superseded events. Empty for registrations.
	Actor string

	// Detail is free text, e.g. the amendment description.
	Detail string

	// Payload is the statute serialized as JSON at event time, and
	// PayloadHash its hex-encoded SHA-256.
	Payload     []byte
	PayloadHash string

	// Timestamp is when the record was written, UTC.
	Timestamp time.Time
}

// Storage is the persistence interface for history records.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Append writes one record. Records are never updated or replaced.
	Append(ctx context.Context, record *Record) error

	// ListByStatute returns the records for one statute id, oldest first.
	ListByStatute(ctx context.Context, statuteID string) ([]*Record, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int, error)

	// PruneOlderThan deletes records with a timestamp before the cutoff
	// and returns how many were deleted.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases storage resources.
	Close() error
}

// HashPayload computes the hex-encoded SHA-256 of a payload. Empty
// payloads hash to the empty string.
func HashPayload(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Recorder builds and appends history records.
type Recorder struct {
	storage Storage
}

// NewRecorder creates a recorder writing to the given storage.
func NewRecorder(storage Storage) *Recorder {
	return &Recorder{storage: storage}
}

// RecordRegistered appends a registration entry for a statute.
func (r *Recorder) RecordRegistered(ctx context.Context, statute *ast.StatuteNode) (*Record, error) {
	return r.record(ctx, statute, EventRegistered, "", "")
}

// RecordAmended appends an amendment entry: actor amended the target
// statute with the given description.
func (r *Recorder) RecordAmended(ctx context.Context, target *ast.StatuteNode, actor, detail string) (*Record, error) {
	return r.record(ctx, target, EventAmended, actor, detail)
}

// RecordSuperseded appends a supersession entry: actor superseded the
// target statute.
func (r *Recorder) RecordSuperseded(ctx context.Context, target *ast.StatuteNode, actor string) (*Record, error) {
	return r.record(ctx, target, EventSuperseded, actor, "")
}

func (r *Recorder) record(ctx context.Context, statute *ast.StatuteNode, event EventType, actor, detail string) (*Record, error) {
	payload, err := json.Marshal(statute)
	if err != nil {
		return nil, fmt.Errorf("failed to encode statute %q: %w", statute.ID, err)
	}

	record := &Record{
		RecordID:    uuid.NewString(),
		StatuteID:   statute.ID,
		Version:     statute.Version,
		Event:       event,
		Actor:       actor,
		Detail:      detail,
		Payload:     payload,
		PayloadHash: HashPayload(payload),
		Timestamp:   time.Now().UTC(),
	}

	if err := r.storage.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append %s record for %q: %w", event, statute.ID, err)
	}
	return record, nil
}
