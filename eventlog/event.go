// Package eventlog records machine construction and query history as
// append-only event streams. A stream collects the events of one build or
// query session; stores provide optimistic-concurrency persistence in
// memory or SQLite, and JSONL read/write covers interchange with external
// tooling.
package eventlog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrConcurrencyConflict is returned when an append's expected version
// does not match the stream's current version.
var ErrConcurrencyConflict = errors.New("concurrency conflict: stream version mismatch")

// Event is a single record in a stream.
type Event struct {
	ID     string         `json:"id"`
	Stream string         `json:"stream"`
	Seq    int            `json:"seq"`
	Type   string         `json:"type"`
	At     time.Time      `json:"at"`
	Data   map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with a fresh UUID and the current time.
// Seq is assigned by the store on append.
func NewEvent(stream, eventType string, data map[string]any) *Event {
	return &Event{
		ID:     uuid.New().String(),
		Stream: stream,
		Type:   eventType,
		At:     time.Now().UTC(),
		Data:   data,
	}
}

// NewStreamID returns a fresh stream identifier.
func NewStreamID() string {
	return uuid.New().String()
}
