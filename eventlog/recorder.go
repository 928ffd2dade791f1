package eventlog

import (
	"context"
	"sync"
)

// Recorder appends construction and query events to one stream of a
// store. It satisfies the recorder hook the closure explorer and the DFA
// builder accept. Store failures do not interrupt the recorded
// computation; the first failure is retained and reported by Err.
type Recorder struct {
	store  Store
	stream string

	mu      sync.Mutex
	version int
	err     error
}

// NewRecorder creates a recorder writing to a fresh UUID stream.
func NewRecorder(store Store) *Recorder {
	return &Recorder{
		store:   store,
		stream:  NewStreamID(),
		version: -1,
	}
}

// Stream returns the stream identifier this recorder appends to.
func (r *Recorder) Stream() string {
	return r.stream
}

// Record implements the recorder hook.
func (r *Recorder) Record(eventType string, data map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	event := NewEvent(r.stream, eventType, data)
	version, err := r.store.Append(context.Background(), r.stream, r.version, []*Event{event})
	if err != nil {
		r.err = err
		return
	}
	r.version = version
}

// Err returns the first store failure encountered, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
