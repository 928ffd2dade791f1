package eventlog

import (
	"context"
	"sync"
)

// Store persists event streams.
type Store interface {
	// Append adds events to a stream. expectedVersion is the sequence
	// number of the last event the caller has seen, or -1 for a stream
	// expected not to exist; on mismatch ErrConcurrencyConflict is
	// returned. The new stream version is returned on success.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns the events of a stream with Seq >= from, in order.
	Read(ctx context.Context, stream string, from int) ([]*Event, error)

	// StreamVersion returns the last sequence number of a stream, or -1
	// if the stream does not exist.
	StreamVersion(ctx context.Context, stream string) (int, error)

	// Streams returns the identifiers of all stored streams.
	Streams(ctx context.Context) ([]string, error)

	// Close releases any underlying resources.
	Close() error
}

// MemoryStore is an in-memory Store, suitable for tests and for recording
// a single process run.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	order   []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]*Event),
	}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.streams[stream]
	current := len(existing) - 1
	if current != expectedVersion {
		return 0, ErrConcurrencyConflict
	}
	if !ok {
		s.order = append(s.order, stream)
	}
	for i, e := range events {
		copied := *e
		copied.Stream = stream
		copied.Seq = expectedVersion + 1 + i
		s.streams[stream] = append(s.streams[stream], &copied)
	}
	return len(s.streams[stream]) - 1, nil
}

// Read implements Store.
func (s *MemoryStore) Read(ctx context.Context, stream string, from int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.streams[stream] {
		if e.Seq >= from {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// StreamVersion implements Store.
func (s *MemoryStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

// Streams implements Store.
func (s *MemoryStore) Streams(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

// Close implements Store; it is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
