// Package dedupe defines the interface for ingestion idempotency tracking.
//
// Every match must be aggregated exactly once: season files occasionally
// overlap at year boundaries, so the load pipeline consults a seen-set
// keyed by match ID before applying a row.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen match IDs to ensure exactly-once aggregation.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the number of recorded IDs.
	Size() int64
}

// Option applies a configuration option to the InMemorySeenSet.
type Option func(*InMemorySeenSet)

// WithSizeHint pre-sizes the set for an expected number of IDs.
func WithSizeHint(n int) Option {
	return func(s *InMemorySeenSet) {
		if n > 0 {
			s.hint = n
		}
	}
}

// InMemorySeenSet implements Deduper with a mutex-guarded map. A seen-set
// lives for exactly one load and is discarded with the dataset, so there
// is no eviction.
type InMemorySeenSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
	hint int
}

// NewInMemorySeenSet creates a seen-set with configuration options.
func NewInMemorySeenSet(opts ...Option) *InMemorySeenSet {
	s := &InMemorySeenSet{}
	for _, opt := range opts {
		opt(s)
	}
	s.seen = make(map[string]struct{}, s.hint)
	return s
}

// SeenAndRecord atomically checks if id was seen and records it if not.
func (s *InMemorySeenSet) SeenAndRecord(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[id]; ok {
		return true
	}
	s.seen[id] = struct{}{}
	return false
}

// Size returns the number of recorded IDs.
func (s *InMemorySeenSet) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.seen))
}
