package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type entry[T any] struct {
	value      T
	lastAccess time.Time
}

// Registry keeps live server-side state machines (quiz flows, workout
// sessions) addressable by a random id until they go idle.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	size    prometheus.Gauge
	now     func() time.Time
}

// New creates a registry. sizeGauge, when set, tracks the number of entries.
func New[T any](sizeGauge prometheus.Gauge) *Registry[T] {
	return &Registry[T]{
		entries: map[string]*entry[T]{},
		size:    sizeGauge,
		now:     time.Now,
	}
}

func (r *Registry[T]) Add(value T) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &entry[T]{value: value, lastAccess: r.now()}
	r.report()
	return id
}

// Get returns the entry and refreshes its last access time.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastAccess = r.now()
	return e.value, true
}

func (r *Registry[T]) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	r.report()
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// EvictIdle drops entries not accessed within maxIdle and reports how many went.
func (r *Registry[T]) EvictIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deadline := r.now().Add(-maxIdle)
	evicted := 0
	for id, e := range r.entries {
		if e.lastAccess.Before(deadline) {
			delete(r.entries, id)
			evicted++
		}
	}
	r.report()
	return evicted
}

func (r *Registry[T]) report() {
	if r.size != nil {
		r.size.Set(float64(len(r.entries)))
	}
}
