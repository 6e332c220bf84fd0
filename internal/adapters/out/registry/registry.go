// Package registry validates final storage targets for archived items. The
// archive operation consults the registry before accepting a location
// reference, so an unknown shelf or cabinet is rejected up front instead of
// surfacing later as a dangling pointer in the archive record.
package registry

import (
	"context"
	"sync"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
)

var _ ports.ArchiveLocationRegistry = &InMemoryLocationRegistry{}

// InMemoryLocationRegistry keeps the set of known archive locations in memory.
type InMemoryLocationRegistry struct {
	mu        sync.RWMutex
	locations map[kernel.UUID]struct{}
}

func NewInMemoryLocationRegistry() *InMemoryLocationRegistry {
	return &InMemoryLocationRegistry{locations: make(map[kernel.UUID]struct{})}
}

// Register adds a location to the set of valid archive targets.
func (r *InMemoryLocationRegistry) Register(id kernel.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations[id] = struct{}{}
}

// LocationExists reports whether the location is a known archive target.
func (r *InMemoryLocationRegistry) LocationExists(_ context.Context, id kernel.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.locations[id]
	return ok, nil
}
