// Package directory resolves actor identities to display names. The engine
// treats the directory as an external collaborator; this implementation keeps
// the mapping in memory and is seeded at startup from configuration or by an
// upstream provisioning call.
package directory

import (
	"context"
	"sync"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
)

var _ ports.UserDirectory = &InMemoryUserDirectory{}

// InMemoryUserDirectory maps user identifiers to display names.
type InMemoryUserDirectory struct {
	mu    sync.RWMutex
	names map[kernel.UUID]string
}

func NewInMemoryUserDirectory() *InMemoryUserDirectory {
	return &InMemoryUserDirectory{names: make(map[kernel.UUID]string)}
}

// Register adds or replaces a user's display name.
func (d *InMemoryUserDirectory) Register(id kernel.UUID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[id] = name
}

// ResolveUser returns the display name of a user, or an ObjectNotFoundError
// when the user is unknown. Callers use the name for display only and may
// ignore the error.
func (d *InMemoryUserDirectory) ResolveUser(_ context.Context, id kernel.UUID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name, ok := d.names[id]
	if !ok {
		return "", errs.NewObjectNotFoundError("user", id)
	}
	return name, nil
}
