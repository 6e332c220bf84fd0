package registry_test

import (
	"context"
	"testing"

	"custody/internal/adapters/out/registry"
	"custody/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InMemoryLocationRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("should know registered locations", func(t *testing.T) {
		reg := registry.NewInMemoryLocationRegistry()
		id := kernel.NewUUID()
		reg.Register(id)

		exists, err := reg.LocationExists(ctx, id)

		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("should not know unregistered locations", func(t *testing.T) {
		reg := registry.NewInMemoryLocationRegistry()

		exists, err := reg.LocationExists(ctx, kernel.NewUUID())

		require.NoError(t, err)
		assert.False(t, exists)
	})
}
