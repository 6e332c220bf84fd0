package kernel_test

import (
	"testing"
	"time"

	"custody/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceNumber(t *testing.T) {
	t.Run("should create valid reference number", func(t *testing.T) {
		ref, err := kernel.NewReferenceNumber("CT-20260830-4F2A9C1B")

		require.NoError(t, err)
		require.NoError(t, ref.Validate())
		assert.Equal(t, "CT-20260830-4F2A9C1B", ref.String())
	})

	t.Run("should accept single segment", func(t *testing.T) {
		ref, err := kernel.NewReferenceNumber("REF001")

		require.NoError(t, err)
		assert.Equal(t, "REF001", ref.String())
	})

	t.Run("should reject empty value", func(t *testing.T) {
		_, err := kernel.NewReferenceNumber("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "referenceNumber")
	})

	t.Run("should reject lowercase value", func(t *testing.T) {
		_, err := kernel.NewReferenceNumber("ct-20260830-4f2a9c1b")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match the expected format")
	})

	t.Run("should reject leading or trailing dash", func(t *testing.T) {
		_, err := kernel.NewReferenceNumber("-CT-1")
		require.Error(t, err)

		_, err = kernel.NewReferenceNumber("CT-1-")
		require.Error(t, err)
	})

	t.Run("should reject over-long value", func(t *testing.T) {
		long := "A"
		for len(long) <= kernel.ReferenceNumberMaxLength {
			long += "A"
		}

		_, err := kernel.NewReferenceNumber(long)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "referenceNumber length")
	})
}

func TestGenerateReferenceNumber(t *testing.T) {
	t.Run("should derive date and suffix", func(t *testing.T) {
		id := kernel.NewUUID()
		now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

		ref, err := kernel.GenerateReferenceNumber(now, id)

		require.NoError(t, err)
		require.NoError(t, ref.Validate())
		assert.Contains(t, ref.String(), "CT-20260830-")
	})

	t.Run("should differ for different item ids", func(t *testing.T) {
		now := time.Now()

		ref1, err := kernel.GenerateReferenceNumber(now, kernel.NewUUID())
		require.NoError(t, err)
		ref2, err := kernel.GenerateReferenceNumber(now, kernel.NewUUID())
		require.NoError(t, err)

		assert.False(t, ref1.IsEqual(ref2))
	})

	t.Run("should fail for zero-value id", func(t *testing.T) {
		var id kernel.UUID

		_, err := kernel.GenerateReferenceNumber(time.Now(), id)
		require.Error(t, err)
	})
}

func TestReferenceNumber_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var ref kernel.ReferenceNumber

		err := ref.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reference number must be created")
	})

	t.Run("constructed value passes validation", func(t *testing.T) {
		ref, err := kernel.NewReferenceNumber("CT-1")
		require.NoError(t, err)
		require.NoError(t, ref.Validate())
	})
}
