package item_test

import (
	"testing"
	"time"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidReference(t *testing.T) kernel.ReferenceNumber {
	t.Helper()
	ref, err := kernel.GenerateReferenceNumber(time.Now().UTC(), kernel.NewUUID())
	require.NoError(t, err)
	return ref
}

func newValidItem(t *testing.T, creator kernel.UUID) *item.TrackedItem {
	t.Helper()
	it, err := item.NewTrackedItem(
		kernel.NewUUID(), newValidReference(t),
		"Signed contract", "original copy", "contract", "proj-7",
		item.PriorityNormal, creator, time.Now().UTC())
	require.NoError(t, err)
	return it
}

func TestNewTrackedItem(t *testing.T) {
	validID := kernel.NewUUID()
	creator := kernel.NewUUID()
	creationDate := time.Now().UTC()

	t.Run("should create valid item with all valid parameters", func(t *testing.T) {
		ref := newValidReference(t)
		it, err := item.NewTrackedItem(
			validID, ref, "Signed contract", "original copy", "contract", "proj-7",
			item.PriorityUrgent, creator, creationDate)

		require.NoError(t, err)
		require.NotNil(t, it)
		require.NoError(t, it.Validate())
		assert.True(t, it.ID().IsEqual(validID))
		assert.Equal(t, ref, it.ReferenceNumber())
		assert.Equal(t, "Signed contract", it.Subject())
		assert.Equal(t, item.PriorityUrgent, it.Priority())
		assert.Equal(t, item.StatusActive, it.Status())
		assert.True(t, it.CreatedBy().IsEqual(creator))
		assert.True(t, it.CurrentHolder().IsEqual(creator), "creator starts as holder")
		assert.Nil(t, it.ArchiveLocation())
		assert.Equal(t, 1, it.Version())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		it, err := item.NewTrackedItem(
			invalidID, newValidReference(t), "Signed contract", "", "", "",
			item.PriorityNormal, creator, creationDate)

		require.Error(t, err)
		assert.Nil(t, it)
	})

	t.Run("should fail with empty subject", func(t *testing.T) {
		it, err := item.NewTrackedItem(
			validID, newValidReference(t), "", "", "", "",
			item.PriorityNormal, creator, creationDate)

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with invalid priority", func(t *testing.T) {
		it, err := item.NewTrackedItem(
			validID, newValidReference(t), "Signed contract", "", "", "",
			item.PriorityUnknown, creator, creationDate)

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with zero creation date", func(t *testing.T) {
		it, err := item.NewTrackedItem(
			validID, newValidReference(t), "Signed contract", "", "", "",
			item.PriorityNormal, creator, time.Time{})

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestTrackedItem_TransferTo(t *testing.T) {
	t.Run("should hand custody to the target and bump the version", func(t *testing.T) {
		creator := kernel.NewUUID()
		target := kernel.NewUUID()
		it := newValidItem(t, creator)

		err := it.TransferTo(target)

		require.NoError(t, err)
		assert.True(t, it.IsHeldBy(target))
		assert.False(t, it.IsHeldBy(creator))
		assert.Equal(t, 2, it.Version())
	})

	t.Run("should reject transfer to the current holder", func(t *testing.T) {
		creator := kernel.NewUUID()
		it := newValidItem(t, creator)

		err := it.TransferTo(creator)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, it.IsHeldBy(creator))
	})

	t.Run("should reject transfer to an invalid target", func(t *testing.T) {
		it := newValidItem(t, kernel.NewUUID())

		err := it.TransferTo(kernel.UUID{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject transfer on an archived item", func(t *testing.T) {
		creator := kernel.NewUUID()
		it := newValidItem(t, creator)
		require.NoError(t, it.Archive(kernel.NewUUID(), "", ""))

		err := it.TransferTo(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, it.IsHeldBy(creator))
	})
}

func TestTrackedItem_AcknowledgeReceipt(t *testing.T) {
	t.Run("should keep the holder and bump the version", func(t *testing.T) {
		creator := kernel.NewUUID()
		it := newValidItem(t, creator)

		err := it.AcknowledgeReceipt()

		require.NoError(t, err)
		assert.True(t, it.IsHeldBy(creator))
		assert.Equal(t, 2, it.Version())
	})

	t.Run("should reject receipt on an archived item", func(t *testing.T) {
		it := newValidItem(t, kernel.NewUUID())
		require.NoError(t, it.Archive(kernel.NewUUID(), "", ""))

		err := it.AcknowledgeReceipt()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTrackedItem_Archive(t *testing.T) {
	t.Run("should archive with location and physical note", func(t *testing.T) {
		it := newValidItem(t, kernel.NewUUID())
		locationID := kernel.NewUUID()

		err := it.Archive(locationID, "shelf B3", "scan-0042.pdf")

		require.NoError(t, err)
		assert.True(t, it.IsArchived())
		assert.Equal(t, item.StatusArchived, it.Status())
		require.NotNil(t, it.ArchiveLocation())
		assert.True(t, it.ArchiveLocation().IsEqual(locationID))
		assert.Equal(t, "shelf B3", it.PhysicalLocationNote())
		assert.Equal(t, "scan-0042.pdf", it.AttachmentRef())
		assert.Equal(t, 2, it.Version())
	})

	t.Run("should keep an existing attachment when none is supplied", func(t *testing.T) {
		it := newValidItem(t, kernel.NewUUID())
		require.NoError(t, it.AttachReference("scan-0001.pdf"))

		require.NoError(t, it.Archive(kernel.NewUUID(), "", ""))

		assert.Equal(t, "scan-0001.pdf", it.AttachmentRef())
	})

	t.Run("should reject archiving twice", func(t *testing.T) {
		it := newValidItem(t, kernel.NewUUID())
		require.NoError(t, it.Archive(kernel.NewUUID(), "", ""))

		err := it.Archive(kernel.NewUUID(), "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require an archive location", func(t *testing.T) {
		it := newValidItem(t, kernel.NewUUID())

		err := it.Archive(kernel.UUID{}, "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.False(t, it.IsArchived())
	})
}

func TestRestoreTrackedItem(t *testing.T) {
	id := kernel.NewUUID()
	creator := kernel.NewUUID()
	holder := kernel.NewUUID()
	creationDate := time.Now().UTC()

	t.Run("should restore an active item", func(t *testing.T) {
		it, err := item.RestoreTrackedItem(
			id, newValidReference(t), "Signed contract", "", "contract", "",
			item.PriorityNormal, item.StatusActive, creator, creationDate,
			holder, nil, "", "", 3)

		require.NoError(t, err)
		require.NoError(t, it.Validate())
		assert.True(t, it.IsHeldBy(holder))
		assert.Equal(t, 3, it.Version())
	})

	t.Run("should restore an archived item with its location", func(t *testing.T) {
		locationID := kernel.NewUUID()

		it, err := item.RestoreTrackedItem(
			id, newValidReference(t), "Signed contract", "", "", "",
			item.PriorityNormal, item.StatusArchived, creator, creationDate,
			holder, &locationID, "shelf B3", "", 5)

		require.NoError(t, err)
		assert.True(t, it.IsArchived())
		require.NotNil(t, it.ArchiveLocation())
		assert.True(t, it.ArchiveLocation().IsEqual(locationID))
	})

	t.Run("should reject an archived item without a location", func(t *testing.T) {
		_, err := item.RestoreTrackedItem(
			id, newValidReference(t), "Signed contract", "", "", "",
			item.PriorityNormal, item.StatusArchived, creator, creationDate,
			holder, nil, "", "", 5)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a non-positive version", func(t *testing.T) {
		_, err := item.RestoreTrackedItem(
			id, newValidReference(t), "Signed contract", "", "", "",
			item.PriorityNormal, item.StatusActive, creator, creationDate,
			holder, nil, "", "", 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		_, err := item.RestoreTrackedItem(
			id, newValidReference(t), "Signed contract", "", "", "",
			item.PriorityNormal, item.StatusUnknown, creator, creationDate,
			holder, nil, "", "", 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTrackedItem_Validate(t *testing.T) {
	t.Run("should reject an item not built via constructor", func(t *testing.T) {
		var it item.TrackedItem

		err := it.Validate()

		require.Error(t, err)
	})

	t.Run("should reject a nil item", func(t *testing.T) {
		var it *item.TrackedItem

		err := it.Validate()

		require.Error(t, err)
	})
}
