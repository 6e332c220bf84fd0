// Package itemrepo provides data transfer objects and mapping functions for
// tracked item persistence. It implements the repository pattern for the item
// aggregate, handling conversion between domain entities and database rows.
package itemrepo

import (
	"time"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ItemDTO represents the database structure for persisting tracked item aggregates.
// The reference number carries a unique index, which is the durable enforcement
// of reference uniqueness behind the check Create performs in its transaction.
// The version column drives optimistic concurrency in Update.
type ItemDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferenceNumber      string    `gorm:"type:varchar(64);uniqueIndex"`
	Subject              string
	Description          string
	TypeID               string
	ProjectID            string
	Priority             int
	Status               int       `gorm:"index"`
	CreatedByUserID      uuid.UUID `gorm:"type:uuid;index"`
	CreationDate         time.Time
	CurrentHolderID      uuid.UUID `gorm:"type:uuid;index"`
	ArchiveLocationID    *uuid.UUID `gorm:"type:uuid"`
	PhysicalLocationNote string
	AttachmentRef        string
	Version              int
}

// TableName specifies the database table name for tracked item entities.
func (ItemDTO) TableName() string {
	return "tracked_items"
}

// fromDomain converts a tracked item aggregate to its database representation.
func fromDomain(it *item.TrackedItem) ItemDTO {
	var archiveLocationID *uuid.UUID
	if id := it.ArchiveLocation(); id != nil {
		raw := id.Bytes()
		archiveLocationID = &raw
	}

	return ItemDTO{
		ID:                   it.ID().Bytes(),
		ReferenceNumber:      it.ReferenceNumber().String(),
		Subject:              it.Subject(),
		Description:          it.Description(),
		TypeID:               it.TypeID(),
		ProjectID:            it.ProjectID(),
		Priority:             int(it.Priority()),
		Status:               int(it.Status()),
		CreatedByUserID:      it.CreatedBy().Bytes(),
		CreationDate:         it.CreationDate(),
		CurrentHolderID:      it.CurrentHolder().Bytes(),
		ArchiveLocationID:    archiveLocationID,
		PhysicalLocationNote: it.PhysicalLocationNote(),
		AttachmentRef:        it.AttachmentRef(),
		Version:              it.Version(),
	}
}

// toDomain converts a database row to a tracked item aggregate using
// RestoreTrackedItem, which re-validates identifiers and status so corrupt
// rows cannot re-enter the domain.
func toDomain(dto ItemDTO) (*item.TrackedItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ref, err := kernel.NewReferenceNumber(dto.ReferenceNumber)
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedByUserID[:])
	if err != nil {
		return nil, err
	}

	holder, err := kernel.UUIDFromBytes(dto.CurrentHolderID[:])
	if err != nil {
		return nil, err
	}

	var archiveLocationID *kernel.UUID
	if dto.ArchiveLocationID != nil {
		locID, locErr := kernel.UUIDFromBytes((*dto.ArchiveLocationID)[:])
		if locErr != nil {
			return nil, locErr
		}

		archiveLocationID = &locID
	}

	return item.RestoreTrackedItem(
		id,
		ref,
		dto.Subject,
		dto.Description,
		dto.TypeID,
		dto.ProjectID,
		item.Priority(dto.Priority),
		item.Status(dto.Status),
		createdBy,
		dto.CreationDate,
		holder,
		archiveLocationID,
		dto.PhysicalLocationNote,
		dto.AttachmentRef,
		dto.Version,
	)
}
