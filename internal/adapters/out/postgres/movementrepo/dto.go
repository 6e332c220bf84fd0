// Package movementrepo persists the append-only custody ledger. Rows are only
// ever inserted; the single exception is the is_read acknowledgement flag,
// which MarkRead may flip and which never feeds custody state derivation.
package movementrepo

import (
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"

	"github.com/google/uuid"
)

// MovementDTO represents the database structure for ledger entries. The seq
// column is a monotonically increasing insertion counter that breaks ordering
// ties between entries sharing the same date.
type MovementDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"autoIncrement;uniqueIndex"`
	ItemID     uuid.UUID `gorm:"type:uuid;index"`
	Date       time.Time `gorm:"index"`
	FromUserID uuid.UUID `gorm:"type:uuid;index"`
	ToUserID   uuid.UUID `gorm:"type:uuid;index"`
	Action     int
	Notes      string
	IsRead     bool
}

// TableName specifies the database table name for ledger entries.
func (MovementDTO) TableName() string {
	return "movements"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(m *movement.Movement) MovementDTO {
	return MovementDTO{
		ID:         m.ID().Bytes(),
		ItemID:     m.ItemID().Bytes(),
		Date:       m.Date(),
		FromUserID: m.From().Bytes(),
		ToUserID:   m.To().Bytes(),
		Action:     int(m.Action()),
		Notes:      m.Notes(),
		IsRead:     m.IsRead(),
	}
}

// toDomain converts a database row to a ledger entry.
func toDomain(dto MovementDTO) (*movement.Movement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	from, err := kernel.UUIDFromBytes(dto.FromUserID[:])
	if err != nil {
		return nil, err
	}

	to, err := kernel.UUIDFromBytes(dto.ToUserID[:])
	if err != nil {
		return nil, err
	}

	return movement.RestoreMovement(
		id,
		itemID,
		from,
		to,
		movement.Action(dto.Action),
		dto.Notes,
		dto.Date,
		dto.IsRead,
	)
}
