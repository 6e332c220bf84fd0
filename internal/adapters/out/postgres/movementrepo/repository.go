package movementrepo

import (
	"context"
	"errors"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMovementLedger implements MovementLedger using GORM.
type GormMovementLedger struct {
	db *gorm.DB
}

// NewGormMovementLedger creates a new GORM movement ledger.
func NewGormMovementLedger(db *gorm.DB) *GormMovementLedger {
	return &GormMovementLedger{db: db}
}

// Append inserts a new ledger entry. Entries are immutable once written, so
// this is a plain insert with no upsert semantics.
func (r *GormMovementLedger) Append(ctx context.Context, entry *movement.Movement) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListForItem retrieves the full ledger of an item ordered oldest to newest,
// ties on date broken by insertion order.
func (r *GormMovementLedger) ListForItem(ctx context.Context, itemID kernel.UUID) ([]*movement.Movement, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MovementDTO
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID.Bytes()).
		Order("date ASC, seq ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*movement.Movement, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, m)
	}

	return entries, nil
}

// LatestForItem retrieves the most recent ledger entry of an item.
func (r *GormMovementLedger) LatestForItem(ctx context.Context, itemID kernel.UUID) (*movement.Movement, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dto MovementDTO
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID.Bytes()).
		Order("date DESC, seq DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("movement", itemID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// MarkRead flips the acknowledgement flag of a ledger entry. This is the only
// column of a written row that ever changes.
func (r *GormMovementLedger) MarkRead(ctx context.Context, entryID kernel.UUID) error {
	if err := entryID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&MovementDTO{}).
		Where("id = ?", entryID.Bytes()).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("movement", entryID.String())
	}

	return nil
}
