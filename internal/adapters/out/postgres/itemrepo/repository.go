package itemrepo

import (
	"context"
	"errors"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements TrackedItemRepository using GORM.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormItemRepository creates a new GORM tracked item repository.
func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tracked item to the database.
func (r *GormItemRepository) Add(ctx context.Context, aggregate *item.TrackedItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing item using optimistic concurrency. The write only
// matches the row when its stored version is exactly one behind the aggregate's;
// a stale aggregate matches nothing and surfaces a version conflict, forcing the
// caller to retry against fresh state.
func (r *GormItemRepository) Update(ctx context.Context, aggregate *item.TrackedItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version-1).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("trackedItem")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a tracked item by ID.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.TrackedItem, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a tracked item by ID while taking a row-level
// exclusive lock (SELECT ... FOR UPDATE). Concurrent mutators of the same
// item block here until the enclosing transaction commits or rolls back,
// which serializes the ledger append and the holder update on each item.
func (r *GormItemRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*item.TrackedItem, error) {
	return r.get(ctx, id, true)
}

func (r *GormItemRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*item.TrackedItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto ItemDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackedItem", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsByReference reports whether any item already carries the given reference number.
func (r *GormItemRepository) ExistsByReference(ctx context.Context, ref kernel.ReferenceNumber) (bool, error) {
	if err := ref.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("reference_number = ?", ref.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
