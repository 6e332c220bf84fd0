package queries

import (
	"context"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetItemHistoryQueryHandler reads an item's custody ledger and enriches each
// entry with actor display names from the user directory.
type GetItemHistoryQueryHandler struct {
	db        *gorm.DB
	directory ports.UserDirectory
}

// NewGetItemHistoryQueryHandler creates a handler for item history queries.
// The directory may be nil; names are then left empty.
func NewGetItemHistoryQueryHandler(db *gorm.DB, directory ports.UserDirectory) GetItemHistoryQueryHandler {
	return GetItemHistoryQueryHandler{db: db, directory: directory}
}

// Handle executes the history query. Entries come back oldest to newest, ties
// on date broken by insertion order. An unknown item yields ObjectNotFound
// rather than an empty history, since every item's ledger is seeded at creation.
func (h GetItemHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetItemHistoryQuery,
) ([]GetItemHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, date, from_user_id, to_user_id, action, notes, is_read
		FROM movements
		WHERE item_id = ?
		ORDER BY date ASC, seq ASC
	`, query.ItemID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := map[kernel.UUID]string{}
	entries := make([]GetItemHistoryQueryResponse, 0)

	for rows.Next() {
		var (
			id     uuid.UUID
			date   time.Time
			from   uuid.UUID
			to     uuid.UUID
			action int
			notes  string
			isRead bool
		)

		if err = rows.Scan(&id, &date, &from, &to, &action, &notes, &isRead); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		fromID, fromErr := kernel.UUIDFromBytes(from[:])
		if fromErr != nil {
			return nil, fromErr
		}

		toID, toErr := kernel.UUIDFromBytes(to[:])
		if toErr != nil {
			return nil, toErr
		}

		entries = append(entries, GetItemHistoryQueryResponse{
			ID:           entryID,
			Date:         date,
			FromUserID:   fromID,
			FromUserName: h.resolveName(ctx, names, fromID),
			ToUserID:     toID,
			ToUserName:   h.resolveName(ctx, names, toID),
			Action:       movement.Action(action),
			Notes:        notes,
			IsRead:       isRead,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errs.NewObjectNotFoundError("trackedItem", query.ItemID().String())
	}

	return entries, nil
}

// resolveName looks an actor up in the directory, caching per query. Lookup
// failures degrade to an empty name; history display never fails on them.
func (h GetItemHistoryQueryHandler) resolveName(
	ctx context.Context,
	cache map[kernel.UUID]string,
	id kernel.UUID,
) string {
	if h.directory == nil {
		return ""
	}

	if name, ok := cache[id]; ok {
		return name
	}

	name, err := h.directory.ResolveUser(ctx, id)
	if err != nil {
		name = ""
	}

	cache[id] = name
	return name
}
