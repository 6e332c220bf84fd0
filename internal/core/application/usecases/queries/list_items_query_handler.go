package queries

import (
	"context"
	"time"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListItemsQueryHandler computes an actor's item listing. The candidate set is
// every item the actor holds, created, or ever forwarded; each candidate's
// ledger is replayed through the custody deriver to compute the category the
// actor sees, and Hidden items are dropped.
type ListItemsQueryHandler struct {
	db      *gorm.DB
	deriver services.CustodyDeriver
}

// NewListItemsQueryHandler creates a handler for item listings.
func NewListItemsQueryHandler(db *gorm.DB, deriver services.CustodyDeriver) ListItemsQueryHandler {
	return ListItemsQueryHandler{db: db, deriver: deriver}
}

// Handle executes the listing query. Results are ordered newest first by
// creation date. The listing reads a snapshot: a transfer committing while the
// query runs may or may not be reflected, but never a partial one.
func (h ListItemsQueryHandler) Handle(
	ctx context.Context,
	query ListItemsQuery,
) ([]ListItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actorRaw := query.ActorID().Bytes()

	items, err := h.loadCandidates(ctx, actorRaw)
	if err != nil {
		return nil, err
	}

	responses := make([]ListItemsQueryResponse, 0, len(items))
	for _, it := range items {
		ledger, ledgerErr := h.loadLedger(ctx, it.ID())
		if ledgerErr != nil {
			return nil, ledgerErr
		}

		category, catErr := h.deriver.Categorize(it, ledger, query.ActorID())
		if catErr != nil {
			return nil, catErr
		}

		if category == services.CategoryHidden {
			continue
		}
		if !query.AllCategories() && category != query.Category() {
			continue
		}

		responses = append(responses, ListItemsQueryResponse{
			ID:              it.ID(),
			ReferenceNumber: it.ReferenceNumber().String(),
			Subject:         it.Subject(),
			Priority:        it.Priority(),
			Status:          it.Status(),
			CurrentHolderID: it.CurrentHolder(),
			Category:        category,
		})
	}

	return responses, nil
}

// loadCandidates selects every item the actor might see, newest first.
func (h ListItemsQueryHandler) loadCandidates(ctx context.Context, actor uuid.UUID) ([]*item.TrackedItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reference_number,
			subject,
			description,
			type_id,
			project_id,
			priority,
			status,
			created_by_user_id,
			creation_date,
			current_holder_id,
			archive_location_id,
			physical_location_note,
			attachment_ref,
			version
		FROM tracked_items i
		WHERE i.current_holder_id = @actor
		   OR i.created_by_user_id = @actor
		   OR EXISTS (
			SELECT 1 FROM movements m
			WHERE m.item_id = i.id AND m.from_user_id = @actor
		   )
		ORDER BY i.creation_date DESC
	`, map[string]any{"actor": actor}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*item.TrackedItem, 0)
	for rows.Next() {
		var (
			id                   uuid.UUID
			referenceNumber      string
			subject              string
			description          string
			typeID               string
			projectID            string
			priority             int
			status               int
			createdBy            uuid.UUID
			creationDate         time.Time
			currentHolder        uuid.UUID
			archiveLocation      *uuid.UUID
			physicalLocationNote string
			attachmentRef        string
			version              int
		)

		if err = rows.Scan(
			&id, &referenceNumber, &subject, &description, &typeID, &projectID,
			&priority, &status, &createdBy, &creationDate, &currentHolder,
			&archiveLocation, &physicalLocationNote, &attachmentRef, &version,
		); err != nil {
			return nil, err
		}

		it, restoreErr := restoreItem(
			id, referenceNumber, subject, description, typeID, projectID,
			priority, status, createdBy, creationDate, currentHolder,
			archiveLocation, physicalLocationNote, attachmentRef, version,
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		items = append(items, it)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// loadLedger reads an item's full movement history oldest to newest.
func (h ListItemsQueryHandler) loadLedger(ctx context.Context, itemID kernel.UUID) ([]*movement.Movement, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, item_id, date, from_user_id, to_user_id, action, notes, is_read
		FROM movements
		WHERE item_id = ?
		ORDER BY date ASC, seq ASC
	`, itemID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ledger := make([]*movement.Movement, 0)
	for rows.Next() {
		var (
			id     uuid.UUID
			itemID uuid.UUID
			date   time.Time
			from   uuid.UUID
			to     uuid.UUID
			action int
			notes  string
			isRead bool
		)

		if err = rows.Scan(&id, &itemID, &date, &from, &to, &action, &notes, &isRead); err != nil {
			return nil, err
		}

		m, restoreErr := restoreMovement(id, itemID, date, from, to, action, notes, isRead)
		if restoreErr != nil {
			return nil, restoreErr
		}
		ledger = append(ledger, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ledger, nil
}

func restoreItem(
	id uuid.UUID,
	referenceNumber string,
	subject string,
	description string,
	typeID string,
	projectID string,
	priority int,
	status int,
	createdBy uuid.UUID,
	creationDate time.Time,
	currentHolder uuid.UUID,
	archiveLocation *uuid.UUID,
	physicalLocationNote string,
	attachmentRef string,
	version int,
) (*item.TrackedItem, error) {
	itemID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	ref, err := kernel.NewReferenceNumber(referenceNumber)
	if err != nil {
		return nil, err
	}

	creator, err := kernel.UUIDFromBytes(createdBy[:])
	if err != nil {
		return nil, err
	}

	holder, err := kernel.UUIDFromBytes(currentHolder[:])
	if err != nil {
		return nil, err
	}

	var archiveLocationID *kernel.UUID
	if archiveLocation != nil {
		locID, locErr := kernel.UUIDFromBytes((*archiveLocation)[:])
		if locErr != nil {
			return nil, locErr
		}
		archiveLocationID = &locID
	}

	return item.RestoreTrackedItem(
		itemID, ref, subject, description, typeID, projectID,
		item.Priority(priority), item.Status(status), creator, creationDate,
		holder, archiveLocationID, physicalLocationNote, attachmentRef, version,
	)
}

func restoreMovement(
	id uuid.UUID,
	itemID uuid.UUID,
	date time.Time,
	from uuid.UUID,
	to uuid.UUID,
	action int,
	notes string,
	isRead bool,
) (*movement.Movement, error) {
	entryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	entryItemID, err := kernel.UUIDFromBytes(itemID[:])
	if err != nil {
		return nil, err
	}

	fromID, err := kernel.UUIDFromBytes(from[:])
	if err != nil {
		return nil, err
	}

	toID, err := kernel.UUIDFromBytes(to[:])
	if err != nil {
		return nil, err
	}

	return movement.RestoreMovement(
		entryID, entryItemID, fromID, toID,
		movement.Action(action), notes, date, isRead,
	)
}
