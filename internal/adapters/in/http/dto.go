package http

import (
	"time"

	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/movement"

	"github.com/google/uuid"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateItemRequest is the body of POST /api/v1/items.
type CreateItemRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	TypeID      string `json:"typeId,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	Priority    string `json:"priority"`
}

// ForwardItemRequest is the body of POST /api/v1/items/:id/forward.
type ForwardItemRequest struct {
	TargetID string `json:"targetId"`
	Notes    string `json:"notes,omitempty"`
}

// ReturnItemRequest is the body of POST /api/v1/items/:id/return.
type ReturnItemRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ArchiveItemRequest is the body of POST /api/v1/items/:id/archive.
type ArchiveItemRequest struct {
	ArchiveLocationID string `json:"archiveLocationId"`
	PhysicalNote      string `json:"physicalNote,omitempty"`
	AttachmentRef     string `json:"attachmentRef,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// ItemResponse describes a tracked item.
type ItemResponse struct {
	ID              uuid.UUID `json:"id"`
	ReferenceNumber string    `json:"referenceNumber"`
	Subject         string    `json:"subject"`
	Priority        string    `json:"priority"`
	Status          string    `json:"status"`
	CurrentHolderID uuid.UUID `json:"currentHolderId"`
	Category        string    `json:"category,omitempty"`
}

// MovementResponse describes a single ledger entry written by a transfer
// operation.
type MovementResponse struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"itemId"`
	Date       time.Time `json:"date"`
	FromUserID uuid.UUID `json:"fromUserId"`
	ToUserID   uuid.UUID `json:"toUserId"`
	Action     string    `json:"action"`
	Notes      string    `json:"notes,omitempty"`
	IsRead     bool      `json:"isRead"`
}

// HistoryEntryResponse is one row of GET /api/v1/items/:id/history, enriched
// with resolved actor names where the directory knows them.
type HistoryEntryResponse struct {
	ID           uuid.UUID `json:"id"`
	Date         time.Time `json:"date"`
	FromUserID   uuid.UUID `json:"fromUserId"`
	FromUserName string    `json:"fromUserName,omitempty"`
	ToUserID     uuid.UUID `json:"toUserId"`
	ToUserName   string    `json:"toUserName,omitempty"`
	Action       string    `json:"action"`
	Notes        string    `json:"notes,omitempty"`
	IsRead       bool      `json:"isRead"`
}

func toItemResponse(it *item.TrackedItem) ItemResponse {
	return ItemResponse{
		ID:              it.ID().Bytes(),
		ReferenceNumber: it.ReferenceNumber().String(),
		Subject:         it.Subject(),
		Priority:        it.Priority().String(),
		Status:          it.Status().String(),
		CurrentHolderID: it.CurrentHolder().Bytes(),
	}
}

func toMovementResponse(entry *movement.Movement) MovementResponse {
	return MovementResponse{
		ID:         entry.ID().Bytes(),
		ItemID:     entry.ItemID().Bytes(),
		Date:       entry.Date(),
		FromUserID: entry.From().Bytes(),
		ToUserID:   entry.To().Bytes(),
		Action:     entry.Action().String(),
		Notes:      entry.Notes(),
		IsRead:     entry.IsRead(),
	}
}

func toListItemResponse(row queries.ListItemsQueryResponse) ItemResponse {
	return ItemResponse{
		ID:              row.ID.Bytes(),
		ReferenceNumber: row.ReferenceNumber,
		Subject:         row.Subject,
		Priority:        row.Priority.String(),
		Status:          row.Status.String(),
		CurrentHolderID: row.CurrentHolderID.Bytes(),
		Category:        row.Category.String(),
	}
}

func toHistoryEntryResponse(row queries.GetItemHistoryQueryResponse) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:           row.ID.Bytes(),
		Date:         row.Date,
		FromUserID:   row.FromUserID.Bytes(),
		FromUserName: row.FromUserName,
		ToUserID:     row.ToUserID.Bytes(),
		ToUserName:   row.ToUserName,
		Action:       row.Action.String(),
		Notes:        row.Notes,
		IsRead:       row.IsRead,
	}
}
