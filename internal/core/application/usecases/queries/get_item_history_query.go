package queries

import (
	"errors"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/pkg/guard"
)

var (
	ErrGetItemHistoryQueryIsNotConstructed = errors.New(
		"GetItemHistoryQuery must be created via NewGetItemHistoryQuery constructor",
	)
)

// GetItemHistoryQuery retrieves the full movement history of an item, oldest
// first, with actor identities resolved to display names.
type GetItemHistoryQuery struct {
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetItemHistoryQuery creates a query for an item's custody history.
func NewGetItemHistoryQuery(itemID kernel.UUID) (GetItemHistoryQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetItemHistoryQuery{}, err
	}

	return GetItemHistoryQuery{
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetItemHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetItemHistoryQueryIsNotConstructed)
}

// ItemID returns the item whose history is requested.
func (q GetItemHistoryQuery) ItemID() kernel.UUID {
	return q.itemID
}

// GetItemHistoryQueryResponse is one ledger entry of an item's history.
// FromUserName and ToUserName are display enrichments; they stay empty when
// the directory cannot resolve the actor and never affect custody data.
type GetItemHistoryQueryResponse struct {
	ID           kernel.UUID
	Date         time.Time
	FromUserID   kernel.UUID
	FromUserName string
	ToUserID     kernel.UUID
	ToUserName   string
	Action       movement.Action
	Notes        string
	IsRead       bool
}
