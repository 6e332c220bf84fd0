// Package queries contains read-side operations over custody state. Query
// handlers read the database directly and derive per-viewer categories on the
// fly; custody state is never stored, only computed from the ledger.
package queries

import (
	"errors"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/services"
	"custody/internal/pkg/guard"
)

// CategoryAll requests items from every visible category.
const CategoryAll = "All"

var (
	ErrListItemsQueryIsNotConstructed = errors.New(
		"ListItemsQuery must be created via NewListItemsQuery constructor",
	)
)

// ListItemsQuery retrieves the items visible to an actor, each tagged with the
// category the actor sees it in. The category filter accepts the view names
// (Inbox, Processing, Outbox, Archived) or All.
//
// Example:
//
//	query, err := NewListItemsQuery(actorID, "Inbox")
//	if err != nil {
//	    return err
//	}
//	items, err := handler.Handle(ctx, query)
type ListItemsQuery struct {
	actorID       kernel.UUID
	category      services.Category
	allCategories bool

	guard guard.ConstructorGuard
}

// NewListItemsQuery creates a query for the actor's item listing. An empty
// category or All selects every category the actor can see.
func NewListItemsQuery(actorID kernel.UUID, category string) (ListItemsQuery, error) {
	q := ListItemsQuery{guard: guard.NewConstructorGuard()}

	if err := actorID.Validate(); err != nil {
		return ListItemsQuery{}, err
	}
	q.actorID = actorID

	if category == "" || category == CategoryAll {
		q.allCategories = true
		return q, nil
	}

	parsed, err := services.CategoryFromString(category)
	if err != nil {
		return ListItemsQuery{}, err
	}
	q.category = parsed

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListItemsQuery) Validate() error {
	return q.guard.Validate(ErrListItemsQueryIsNotConstructed)
}

// ActorID returns the viewer the listing is computed for.
func (q ListItemsQuery) ActorID() kernel.UUID {
	return q.actorID
}

// Category returns the requested category filter. Meaningless when AllCategories is true.
func (q ListItemsQuery) Category() services.Category {
	return q.category
}

// AllCategories reports whether every visible category was requested.
func (q ListItemsQuery) AllCategories() bool {
	return q.allCategories
}

// ListItemsQueryResponse is one row of the actor's item listing.
type ListItemsQueryResponse struct {
	ID              kernel.UUID
	ReferenceNumber string
	Subject         string
	Priority        item.Priority
	Status          item.Status
	CurrentHolderID kernel.UUID
	Category        services.Category
}
