// Package memory provides an in-memory implementation of the unit of work
// stack. It backs tests and single-process deployments where the custody
// engine runs without a database, and keeps the same transactional contract
// as the postgres adapter: per-item exclusive locks, optimistic version
// checks, and all-or-nothing commits.
package memory

import (
	"context"
	"errors"
	"sync"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when the unit of
// work has no transaction in progress.
var ErrNoActiveTransaction = errors.New("memory: no active transaction in progress")

var _ ports.UnitOfWorkFactory = &Store{}

// Store holds the committed state shared by all units of work it creates.
type Store struct {
	mu     sync.RWMutex
	items  map[kernel.UUID]*item.TrackedItem
	byRef  map[string]kernel.UUID
	ledger map[kernel.UUID][]*movement.Movement

	lockMu sync.Mutex
	locks  map[kernel.UUID]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		items:  make(map[kernel.UUID]*item.TrackedItem),
		byRef:  make(map[string]kernel.UUID),
		ledger: make(map[kernel.UUID][]*movement.Movement),
		locks:  make(map[kernel.UUID]*sync.Mutex),
	}
}

func (s *Store) Create() ports.UnitOfWork {
	return &unitOfWork{
		store:     s,
		pending:   make(map[kernel.UUID]pendingItem),
		heldLocks: make(map[kernel.UUID]*sync.Mutex),
	}
}

// itemLock returns the exclusive mutex for an item, creating it on first use.
func (s *Store) itemLock(id kernel.UUID) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

type pendingItem struct {
	aggregate *item.TrackedItem
	isNew     bool
}

var _ ports.UnitOfWork = &unitOfWork{}
var _ ports.TrackedItemRepository = &unitOfWork{}
var _ ports.MovementLedger = &unitOfWork{}

// unitOfWork buffers writes until Commit and applies them under the store
// lock as a single atomic unit. Reads within the unit of work observe its own
// buffered writes on top of the committed state.
type unitOfWork struct {
	store  *Store
	active bool

	pending        map[kernel.UUID]pendingItem
	pendingEntries []*movement.Movement
	pendingReads   []kernel.UUID

	heldLocks map[kernel.UUID]*sync.Mutex
}

func (u *unitOfWork) Begin(_ context.Context) error {
	u.active = true
	return nil
}

func (u *unitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if err := u.applyLocked(); err != nil {
		return err
	}

	u.finish()
	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}

	u.finish()
	return nil
}

// applyLocked re-checks every invariant against the committed state and then
// applies the buffered writes. Callers hold the store lock.
func (u *unitOfWork) applyLocked() error {
	for id, p := range u.pending {
		stored, exists := u.store.items[id]
		if p.isNew {
			if exists {
				return errs.NewValueIsInvalidError("trackedItem")
			}
			if _, taken := u.store.byRef[p.aggregate.ReferenceNumber().String()]; taken {
				return errs.NewValueIsInvalidError("referenceNumber")
			}
			continue
		}
		if !exists {
			return errs.NewObjectNotFoundError("trackedItem", id)
		}
		if stored.Version() != p.aggregate.Version()-1 {
			return errs.NewVersionIsInvalidError("trackedItem")
		}
	}

	for _, p := range u.pending {
		snapshot, err := cloneItem(p.aggregate)
		if err != nil {
			return err
		}
		u.store.items[snapshot.ID()] = snapshot
		u.store.byRef[snapshot.ReferenceNumber().String()] = snapshot.ID()
	}

	for _, entry := range u.pendingEntries {
		snapshot, err := cloneMovement(entry)
		if err != nil {
			return err
		}
		u.store.ledger[snapshot.ItemID()] = append(u.store.ledger[snapshot.ItemID()], snapshot)
	}

	for _, entryID := range u.pendingReads {
		u.markReadLocked(entryID)
	}

	return nil
}

func (u *unitOfWork) markReadLocked(entryID kernel.UUID) {
	for _, entries := range u.store.ledger {
		for _, entry := range entries {
			if entry.ID() == entryID {
				entry.MarkRead()
				return
			}
		}
	}
}

// finish discards the buffers and releases the per-item locks. Further use of
// the unit of work requires a new instance.
func (u *unitOfWork) finish() {
	u.active = false
	u.pending = make(map[kernel.UUID]pendingItem)
	u.pendingEntries = nil
	u.pendingReads = nil

	for _, l := range u.heldLocks {
		l.Unlock()
	}
	u.heldLocks = make(map[kernel.UUID]*sync.Mutex)
}

func (u *unitOfWork) ItemRepository() ports.TrackedItemRepository {
	return u
}

func (u *unitOfWork) MovementLedger() ports.MovementLedger {
	return u
}

func (u *unitOfWork) Add(_ context.Context, aggregate *item.TrackedItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	u.store.mu.RLock()
	_, exists := u.store.items[aggregate.ID()]
	_, refTaken := u.store.byRef[aggregate.ReferenceNumber().String()]
	u.store.mu.RUnlock()

	if exists {
		return errs.NewValueIsInvalidError("trackedItem")
	}
	if refTaken {
		return errs.NewValueIsInvalidError("referenceNumber")
	}

	snapshot, err := cloneItem(aggregate)
	if err != nil {
		return err
	}
	u.pending[aggregate.ID()] = pendingItem{aggregate: snapshot, isNew: true}
	return nil
}

func (u *unitOfWork) Update(_ context.Context, aggregate *item.TrackedItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	u.store.mu.RLock()
	stored, exists := u.store.items[aggregate.ID()]
	u.store.mu.RUnlock()

	if !exists {
		return errs.NewObjectNotFoundError("trackedItem", aggregate.ID())
	}
	if stored.Version() != aggregate.Version()-1 {
		return errs.NewVersionIsInvalidError("trackedItem")
	}

	snapshot, err := cloneItem(aggregate)
	if err != nil {
		return err
	}
	u.pending[aggregate.ID()] = pendingItem{aggregate: snapshot}
	return nil
}

func (u *unitOfWork) Get(_ context.Context, id kernel.UUID) (*item.TrackedItem, error) {
	if p, ok := u.pending[id]; ok {
		return cloneItem(p.aggregate)
	}

	u.store.mu.RLock()
	stored, exists := u.store.items[id]
	u.store.mu.RUnlock()

	if !exists {
		return nil, errs.NewObjectNotFoundError("trackedItem", id)
	}
	return cloneItem(stored)
}

func (u *unitOfWork) GetForUpdate(ctx context.Context, id kernel.UUID) (*item.TrackedItem, error) {
	if _, held := u.heldLocks[id]; !held {
		l := u.store.itemLock(id)
		l.Lock()
		u.heldLocks[id] = l
	}

	aggregate, err := u.Get(ctx, id)
	if err != nil {
		if l, held := u.heldLocks[id]; held {
			l.Unlock()
			delete(u.heldLocks, id)
		}
		return nil, err
	}
	return aggregate, nil
}

func (u *unitOfWork) ExistsByReference(_ context.Context, ref kernel.ReferenceNumber) (bool, error) {
	for _, p := range u.pending {
		if p.aggregate.ReferenceNumber() == ref {
			return true, nil
		}
	}

	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	_, taken := u.store.byRef[ref.String()]
	return taken, nil
}

func (u *unitOfWork) Append(_ context.Context, entry *movement.Movement) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	snapshot, err := cloneMovement(entry)
	if err != nil {
		return err
	}
	u.pendingEntries = append(u.pendingEntries, snapshot)
	return nil
}

func (u *unitOfWork) ListForItem(_ context.Context, itemID kernel.UUID) ([]*movement.Movement, error) {
	u.store.mu.RLock()
	committed := u.store.ledger[itemID]
	result := make([]*movement.Movement, 0, len(committed))
	for _, entry := range committed {
		snapshot, err := cloneMovement(entry)
		if err != nil {
			u.store.mu.RUnlock()
			return nil, err
		}
		result = append(result, snapshot)
	}
	u.store.mu.RUnlock()

	for _, entry := range u.pendingEntries {
		if entry.ItemID() == itemID {
			snapshot, err := cloneMovement(entry)
			if err != nil {
				return nil, err
			}
			result = append(result, snapshot)
		}
	}

	return result, nil
}

func (u *unitOfWork) LatestForItem(ctx context.Context, itemID kernel.UUID) (*movement.Movement, error) {
	entries, err := u.ListForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errs.NewObjectNotFoundError("movement", itemID)
	}
	return entries[len(entries)-1], nil
}

func (u *unitOfWork) MarkRead(_ context.Context, entryID kernel.UUID) error {
	for _, entry := range u.pendingEntries {
		if entry.ID() == entryID {
			entry.MarkRead()
			return nil
		}
	}

	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	for _, entries := range u.store.ledger {
		for _, entry := range entries {
			if entry.ID() == entryID {
				u.pendingReads = append(u.pendingReads, entryID)
				return nil
			}
		}
	}

	return errs.NewObjectNotFoundError("movement", entryID)
}

// cloneItem detaches an aggregate from the caller so later mutations do not
// leak into the committed state.
func cloneItem(aggregate *item.TrackedItem) (*item.TrackedItem, error) {
	var archiveLocation *kernel.UUID
	if loc := aggregate.ArchiveLocation(); loc != nil {
		copied := *loc
		archiveLocation = &copied
	}

	return item.RestoreTrackedItem(
		aggregate.ID(),
		aggregate.ReferenceNumber(),
		aggregate.Subject(),
		aggregate.Description(),
		aggregate.TypeID(),
		aggregate.ProjectID(),
		aggregate.Priority(),
		aggregate.Status(),
		aggregate.CreatedBy(),
		aggregate.CreationDate(),
		aggregate.CurrentHolder(),
		archiveLocation,
		aggregate.PhysicalLocationNote(),
		aggregate.AttachmentRef(),
		aggregate.Version(),
	)
}

func cloneMovement(entry *movement.Movement) (*movement.Movement, error) {
	return movement.RestoreMovement(
		entry.ID(),
		entry.ItemID(),
		entry.From(),
		entry.To(),
		entry.Action(),
		entry.Notes(),
		entry.Date(),
		entry.IsRead(),
	)
}
