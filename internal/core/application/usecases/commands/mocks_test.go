package commands_test

import (
	"context"
	"time"

	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, it *item.TrackedItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, it *item.TrackedItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.TrackedItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.TrackedItem), args.Error(1)
}

func (m *MockItemRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*item.TrackedItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.TrackedItem), args.Error(1)
}

func (m *MockItemRepository) ExistsByReference(ctx context.Context, ref kernel.ReferenceNumber) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

type MockMovementLedger struct{ mock.Mock }

func (m *MockMovementLedger) Append(ctx context.Context, entry *movement.Movement) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockMovementLedger) ListForItem(ctx context.Context, itemID kernel.UUID) ([]*movement.Movement, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*movement.Movement), args.Error(1)
}

func (m *MockMovementLedger) LatestForItem(ctx context.Context, itemID kernel.UUID) (*movement.Movement, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movement.Movement), args.Error(1)
}

func (m *MockMovementLedger) MarkRead(ctx context.Context, entryID kernel.UUID) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ItemRepository() ports.TrackedItemRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackedItemRepository)
}

func (m *MockUoW) MovementLedger() ports.MovementLedger {
	args := m.Called()
	return args.Get(0).(ports.MovementLedger)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockAuditSink struct{ mock.Mock }

func (m *MockAuditSink) Record(ctx context.Context, rec ports.AuditRecord) {
	m.Called(ctx, rec)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) ResolveUser(ctx context.Context, id kernel.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockLocationRegistry struct{ mock.Mock }

func (m *MockLocationRegistry) LocationExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// newTestItem builds an active item held by its creator for handler tests.
func newTestItem(creator kernel.UUID) *item.TrackedItem {
	id := kernel.NewUUID()
	ref, _ := kernel.GenerateReferenceNumber(time.Now().UTC(), id)
	it, _ := item.NewTrackedItem(
		id, ref, "Signed contract", "", "contract", "", item.PriorityNormal, creator, time.Now().UTC())
	return it
}

// newArchivedTestItem builds an item already in the terminal archived state.
func newArchivedTestItem(creator kernel.UUID) *item.TrackedItem {
	it := newTestItem(creator)
	_ = it.Archive(kernel.NewUUID(), "shelf A1", "")
	return it
}
