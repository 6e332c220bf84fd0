package commands_test

import (
	"errors"
	"testing"

	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	creator := kernel.NewUUID()
	cmd, err := commands.NewCreateItemCommand(
		"Signed contract", "original copy", "contract", "proj-7", item.PriorityUrgent, creator)
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	ledger := new(MockMovementLedger)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("ExistsByReference", ctx, mock.AnythingOfType("kernel.ReferenceNumber")).
			Return(false, nil).Once(),
		itemRepo.On("Add", ctx, mock.AnythingOfType("*item.TrackedItem")).Return(nil).Once(),
		uow.On("MovementLedger").Return(ledger).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("*movement.Movement")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	sink := new(MockAuditSink)
	sink.On("Record", ctx, mock.AnythingOfType("ports.AuditRecord")).Once()
	directory := new(MockUserDirectory)
	directory.On("ResolveUser", ctx, creator).Return("Alice Carter", nil).Once()

	handler := commands.NewCreateItemCommandHandler(factory, sink, directory)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Signed contract", created.Subject())
	assert.Equal(t, creator, created.CurrentHolder())
	assert.Equal(t, item.StatusActive, created.Status())
	assert.NotEmpty(t, created.ReferenceNumber().String())

	seed := ledger.Calls[0].Arguments.Get(1).(*movement.Movement)
	assert.Equal(t, movement.ActionCreated, seed.Action())
	assert.Equal(t, creator, seed.From())
	assert.Equal(t, creator, seed.To())

	rec := sink.Calls[0].Arguments.Get(1).(ports.AuditRecord)
	assert.Equal(t, ports.AuditOperationCreate, rec.Operation)
	assert.Equal(t, "Alice Carter", rec.ActorName)

	itemRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestCreateItemCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.CreateItemCommand // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewCreateItemCommandHandler(factory, nil, nil)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateItemCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateItemCommandHandler_Handle_ReferenceCollision(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateItemCommand(
		"Signed contract", "", "", "", item.PriorityNormal, kernel.NewUUID())
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("ExistsByReference", ctx, mock.AnythingOfType("kernel.ReferenceNumber")).
			Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateItemCommandHandler(factory, nil, nil)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateItemCommandHandler_Handle_AppendError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateItemCommand(
		"Signed contract", "", "", "", item.PriorityNormal, kernel.NewUUID())
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	ledger := new(MockMovementLedger)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("ExistsByReference", ctx, mock.AnythingOfType("kernel.ReferenceNumber")).
			Return(false, nil).Once(),
		itemRepo.On("Add", ctx, mock.AnythingOfType("*item.TrackedItem")).Return(nil).Once(),
		uow.On("MovementLedger").Return(ledger).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("*movement.Movement")).
			Return(errors.New("write failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateItemCommandHandler(factory, nil, nil)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "write failed")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateItemCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateItemCommand(
		"Signed contract", "", "", "", item.PriorityNormal, kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateItemCommandHandler(factory, nil, nil)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}
