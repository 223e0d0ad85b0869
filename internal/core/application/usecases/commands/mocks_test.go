package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]ports.OutboxMessage)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockOutboxUoW struct{ mock.Mock }

func (m *MockOutboxUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockProfileDirectory struct{ mock.Mock }

func (m *MockProfileDirectory) Lookup(ctx context.Context, id kernel.UUID) (identity.Actor, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(identity.Actor)
	return a, args.Error(1)
}

type MockEvidenceStore struct{ mock.Mock }

func (m *MockEvidenceStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

type MockCodeAllocator struct{ mock.Mock }

func (m *MockCodeAllocator) Next(ctx context.Context) order.Code {
	args := m.Called(ctx)
	return args.Get(0).(order.Code)
}

func newActor(t *testing.T, role identity.Role, home stage.Stage) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(kernel.NewUUID(), role, "Test User", home, true)
	require.NoError(t, err)
	return a
}

func newInactiveActor(t *testing.T, role identity.Role) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(kernel.NewUUID(), role, "Former User", stage.Unknown, false)
	require.NoError(t, err)
	return a
}

func mustCode(t *testing.T, seq int) order.Code {
	t.Helper()
	c, err := order.FormatCode(2026, seq)
	require.NoError(t, err)
	return c
}

func snapshots() []order.ProductSnapshot {
	return []order.ProductSnapshot{
		{ProductID: kernel.NewUUID(), ProductName: "Polo shirt", SKU: "POLO-01", Units: 12, LeadTimeDays: 4},
		{ProductID: kernel.NewUUID(), ProductName: "Cap", Units: 3, LeadTimeDays: 2},
	}
}

// newOrder places an order with its events cleared, as a repository would load it.
func newOrder(t *testing.T) *order.Order {
	t.Helper()
	items := make([]order.LineItem, 0, 2)
	for _, s := range snapshots() {
		li, err := order.NewLineItem(s)
		require.NoError(t, err)
		items = append(items, li)
	}
	o, err := order.NewOrder(kernel.NewUUID(), mustCode(t, 1),
		order.Details{ClientName: "Acme", SalesChannel: order.Retail},
		items, kernel.NewUUID(), time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

// advance approves stages until s is the current one.
func advance(t *testing.T, o *order.Order, s stage.Stage) {
	t.Helper()
	by := kernel.NewUUID()
	for o.CurrentStage() != s {
		_, err := o.ApproveStage(o.CurrentStage(), true, by, time.Now().UTC())
		require.NoError(t, err)
	}
	o.ClearDomainEvents()
}

// expectMutation sets up the locked read-modify-write sequence.
func expectMutation(ctx context.Context, o *order.Order, updateErr, commitErr error) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	factory := new(MockOrderUoWFactory)
	uow, repo := expectMutationOn(ctx, factory, o, updateErr, commitErr)
	return factory, uow, repo
}

func expectMutationOn(ctx context.Context, factory *MockOrderUoWFactory, o *order.Order, updateErr, commitErr error) (*MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	calls := []*mock.Call{
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(updateErr).Once(),
	}
	if updateErr == nil {
		calls = append(calls, uow.On("Commit", ctx).Return(commitErr).Once())
	}
	calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
	mock.InOrder(calls...)

	return uow, repo
}

// expectRejectedMutation sets up a locked read that is rolled back before Update.
func expectRejectedMutation(ctx context.Context, o *order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return factory, uow, repo
}
