package http

import (
	"context"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockProfileDirectory struct{ mock.Mock }

func (m *MockProfileDirectory) Lookup(ctx context.Context, userID kernel.UUID) (identity.Actor, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(identity.Actor), args.Error(1)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockApproveStageHandler struct{ mock.Mock }

func (m *MockApproveStageHandler) Handle(ctx context.Context, cmd commands.ApproveStageCommand) (commands.ApproveStageResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ApproveStageResult), args.Error(1)
}

type MockSaveNotesHandler struct{ mock.Mock }

func (m *MockSaveNotesHandler) Handle(ctx context.Context, cmd commands.SaveNotesCommand) (order.StageRecordState, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(order.StageRecordState), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, q queries.GetOrderQuery) (queries.OrderReadModel, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.OrderReadModel), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, q queries.ListOrdersQuery) ([]queries.OrderReadModel, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]queries.OrderReadModel)
	return list, args.Error(1)
}
