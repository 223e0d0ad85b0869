package commands_test

import (
	"errors"
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func outboxMessages(n int) []ports.OutboxMessage {
	msgs := make([]ports.OutboxMessage, 0, n)
	for range n {
		msgs = append(msgs, ports.OutboxMessage{
			ID:          kernel.NewUUID(),
			Name:        "order.stage.approved",
			AggregateID: kernel.NewUUID(),
			Payload:     []byte(`{}`),
			OccurredAt:  time.Now().UTC(),
		})
	}
	return msgs
}

func TestPublishOutboxCommandHandler_Handle_PublishesBatch(t *testing.T) {
	ctx := t.Context()
	msgs := outboxMessages(2)
	ids := []kernel.UUID{msgs[0].ID, msgs[1].ID}

	repo := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(repo).Once(),
		repo.On("Pending", ctx, 50).Return(msgs, nil).Once(),
		publisher.On("Publish", ctx, msgs[0]).Return(nil).Once(),
		publisher.On("Publish", ctx, msgs[1]).Return(nil).Once(),
		repo.On("MarkPublished", ctx, ids, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewPublishOutboxCommand(50)
	require.NoError(t, err)
	h := commands.NewPublishOutboxCommandHandler(factory, publisher, nil)
	n, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPublishOutboxCommandHandler_Handle_StopsAtFirstFailure(t *testing.T) {
	ctx := t.Context()
	msgs := outboxMessages(3)

	repo := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(repo).Once(),
		repo.On("Pending", ctx, 10).Return(msgs, nil).Once(),
		publisher.On("Publish", ctx, msgs[0]).Return(nil).Once(),
		publisher.On("Publish", ctx, msgs[1]).Return(errors.New("broker down")).Once(),
		repo.On("MarkPublished", ctx, []kernel.UUID{msgs[0].ID}, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewPublishOutboxCommand(10)
	require.NoError(t, err)
	h := commands.NewPublishOutboxCommandHandler(factory, publisher, nil)
	n, err := h.Handle(ctx, cmd)
	require.EqualError(t, err, "broker down")
	assert.Equal(t, 1, n)
	publisher.AssertNotCalled(t, "Publish", ctx, msgs[2])
	repo.AssertExpectations(t)
}

func TestPublishOutboxCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()
	repo := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(repo).Once(),
		repo.On("Pending", ctx, 10).Return(nil, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewPublishOutboxCommand(10)
	require.NoError(t, err)
	h := commands.NewPublishOutboxCommandHandler(factory, new(MockEventPublisher), nil)
	n, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, n)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewPublishOutboxCommand_BatchSizeOutOfRange(t *testing.T) {
	_, err := commands.NewPublishOutboxCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	_, err = commands.NewPublishOutboxCommand(5000)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
