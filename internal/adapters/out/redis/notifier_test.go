package redis_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"production/internal/adapters/out/redis"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Publish(ctx context.Context, channel string, message any) *goredis.IntCmd {
	args := m.Called(ctx, channel, message)
	return goredis.NewIntResult(1, args.Error(0))
}

func TestNotifier_Publish(t *testing.T) {
	msg := ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		Name:        "order.created",
		AggregateID: kernel.NewUUID(),
		Payload:     []byte(`{}`),
		OccurredAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	client := &MockClient{}
	var published string
	client.On("Publish", mock.Anything, "orders.live", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { published = args.String(2) }).
		Return(nil).Once()

	require.NoError(t, redis.NewNotifier(client, "orders.live").Publish(t.Context(), msg))

	var notice redis.Notice
	require.NoError(t, json.Unmarshal([]byte(published), &notice))
	assert.Equal(t, "order.created", notice.Event)
	assert.Equal(t, msg.AggregateID.String(), notice.OrderID)
	assert.True(t, msg.OccurredAt.Equal(notice.OccurredAt))
	client.AssertExpectations(t)
}

func TestNotifier_PublishError(t *testing.T) {
	client := &MockClient{}
	client.On("Publish", mock.Anything, "orders.live", mock.Anything).Return(errors.New("connection refused")).Once()

	err := redis.NewNotifier(client, "orders.live").Publish(t.Context(), ports.OutboxMessage{
		ID: kernel.NewUUID(), Name: "order.created", AggregateID: kernel.NewUUID(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
