package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxPublisher struct{ mock.Mock }

func (m *MockOutboxPublisher) Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxRelayJobRunOnce(t *testing.T) {
	publisher := new(MockOutboxPublisher)
	publisher.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PublishOutboxCommand) bool {
		return cmd.BatchSize() == 50
	})).Return(3, nil).Once()

	job := NewOutboxRelayJob(publisher, "", 50, discardLogger())
	cmd, err := commands.NewPublishOutboxCommand(50)
	require.NoError(t, err)

	job.RunOnce(cmd)

	publisher.AssertExpectations(t)
}

func TestOutboxRelayJobSwallowsFailures(t *testing.T) {
	publisher := new(MockOutboxPublisher)
	publisher.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("broker down")).Once()

	job := NewOutboxRelayJob(publisher, "", 10, discardLogger())
	cmd, err := commands.NewPublishOutboxCommand(10)
	require.NoError(t, err)

	assert.NotPanics(t, func() { job.RunOnce(cmd) })
	publisher.AssertExpectations(t)
}

func TestOutboxRelayJobStartRejectsBadBatchSize(t *testing.T) {
	job := NewOutboxRelayJob(new(MockOutboxPublisher), "", 0, discardLogger())

	assert.Error(t, job.Start())
}

func TestOutboxRelayJobStartRejectsBadSchedule(t *testing.T) {
	job := NewOutboxRelayJob(new(MockOutboxPublisher), "every now and then", 10, discardLogger())

	assert.Error(t, job.Start())
}

func TestOutboxRelayJobRunsOnSchedule(t *testing.T) {
	var calls atomic.Int32
	publisher := new(MockOutboxPublisher)
	publisher.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return(0, nil)

	job := NewOutboxRelayJob(publisher, "* * * * * *", 10, discardLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestOutboxRelayJobStopCancelsInFlightRun(t *testing.T) {
	started := make(chan struct{})
	var cancelled atomic.Bool
	publisher := new(MockOutboxPublisher)
	publisher.On("Handle", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
	}).Return(0, context.Canceled)

	job := NewOutboxRelayJob(publisher, "* * * * * *", 10, discardLogger())
	require.NoError(t, job.Start())

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("relay never ran")
	}
	job.Stop()

	assert.True(t, cancelled.Load())
}

func TestJobManagerStartAndStop(t *testing.T) {
	publisher := new(MockOutboxPublisher)
	publisher.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	jm := NewJobManager(publisher, OutboxSettings{BatchSize: 10}, discardLogger())
	require.NoError(t, jm.StartAll())
	jm.StopAll()
	jm.StopAll()
}

func TestJobManagerPropagatesStartError(t *testing.T) {
	jm := NewJobManager(new(MockOutboxPublisher), OutboxSettings{BatchSize: -1}, discardLogger())

	assert.Error(t, jm.StartAll())
}
