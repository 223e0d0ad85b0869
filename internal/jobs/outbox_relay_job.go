package jobs

import (
	"context"
	"log/slog"
	"sync"

	"production/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxSchedule runs the relay every five seconds.
const DefaultOutboxSchedule = "*/5 * * * * *"

// OutboxPublisher is what the relay job drives; PublishOutboxCommandHandler
// satisfies it.
type OutboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error)
}

// OutboxRelayJob periodically publishes pending domain events from the
// outbox. Runs never overlap: a tick that finds the previous run still busy
// is skipped.
type OutboxRelayJob struct {
	handler   OutboxPublisher
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewOutboxRelayJob creates the relay. An empty schedule means
// DefaultOutboxSchedule; the expression has a seconds field.
func NewOutboxRelayJob(handler OutboxPublisher, schedule string, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxSchedule
	}
	logger = logger.With("component", "outbox_relay_job")
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

// Start validates the batch size and schedules the relay.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.ctx, j.cancel = context.WithCancel(context.Background())

	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(cmd) }); err != nil {
		j.cancel()
		return err
	}

	j.cron.Start()
	j.running = true
	j.logger.InfoContext(j.ctx, "Outbox relay job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// RunOnce publishes a single batch. Failures are logged; the messages stay
// pending and the next tick retries them.
func (j *OutboxRelayJob) RunOnce(cmd commands.PublishOutboxCommand) {
	ctx := j.runContext()
	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "published", published, "error", err)
		}
		return
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox relay published events", "published", published)
	}
}

func (j *OutboxRelayJob) runContext() context.Context {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.ctx == nil {
		return context.Background()
	}
	return j.ctx
}

// Stop cancels an in-flight run and waits for it to return.
func (j *OutboxRelayJob) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	cancel := j.cancel
	j.mu.Unlock()

	cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
