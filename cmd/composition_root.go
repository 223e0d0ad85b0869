package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/eventbus"
	"production/internal/adapters/out/evidence"
	"production/internal/adapters/out/kafka"
	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/postgres/codesequence"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/profilerepo"
	"production/internal/adapters/out/redis"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/jobs"
	"production/internal/pkg/observability"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/kgo"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	metrics    *observability.WorkflowMetrics

	profiles  ports.ProfileDirectory
	evidence  ports.EvidenceStore
	publisher ports.EventPublisher
	codes     *services.CodeGenerator

	kafkaClient *kgo.Client
	redisClient *goredis.Client
}

// NewCompositionRoot connects the outbound adapters. Redis is optional: with
// no REDIS_ADDR the relay publishes to Kafka only.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, telemetry *observability.Telemetry) (*CompositionRoot, error) {
	logger := telemetry.Logger

	metrics, err := observability.NewWorkflowMetrics(telemetry.Meter("production/workflow"))
	if err != nil {
		return nil, fmt.Errorf("create workflow metrics: %w", err)
	}

	gateway, err := evidence.NewGateway(cfg.EvidenceGatewayURL, evidence.NewHTTPClient(cfg.EvidenceTimeout, telemetry.TracerProvider))
	if err != nil {
		return nil, err
	}

	kafkaClient, err := kafka.NewClient(cfg.KafkaBrokers()...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	root := &CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:      logger,
		metrics:     metrics,
		profiles:    profilerepo.NewGormProfileDirectory(gormDB),
		evidence:    gateway,
		kafkaClient: kafkaClient,
	}

	var secondaries []ports.EventPublisher
	if cfg.RedisAddr != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			kafkaClient.Close()
			return nil, err
		}
		root.redisClient = redisClient
		secondaries = append(secondaries, redis.NewNotifier(redisClient, cfg.RedisChannel))
	}
	root.publisher = eventbus.NewFanout(kafka.NewPublisher(kafkaClient, cfg.KafkaOrderChangedTopic), logger, secondaries...)
	root.codes = services.NewCodeGenerator(codesequence.NewGormCodeSequence(gormDB), cfg.CodeTimeout, logger)

	return root, nil
}

// Close releases the broker connections. The database is closed by main.
func (c *CompositionRoot) Close() {
	c.kafkaClient.Close()
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.logger.Warn("failed to close redis client", "error", err)
		}
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.codes, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateAssignStageCommandHandler() commands.AssignStageCommandHandler {
	return commands.NewAssignStageCommandHandler(c.orderUoWFactory(), c.profiles, c.cfg.IdentityTimeout, c.logger)
}

func (c *CompositionRoot) CreateAttachEvidenceCommandHandler() commands.AttachEvidenceCommandHandler {
	return commands.NewAttachEvidenceCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateUploadEvidenceCommandHandler() commands.UploadEvidenceCommandHandler {
	return commands.NewUploadEvidenceCommandHandler(c.orderUoWFactory(), c.evidence, c.cfg.EvidenceTimeout, c.logger)
}

func (c *CompositionRoot) CreateSaveNotesCommandHandler() commands.SaveNotesCommandHandler {
	return commands.NewSaveNotesCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateApproveStageCommandHandler() commands.ApproveStageCommandHandler {
	return commands.NewApproveStageCommandHandler(c.orderUoWFactory(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreatePublishOutboxCommandHandler() commands.PublishOutboxCommandHandler {
	return commands.NewPublishOutboxCommandHandler(c.outboxUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListLineItemsQueryHandler() queries.ListLineItemsQueryHandler {
	return queries.NewListLineItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListStageRecordsQueryHandler() queries.ListStageRecordsQueryHandler {
	return queries.NewListStageRecordsQueryHandler(c.gormDB)
}

// CreateGetStagePermissionsQueryHandler reads through the order repository
// outside any transaction; the aggregate is only inspected.
func (c *CompositionRoot) CreateGetStagePermissionsQueryHandler() queries.GetStagePermissionsQueryHandler {
	return queries.NewGetStagePermissionsQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, nil))
}

// HTTPHandlers gathers every use case for the HTTP server.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	createOrder := c.CreateCreateOrderCommandHandler()
	assignStage := c.CreateAssignStageCommandHandler()
	attachEvidence := c.CreateAttachEvidenceCommandHandler()
	uploadEvidence := c.CreateUploadEvidenceCommandHandler()
	saveNotes := c.CreateSaveNotesCommandHandler()
	approveStage := c.CreateApproveStageCommandHandler()

	return httpin.Handlers{
		CreateOrder:    &createOrder,
		AssignStage:    &assignStage,
		AttachEvidence: &attachEvidence,
		UploadEvidence: &uploadEvidence,
		SaveNotes:      &saveNotes,
		ApproveStage:   &approveStage,

		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		ListLineItems:       c.CreateListLineItemsQueryHandler(),
		ListStageRecords:    c.CreateListStageRecordsQueryHandler(),
		GetStagePermissions: c.CreateGetStagePermissionsQueryHandler(),
	}
}

// ActorMiddleware resolves the calling user against the profile directory.
func (c *CompositionRoot) ActorMiddleware() echo.MiddlewareFunc {
	return httpin.ActorMiddleware(c.profiles, c.cfg.IdentityTimeout, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	publishOutbox := c.CreatePublishOutboxCommandHandler()
	return jobs.NewJobManager(&publishOutbox, jobs.OutboxSettings{
		Schedule:  c.cfg.OutboxSchedule,
		BatchSize: c.cfg.OutboxBatchSize,
	}, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
