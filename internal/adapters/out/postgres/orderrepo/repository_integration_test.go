package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	seq        int
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	suite.seq++
	code, err := order.FormatCode(2026, suite.seq)
	suite.Require().NoError(err)

	shirt, err := order.NewLineItem(order.ProductSnapshot{
		ProductID: kernel.NewUUID(), ProductName: "Polo shirt", SKU: "POLO-01",
		ImageRef: "https://cdn.example.com/polo.png", Category: "tops", Units: 18, LeadTimeDays: 6,
	})
	suite.Require().NoError(err)
	hat, err := order.NewLineItem(order.ProductSnapshot{ProductName: "Cap", Units: 4, LeadTimeDays: 2})
	suite.Require().NoError(err)

	due := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(kernel.NewUUID(), code,
		order.Details{ClientName: "Colegio Andino", SalesChannel: order.Institutional, DueDate: &due},
		[]order.LineItem{shirt, hat}, kernel.NewUUID(), time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := suite.T().Context()
	o := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.Code(), got.Code())
	suite.Equal("Colegio Andino", got.ClientName())
	suite.Equal(order.Institutional, got.SalesChannel())
	suite.Equal(order.TypeProduction, got.Type())
	suite.Equal(22, got.Quantity())
	suite.Require().NotNil(got.DueDate())
	suite.True(o.DueDate().Equal(*got.DueDate()))
	suite.Equal(1, got.Version())
	suite.Equal(stage.Sale, got.CurrentStage())

	suite.Require().Len(got.LineItems(), 2)
	suite.Equal("POLO-01", got.LineItems()[0].ProductRef())
	suite.Equal("Cap", got.LineItems()[1].ProductRef())

	records := got.StageRecords()
	suite.Require().Len(records, 6)
	for i, rec := range records {
		suite.Equal(stage.All()[i], rec.Stage())
	}
	suite.Equal(stage.InProgress, records[0].Status())
	suite.Empty(got.DomainEvents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddDuplicateCode() {
	ctx := suite.T().Context()
	first := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.newOrder()
	clash, err := order.RestoreOrder(stateWithCode(second, first.Code()))
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, clash)
	suite.Require().ErrorIs(err, errs.ErrStateConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePersistsStageChanges() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	operator := kernel.NewUUID()
	notes := "proof signed"
	suite.Require().NoError(loaded.Assign(stage.Sale, operator, kernel.NewUUID(), now))
	suite.Require().NoError(loaded.AttachEvidence(stage.Sale, "s3://evidence/a.pdf", &notes, operator, now))
	suite.Require().NoError(loaded.AttachEvidence(stage.Sale, "s3://evidence/b.pdf", nil, operator, now))
	_, err = loaded.ApproveStage(stage.Sale, false, kernel.NewUUID(), now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, loaded))
	suite.Equal(2, loaded.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(2, got.Version())
	suite.Equal(stage.Design, got.CurrentStage())

	sale, err := got.StageRecord(stage.Sale)
	suite.Require().NoError(err)
	st := sale.State()
	suite.Equal(stage.Approved, st.Status)
	suite.Equal("s3://evidence/b.pdf", st.EvidenceRef)
	suite.Equal([]string{"s3://evidence/a.pdf", "s3://evidence/b.pdf"}, st.EvidenceHistory)
	suite.Equal("proof signed", st.Notes)
	suite.Equal(operator, st.AssignedUser)
	suite.Require().NotNil(st.ApprovedAt)

	design, err := got.StageRecord(stage.Design)
	suite.Require().NoError(err)
	suite.Equal(stage.InProgress, design.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStaleVersion() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	a, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	b, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(a.SaveNotes(stage.Design, "first"))
	suite.Require().NoError(suite.repository.Update(ctx, a))

	suite.Require().NoError(b.SaveNotes(stage.Design, "second"))
	err = suite.repository.Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrStateConflict)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	design, err := got.StageRecord(stage.Design)
	suite.Require().NoError(err)
	suite.Equal("first", design.Notes())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateMissingOrder() {
	o := suite.newOrder()
	err := suite.repository.Update(suite.T().Context(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetNotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func stateWithCode(o *order.Order, code order.Code) order.State {
	stages := make([]order.StageRecordState, 0, 6)
	for _, rec := range o.StageRecords() {
		stages = append(stages, rec.State())
	}
	return order.State{
		ID:           o.ID(),
		Code:         code,
		ClientName:   o.ClientName(),
		SalesChannel: o.SalesChannel(),
		Type:         o.Type(),
		Quantity:     o.Quantity(),
		DueDate:      o.DueDate(),
		CreatedBy:    o.CreatedBy(),
		CreatedAt:    o.CreatedAt(),
		Status:       o.Status(),
		CurrentStage: o.CurrentStage(),
		LineItems:    o.LineItems(),
		Stages:       stages,
		Version:      o.Version(),
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetCorruptStageRow() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.pg.DB.Exec(
		"UPDATE order_stages SET status = ? WHERE order_id = ?", "bogus", o.ID().Bytes(),
	).Error)

	_, err := suite.repository.Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrCorruptRecord)
	suite.Equal(errs.KindInternal, errs.KindOf(err))
}
