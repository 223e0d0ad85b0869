package commands_test

import (
	"errors"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApproveStageCommandHandlerSuite struct {
	suite.Suite
	supervisor identity.Actor
}

func TestApproveStageCommandHandlerSuite(t *testing.T) {
	suite.Run(t, new(ApproveStageCommandHandlerSuite))
}

func (s *ApproveStageCommandHandlerSuite) SetupTest() {
	s.supervisor = newActor(s.T(), identity.Supervisor, stage.Unknown)
}

func (s *ApproveStageCommandHandlerSuite) handle(o *order.Order, st stage.Stage, qc bool, actor identity.Actor, factory *MockOrderUoWFactory) (commands.ApproveStageResult, error) {
	cmd, err := commands.NewApproveStageCommand(o.ID(), st, qc, actor)
	s.Require().NoError(err)
	h := commands.NewApproveStageCommandHandler(factory, nil, nil)
	return h.Handle(s.T().Context(), cmd)
}

func (s *ApproveStageCommandHandlerSuite) TestAdvancesToNextStage() {
	ctx := s.T().Context()
	o := newOrder(s.T())
	factory, uow, repo := expectMutation(ctx, o, nil, nil)

	result, err := s.handle(o, stage.Sale, false, s.supervisor, factory)
	s.Require().NoError(err)
	s.Equal(stage.Design, result.CurrentStage)
	s.False(result.Completed)

	sale, err := o.StageRecord(stage.Sale)
	s.Require().NoError(err)
	s.Equal(stage.Approved, sale.Status())
	design, err := o.StageRecord(stage.Design)
	s.Require().NoError(err)
	s.Equal(stage.InProgress, design.Status())

	uow.AssertExpectations(s.T())
	repo.AssertExpectations(s.T())
}

func (s *ApproveStageCommandHandlerSuite) TestQualityReviewNeedsAcknowledgment() {
	ctx := s.T().Context()
	o := newOrder(s.T())
	advance(s.T(), o, stage.QualityReview)
	factory, uow, repo := expectRejectedMutation(ctx, o)

	_, err := s.handle(o, stage.QualityReview, false, s.supervisor, factory)
	s.Require().ErrorIs(err, errs.ErrValueIsRequired)
	s.Equal(stage.QualityReview, o.CurrentStage())
	repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(s.T())
}

func (s *ApproveStageCommandHandlerSuite) TestQualityReviewAcknowledged() {
	ctx := s.T().Context()
	o := newOrder(s.T())
	advance(s.T(), o, stage.QualityReview)
	factory, _, _ := expectMutation(ctx, o, nil, nil)

	result, err := s.handle(o, stage.QualityReview, true, s.supervisor, factory)
	s.Require().NoError(err)
	s.Equal(stage.Dispatch, result.CurrentStage)

	qc, err := o.StageRecord(stage.QualityReview)
	s.Require().NoError(err)
	s.Equal(order.QualityAuditNote, qc.Notes())
}

func (s *ApproveStageCommandHandlerSuite) TestDispatchCompletesOrder() {
	ctx := s.T().Context()
	o := newOrder(s.T())
	advance(s.T(), o, stage.Dispatch)
	factory, _, _ := expectMutation(ctx, o, nil, nil)

	result, err := s.handle(o, stage.Dispatch, false, s.supervisor, factory)
	s.Require().NoError(err)
	s.True(result.Completed)
	s.Equal(stage.Dispatch, result.CurrentStage)
	s.Equal(order.Completed, o.Status())

	names := make([]string, 0, 2)
	for _, e := range o.DomainEvents() {
		names = append(names, e.EventName())
	}
	s.Equal([]string{"order.stage.approved", "order.completed"}, names)
}

func (s *ApproveStageCommandHandlerSuite) TestOperatorNeverApproves() {
	ctx := s.T().Context()
	o := newOrder(s.T())
	operator := newActor(s.T(), identity.Operator, stage.Sale)
	s.Require().NoError(o.Assign(stage.Sale, operator.ID(), s.supervisor.ID(), o.CreatedAt()))
	factory, _, _ := expectRejectedMutation(ctx, o)

	_, err := s.handle(o, stage.Sale, false, operator, factory)
	s.Require().ErrorIs(err, errs.ErrNotAuthorized)
	s.Equal(stage.Sale, o.CurrentStage())
}

func (s *ApproveStageCommandHandlerSuite) TestAlreadyApprovedStageConflicts() {
	ctx := s.T().Context()
	o := newOrder(s.T())
	advance(s.T(), o, stage.Design)
	factory, _, _ := expectRejectedMutation(ctx, o)

	_, err := s.handle(o, stage.Sale, false, s.supervisor, factory)
	s.Require().ErrorIs(err, errs.ErrStateConflict)
	s.Equal(errs.KindConflict, errs.KindOf(err))
}

func (s *ApproveStageCommandHandlerSuite) TestCommitErrorIsReturned() {
	ctx := s.T().Context()
	o := newOrder(s.T())
	factory, uow, _ := expectMutation(ctx, o, nil, errors.New("commit error"))

	_, err := s.handle(o, stage.Sale, false, s.supervisor, factory)
	s.Require().EqualError(err, "commit error")
	uow.AssertExpectations(s.T())
}

func TestApproveStageCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewApproveStageCommandHandler(new(MockOrderUoWFactory), nil, nil)
	_, err := h.Handle(t.Context(), commands.ApproveStageCommand{})
	assert.ErrorIs(t, err, commands.ErrApproveStageCommandIsNotConstructed)
}
