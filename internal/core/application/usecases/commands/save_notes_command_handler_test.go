package commands_test

import (
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveNotesCommandHandler_Handle_AnyStage(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	operator := newActor(t, identity.Operator, stage.Dispatch)

	cmd, err := commands.NewSaveNotesCommand(o.ID(), stage.Dispatch, "pack in two boxes", operator)
	require.NoError(t, err)

	factory, uow, repo := expectMutation(ctx, o, nil, nil)
	h := commands.NewSaveNotesCommandHandler(factory, nil)
	rec, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "pack in two boxes", rec.Notes)
	assert.Equal(t, stage.Pending, rec.Status)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSaveNotesCommandHandler_Handle_CompletedOrder(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	advance(t, o, stage.Dispatch)
	admin := newActor(t, identity.Admin, stage.Unknown)
	_, err := o.ApproveStage(stage.Dispatch, false, admin.ID(), time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, order.Completed, o.Status())

	cmd, err := commands.NewSaveNotesCommand(o.ID(), stage.Sale, "client paid", admin)
	require.NoError(t, err)

	factory, _, _ := expectMutation(ctx, o, nil, nil)
	h := commands.NewSaveNotesCommandHandler(factory, nil)
	rec, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "client paid", rec.Notes)
}

func TestSaveNotesCommandHandler_Handle_InactiveActor(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	former := newInactiveActor(t, identity.Supervisor)

	cmd, err := commands.NewSaveNotesCommand(o.ID(), stage.Sale, "x", former)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewSaveNotesCommandHandler(factory, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	factory.AssertNotCalled(t, "Create")
}
