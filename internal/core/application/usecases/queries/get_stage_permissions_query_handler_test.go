package queries_test

import (
	"context"
	"testing"
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func unitOrder(t *testing.T) *order.Order {
	t.Helper()
	code, err := order.FormatCode(2026, 1)
	require.NoError(t, err)
	item, err := order.NewLineItem(order.ProductSnapshot{ProductName: "Cap", Units: 4, LeadTimeDays: 2})
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), code, order.Details{ClientName: "Acme", SalesChannel: order.Retail},
		[]order.LineItem{item}, kernel.NewUUID(), time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func actorWith(t *testing.T, role identity.Role) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(kernel.NewUUID(), role, "", stage.Unknown, true)
	require.NoError(t, err)
	return a
}

func TestGetStagePermissions_Supervisor(t *testing.T) {
	o := unitOrder(t)
	reader := &MockOrderReader{}
	reader.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	q, err := queries.NewGetStagePermissionsQuery(o.ID(), actorWith(t, identity.Supervisor))
	require.NoError(t, err)

	perms, err := queries.NewGetStagePermissionsQueryHandler(reader).Handle(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, perms, len(stage.All()))

	for _, p := range perms {
		assert.True(t, p.CanAct, p.Stage.String())
		assert.True(t, p.CanApprove, p.Stage.String())
		assert.True(t, p.CanAssign)
		assert.Equal(t, p.Stage == stage.Sale, p.IsCurrent)
		assert.Equal(t, p.Stage != stage.QualityReview, p.CanUpload)
	}
	reader.AssertExpectations(t)
}

func TestGetStagePermissions_AssignedOperator(t *testing.T) {
	o := unitOrder(t)
	operator := actorWith(t, identity.Operator)
	require.NoError(t, o.Assign(stage.Sale, operator.ID(), kernel.NewUUID(), time.Now().UTC()))

	reader := &MockOrderReader{}
	reader.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	q, err := queries.NewGetStagePermissionsQuery(o.ID(), operator)
	require.NoError(t, err)

	perms, err := queries.NewGetStagePermissionsQueryHandler(reader).Handle(t.Context(), q)
	require.NoError(t, err)

	for _, p := range perms {
		assert.Equal(t, p.Stage == stage.Sale, p.CanAct, p.Stage.String())
		assert.False(t, p.CanApprove)
		assert.False(t, p.CanAssign)
		assert.True(t, p.CanNotes)
	}
}

func TestGetStagePermissions_InactiveActorGetsNothing(t *testing.T) {
	o := unitOrder(t)
	inactive, err := identity.NewActor(kernel.NewUUID(), identity.Admin, "", stage.Unknown, false)
	require.NoError(t, err)

	reader := &MockOrderReader{}
	reader.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	q, err := queries.NewGetStagePermissionsQuery(o.ID(), inactive)
	require.NoError(t, err)

	perms, err := queries.NewGetStagePermissionsQueryHandler(reader).Handle(t.Context(), q)
	require.NoError(t, err)
	for _, p := range perms {
		assert.False(t, p.CanAct || p.CanApprove || p.CanAssign || p.CanNotes || p.CanUpload)
	}
}

func TestGetStagePermissions_MissingOrder(t *testing.T) {
	id := kernel.NewUUID()
	reader := &MockOrderReader{}
	reader.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	q, err := queries.NewGetStagePermissionsQuery(id, actorWith(t, identity.Admin))
	require.NoError(t, err)

	_, err = queries.NewGetStagePermissionsQueryHandler(reader).Handle(t.Context(), q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewGetStagePermissionsQuery_RequiresActor(t *testing.T) {
	_, err := queries.NewGetStagePermissionsQuery(kernel.NewUUID(), identity.Actor{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
