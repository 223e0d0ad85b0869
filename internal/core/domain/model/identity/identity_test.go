package identity_test

import (
	"testing"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		in   string
		want identity.Role
	}{
		{"admin", identity.Admin},
		{"Supervisor", identity.Supervisor},
		{"operator", identity.Operator},
		{" operador ", identity.Operator},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := identity.ParseRole(tc.in)

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects unknown roles", func(t *testing.T) {
		for _, in := range []string{"", "guest", "root"} {
			_, err := identity.ParseRole(in)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestRole_IsManager(t *testing.T) {
	assert.True(t, identity.Admin.IsManager())
	assert.True(t, identity.Supervisor.IsManager())
	assert.False(t, identity.Operator.IsManager())
	assert.False(t, identity.RoleUnknown.IsManager())
}

func TestNewActor(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := identity.NewActor(id, identity.Operator, "  Ana Torres ", stage.Printing, true)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsEqual(id))
		assert.Equal(t, "Ana Torres", a.FullName())
		assert.Equal(t, stage.Printing, a.HomeStage())
		assert.True(t, a.IsActive())
	})

	t.Run("home stage is optional", func(t *testing.T) {
		a, err := identity.NewActor(kernel.NewUUID(), identity.Admin, "", stage.Unknown, true)

		require.NoError(t, err)
		assert.Equal(t, stage.Unknown, a.HomeStage())
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		_, err := identity.NewActor(kernel.UUID{}, identity.RoleUnknown, "", stage.Stage(77), true)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var a identity.Actor
		require.ErrorIs(t, a.Validate(), identity.ErrActorIsNotConstructed)
	})
}
