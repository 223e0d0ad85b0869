package guard_test

import (
	"errors"
	"sync"
	"testing"

	"production/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("ApproveStageCommand must be created via NewApproveStageCommand")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies_keep_constructed_state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, cp.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type saveNotesCommand struct {
		notes string
		guard guard.ConstructorGuard
	}
	errCmd := errors.New("saveNotesCommand must be created via constructor")

	newCmd := func(notes string) saveNotesCommand {
		return saveNotesCommand{notes: notes, guard: guard.NewConstructorGuard()}
	}

	require.NoError(t, newCmd("dye lot 7").guard.Validate(errCmd))
	assert.ErrorIs(t, saveNotesCommand{}.guard.Validate(errCmd), errCmd)
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	errCmd := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NoError(t, g.Validate(errCmd))
			}
		}()
	}
	wg.Wait()
}
