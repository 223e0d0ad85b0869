package stage_test

import (
	"testing"

	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_IsOrderedAndComplete(t *testing.T) {
	all := stage.All()

	require.Len(t, all, 6)
	assert.Equal(t, stage.First(), all[0])
	assert.Equal(t, stage.Terminal(), all[len(all)-1])
	for i, s := range all {
		assert.Equal(t, i, s.Index())
		require.NoError(t, s.Validate())
	}
}

func TestStage_Successor(t *testing.T) {
	testCases := []struct {
		from   stage.Stage
		want   stage.Stage
		wantOK bool
	}{
		{stage.Sale, stage.Design, true},
		{stage.Design, stage.Printing, true},
		{stage.Printing, stage.Sewing, true},
		{stage.Sewing, stage.QualityReview, true},
		{stage.QualityReview, stage.Dispatch, true},
		{stage.Dispatch, stage.Unknown, false},
		{stage.Unknown, stage.Unknown, false},
		{stage.Stage(42), stage.Unknown, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String(), func(t *testing.T) {
			next, ok := tc.from.Successor()

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("current identifiers round trip", func(t *testing.T) {
		for _, s := range stage.All() {
			parsed, err := stage.Parse(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("legacy identifiers", func(t *testing.T) {
		legacy := map[string]stage.Stage{
			"venta":            stage.Sale,
			"diseno":           stage.Design,
			"estampado":        stage.Printing,
			"confeccion":       stage.Sewing,
			"revision_calidad": stage.QualityReview,
			"despacho":         stage.Dispatch,
		}
		for in, want := range legacy {
			got, err := stage.Parse(in)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("normalises case and whitespace", func(t *testing.T) {
		got, err := stage.Parse("  Quality_Review ")

		require.NoError(t, err)
		assert.Equal(t, stage.QualityReview, got)
	})

	t.Run("rejects unknown", func(t *testing.T) {
		for _, in := range []string{"", "packing", "unknown"} {
			_, err := stage.Parse(in)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestStage_LabelsAndFlags(t *testing.T) {
	assert.Equal(t, "Quality review", stage.QualityReview.Label())
	assert.Equal(t, "Unknown", stage.Unknown.Label())
	assert.Equal(t, "unknown", stage.Stage(99).String())
	assert.Equal(t, -1, stage.Unknown.Index())

	assert.True(t, stage.Dispatch.IsTerminal())
	assert.False(t, stage.Sewing.IsTerminal())

	assert.False(t, stage.QualityReview.RequiresEvidence())
	assert.True(t, stage.Printing.RequiresEvidence())
	assert.False(t, stage.Unknown.RequiresEvidence())
}
