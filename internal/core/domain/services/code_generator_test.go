package services_test

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"production/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

type sequenceFunc func(ctx context.Context, year int) (int, error)

func (f sequenceFunc) Next(ctx context.Context, year int) (int, error) {
	return f(ctx, year)
}

func TestCodeGenerator_Next(t *testing.T) {
	clock := services.WithClock(func() time.Time { return now })

	t.Run("formats the sequence for the current year", func(t *testing.T) {
		var gotYear int
		gen := services.NewCodeGenerator(sequenceFunc(func(_ context.Context, year int) (int, error) {
			gotYear = year
			return 17, nil
		}), time.Second, slog.Default(), clock)

		code := gen.Next(t.Context())

		assert.Equal(t, 2026, gotYear)
		assert.Equal(t, "OP-2026-0017", code.String())
	})

	t.Run("falls back when the sequence fails", func(t *testing.T) {
		gen := services.NewCodeGenerator(sequenceFunc(func(context.Context, int) (int, error) {
			return 0, errors.New("connection refused")
		}), time.Second, nil, clock)

		code := gen.NextForYear(t.Context(), 2026)

		assert.True(t, strings.HasPrefix(code.String(), "OP-2026-"))
		assert.Equal(t, "OP-2026-"+strconv.FormatInt(now.UnixMicro(), 10), code.String())
	})

	t.Run("bounds a slow sequence with the timeout", func(t *testing.T) {
		gen := services.NewCodeGenerator(sequenceFunc(func(ctx context.Context, _ int) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		}), 20*time.Millisecond, nil, clock)

		start := time.Now()
		code := gen.Next(t.Context())

		assert.Less(t, time.Since(start), time.Second)
		assert.NotEqual(t, "OP-2026-0001", code.String())
		assert.NoError(t, code.Validate())
	})

	t.Run("falls back on an out of range sequence", func(t *testing.T) {
		gen := services.NewCodeGenerator(sequenceFunc(func(context.Context, int) (int, error) {
			return 0, nil
		}), time.Second, nil, clock)

		code := gen.Next(t.Context())

		assert.Equal(t, "OP-2026-"+strconv.FormatInt(now.UnixMicro(), 10), code.String())
	})
}
