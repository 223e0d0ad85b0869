package services

import (
	"context"
	"log/slog"
	"time"

	"production/internal/core/domain/model/order"
)

const defaultCodeTimeout = 3 * time.Second

// SequenceSource hands out the next code number for a year. Implementations
// must be atomic across processes; ports.CodeSequence is the production one.
type SequenceSource interface {
	Next(ctx context.Context, year int) (int, error)
}

// CodeGenerator allocates order codes. A failing or slow sequence never blocks
// order creation: after the timeout the generator logs a warning and returns
// order.FallbackCode.
type CodeGenerator struct {
	source  SequenceSource
	timeout time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

type CodeGeneratorOption func(*CodeGenerator)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CodeGeneratorOption {
	return func(g *CodeGenerator) {
		g.now = now
	}
}

// NewCodeGenerator returns a generator bounded by timeout (3s when zero or negative).
func NewCodeGenerator(source SequenceSource, timeout time.Duration, logger *slog.Logger, opts ...CodeGeneratorOption) *CodeGenerator {
	if timeout <= 0 {
		timeout = defaultCodeTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := &CodeGenerator{
		source:  source,
		timeout: timeout,
		now:     time.Now,
		logger:  logger.With("component", "CodeGenerator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns the next code for the current year.
func (g *CodeGenerator) Next(ctx context.Context) order.Code {
	return g.NextForYear(ctx, g.now().Year())
}

// NextForYear returns OP-<year>-<NNNN> from the sequence, or a fallback code
// when the sequence fails, times out or returns a number FormatCode rejects.
func (g *CodeGenerator) NextForYear(ctx context.Context, year int) order.Code {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	seq, err := g.source.Next(ctx, year)
	if err == nil {
		var code order.Code
		if code, err = order.FormatCode(year, seq); err == nil {
			return code
		}
	}

	fallback := order.FallbackCode(year, g.now())
	g.logger.Warn("code sequence unavailable, using fallback code",
		"year", year, "code", fallback.String(), "error", err)
	return fallback
}
