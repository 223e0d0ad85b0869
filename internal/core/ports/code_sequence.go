package ports

import "context"

// CodeSequence is the per-year counter behind order codes. Next is atomic
// across concurrent callers and processes and never returns the same number
// twice for a year. On first use for a year the counter starts after the
// highest sequence already present in stored codes.
type CodeSequence interface {
	Next(ctx context.Context, year int) (int, error)
}
