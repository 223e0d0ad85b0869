package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WorkflowMetrics counts workflow outcomes. A nil *WorkflowMetrics records nothing.
type WorkflowMetrics struct {
	ordersCreated  metric.Int64Counter
	stagesApproved metric.Int64Counter
}

// NewWorkflowMetrics registers the counters on m. A nil meter yields nil.
func NewWorkflowMetrics(m metric.Meter) (*WorkflowMetrics, error) {
	if m == nil {
		return nil, nil
	}
	created, err := m.Int64Counter("orders.created", metric.WithDescription("Orders placed"))
	if err != nil {
		return nil, err
	}
	approved, err := m.Int64Counter("stages.approved", metric.WithDescription("Stage approvals"))
	if err != nil {
		return nil, err
	}
	return &WorkflowMetrics{ordersCreated: created, stagesApproved: approved}, nil
}

func (m *WorkflowMetrics) OrderCreated(ctx context.Context, orderType, channel string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("order.type", orderType),
		attribute.String("order.channel", channel),
	))
}

// StageApproved records an approval; completed marks the approval that
// finished the order.
func (m *WorkflowMetrics) StageApproved(ctx context.Context, stage string, completed bool) {
	if m == nil || m.stagesApproved == nil {
		return
	}
	m.stagesApproved.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.Bool("order.completed", completed),
	))
}
