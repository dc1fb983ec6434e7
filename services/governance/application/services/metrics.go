package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tocampus/governance/services/governance/domain/models"
)

const meterName = "github.com/tocampus/governance/services/governance"

// Metrics holds the pipeline's OTel instruments. They are exported through
// the Prometheus reader registered by telemetry.Setup.
type Metrics struct {
	transitions   metric.Int64Counter
	notifications metric.Int64Counter
	policyScore   metric.Int64Histogram
}

// NewMetrics registers the instruments on mp. A nil mp uses the global provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	transitions, err := meter.Int64Counter("governance_transitions_total",
		metric.WithDescription("Committed content lifecycle transitions"))
	if err != nil {
		return nil, err
	}
	notifications, err := meter.Int64Counter("governance_notifications_total",
		metric.WithDescription("Notification delivery attempts by result"))
	if err != nil {
		return nil, err
	}
	policyScore, err := meter.Int64Histogram("governance_policy_score",
		metric.WithDescription("Compliance score of evaluated content"),
		metric.WithExplicitBucketBoundaries(0, 40, 60, 75, 85, 95, 100))
	if err != nil {
		return nil, err
	}
	return &Metrics{transitions: transitions, notifications: notifications, policyScore: policyScore}, nil
}

func (m *Metrics) transition(ctx context.Context, action models.AuditAction) {
	if m == nil {
		return
	}
	m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("action", string(action))))
}

func (m *Metrics) notified(ctx context.Context, attempted, failed int) {
	if m == nil {
		return
	}
	if ok := attempted - failed; ok > 0 {
		m.notifications.Add(ctx, int64(ok), metric.WithAttributes(attribute.String("result", "delivered")))
	}
	if failed > 0 {
		m.notifications.Add(ctx, int64(failed), metric.WithAttributes(attribute.String("result", "failed")))
	}
}

func (m *Metrics) scored(ctx context.Context, v models.ValidationVerdict) {
	if m == nil {
		return
	}
	m.policyScore.Record(ctx, int64(v.Score))
}
