package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics holds the business counters. The zero value is not usable; use NewMetrics or NopMetrics.
type Metrics struct {
	registrations metric.Int64Counter
	verifications metric.Int64Counter
	logins        metric.Int64Counter
	uploads       metric.Int64Counter
}

// NewMetrics creates the counters on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error
	if m.registrations, err = meter.Int64Counter("jobpilot.registrations",
		metric.WithDescription("Registration attempts by outcome")); err != nil {
		return nil, err
	}
	if m.verifications, err = meter.Int64Counter("jobpilot.verifications",
		metric.WithDescription("Verification proofs applied by channel and outcome")); err != nil {
		return nil, err
	}
	if m.logins, err = meter.Int64Counter("jobpilot.logins",
		metric.WithDescription("Login attempts by outcome")); err != nil {
		return nil, err
	}
	if m.uploads, err = meter.Int64Counter("jobpilot.image_uploads",
		metric.WithDescription("Company image uploads by field and outcome")); err != nil {
		return nil, err
	}
	return &m, nil
}

// NopMetrics returns counters that record nothing.
func NopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("noop"))
	return m
}

func (m *Metrics) Registration(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) Verification(ctx context.Context, channel, outcome string) {
	if m == nil {
		return
	}
	m.verifications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) Login(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) Upload(ctx context.Context, field, outcome string) {
	if m == nil {
		return
	}
	m.uploads.Add(ctx, 1, metric.WithAttributes(
		attribute.String("field", field),
		attribute.String("outcome", outcome),
	))
}
