package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterPendingTokensGauge exposes the number of issuance tokens held by an
// in-process store as <namespace>_issuance_tokens_pending. The count may include
// expired entries that have not been swept yet.
func RegisterPendingTokensGauge(
	meterProvider metric.MeterProvider,
	namespace string,
	count func() int,
) (metric.Registration, error) {
	meter := meterProvider.Meter(namespace)

	gauge, err := meter.Int64ObservableGauge(
		fmt.Sprintf("%s_issuance_tokens_pending", namespace),
		metric.WithDescription("Issuance tokens held by the in-memory store"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pending tokens gauge: %w", err)
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(gauge, int64(count()))
		return nil
	}, gauge)
	if err != nil {
		return nil, fmt.Errorf("failed to register pending tokens callback: %w", err)
	}
	return registration, nil
}
