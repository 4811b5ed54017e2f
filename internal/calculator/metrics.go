package calculator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"go-chi-calculator/internal/engine"
)

// Metric instruments, initialized once via InitMetrics().
var (
	opsCounter     metric.Int64Counter
	opsHistogram   metric.Float64Histogram
	errorCounter   metric.Int64Counter
	resultGauge    metric.Float64Gauge
	actionsCounter metric.Int64Counter
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	return initInstruments(otel.Meter("calculator"))
}

func initInstruments(meter metric.Meter) error {
	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of arithmetic evaluations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.transition.duration",
		metric.WithDescription("Duration of evaluations and state transitions in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of rejected calculator requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last evaluation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	actionsCounter, err = meter.Int64Counter("calculator.actions.total",
		metric.WithDescription("Total number of actions applied to calculator states"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return fmt.Errorf("creating actions counter: %w", err)
	}

	return nil
}

// recordStep counts the action and, when it folded a computation, the
// evaluation and its result.
func recordStep(ctx context.Context, step engine.Step, elapsedMs float64) {
	actionsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", step.Action.Kind())))
	opsHistogram.Record(ctx, elapsedMs, metric.WithAttributes(attribute.String("kind", step.Action.Kind())))

	if !step.Computed {
		return
	}
	attrs := metric.WithAttributes(attribute.String("operation", step.Operation.String()))
	opsCounter.Add(ctx, 1, attrs)
	resultGauge.Record(ctx, step.Result, attrs)
}
