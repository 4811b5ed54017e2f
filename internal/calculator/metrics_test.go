package calculator

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"go-chi-calculator/internal/engine"
)

func collectTransitionDurations(t *testing.T, reader *sdkmetric.ManualReader) []metricdata.HistogramDataPoint[float64] {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collecting metrics: %v", err)
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "calculator.transition.duration" {
				continue
			}
			hist, ok := m.Data.(metricdata.Histogram[float64])
			if !ok {
				t.Fatalf("expected float64 histogram, got %T", m.Data)
			}
			return hist.DataPoints
		}
	}

	t.Fatal("calculator.transition.duration not collected")
	return nil
}

func TestRecordStepLabelsTransitionDurationByKind(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	if err := initInstruments(provider.Meter("calculator")); err != nil {
		t.Fatalf("initializing instruments: %v", err)
	}
	t.Cleanup(func() {
		if err := InitMetrics(); err != nil {
			t.Fatalf("restoring instruments: %v", err)
		}
	})

	s := engine.State{PreviousOperand: "2", CurrentOperand: "3", Operation: engine.Add}
	recordStep(context.Background(), engine.Apply(s, engine.Compute{}), 0.1)

	points := collectTransitionDurations(t, reader)
	if len(points) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(points))
	}

	kind, ok := points[0].Attributes.Value("kind")
	if !ok || kind.AsString() != engine.KindCompute {
		t.Fatalf("expected kind %q, got %v (present %t)", engine.KindCompute, kind.AsString(), ok)
	}
	if _, ok := points[0].Attributes.Value("operation"); ok {
		t.Fatal("did not expect operation attribute on transition duration")
	}
}
