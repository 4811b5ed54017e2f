package calculator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// ---------------------------------------------------------------------------
// Handlers: stateless evaluation
// ---------------------------------------------------------------------------

// Evaluate returns the handler for POST /calculator/{op}. Division by zero is
// not an error: the result is "Infinity", "-Infinity" or "NaN".
func Evaluate(op engine.Operation) http.HandlerFunc {
	opName := op.String()

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := observability.LoggerWithTrace(ctx)
		requestID := observability.RequestIDFromContext(ctx)

		ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
			trace.WithAttributes(
				attribute.String("calculator.operation", opName),
				attribute.String("request.id", requestID),
			),
		)
		defer span.End()

		var req CalcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
			return
		}

		span.SetAttributes(
			attribute.Float64("calculator.operand.a", req.A),
			attribute.Float64("calculator.operand.b", req.B),
		)

		start := time.Now()
		result := engine.Evaluate(op, req.A, req.B)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

		attrs := metric.WithAttributes(attribute.String("operation", opName))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, elapsed, attrs)
		resultGauge.Record(ctx, result, attrs)

		text := engine.FormatNumber(result)
		span.AddEvent("computation.complete", trace.WithAttributes(
			attribute.String("result", text),
			attribute.Float64("duration_ms", elapsed),
		))
		span.SetStatus(codes.Ok, "")

		logger.Info("calculator operation completed",
			zap.String("operation", opName),
			zap.Float64("a", req.A),
			zap.Float64("b", req.B),
			zap.String("result", text),
			zap.String("request_id", requestID),
			zap.Float64("duration_ms", elapsed),
		)

		handlers.WriteJSON(w, http.StatusOK, CalcResponse{
			Operation: opName,
			A:         req.A,
			B:         req.B,
			Result:    text,
		})
	}
}

// ---------------------------------------------------------------------------
// Handler: action replay with nested spans
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain: replays a sequence of actions from the
// default state, creating a child span for every step.
func Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	actions, err := decodeActions(r.Body)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid actions", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("chain.steps_count", len(actions)))

	state := engine.Default()
	steps := make([]ChainStep, 0, len(actions))

	for i, a := range actions {
		stepCtx, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, a.Kind()),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.kind", a.Kind()),
				attribute.String("chain.step.current_operand", state.CurrentOperand),
			),
		)

		start := time.Now()
		step := engine.Apply(state, a)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0

		recordStep(stepCtx, step, elapsed)
		annotateStep(stepSpan, step)
		stepSpan.End()

		chainStep := ChainStep{Kind: a.Kind(), State: step.After}
		if step.Computed {
			chainStep.Result = engine.FormatNumber(step.Result)
			logger.Info("chain step computed",
				zap.Int("step", i),
				zap.String("operation", step.Operation.String()),
				zap.Float64("a", step.A),
				zap.Float64("b", step.B),
				zap.String("result", chainStep.Result),
				zap.Float64("duration_ms", elapsed),
			)
		}

		steps = append(steps, chainStep)
		state = step.After
	}

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.String("current_operand", state.CurrentOperand),
		attribute.Int("total_steps", len(actions)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("chain replayed",
		zap.Int("steps", len(actions)),
		zap.String("current_operand", state.CurrentOperand),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Steps:   steps,
		State:   state,
		Display: engine.Render(state),
	})
}

// annotateStep records a step's outcome on its span.
func annotateStep(span trace.Span, step engine.Step) {
	span.SetAttributes(
		attribute.String("calculator.state.current_operand", step.After.CurrentOperand),
		attribute.String("calculator.state.previous_operand", step.After.PreviousOperand),
		attribute.String("calculator.state.operation", step.After.Operation.String()),
	)
	if step.Computed {
		span.AddEvent("computation.complete", trace.WithAttributes(
			attribute.String("operation", step.Operation.String()),
			attribute.Float64("a", step.A),
			attribute.Float64("b", step.B),
			attribute.String("result", engine.FormatNumber(step.Result)),
		))
	}
	span.SetStatus(codes.Ok, "")
}
