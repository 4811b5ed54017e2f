package calculator

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// Handler serves the session endpoints backed by a session store.
type Handler struct {
	store *session.Store
}

func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// CreateSession handles POST /calculator/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap := h.store.Create()

	observability.LoggerWithTrace(ctx).Info("session created",
		zap.String("session_id", snap.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSessionResponse(snap))
}

// GetSession handles GET /calculator/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteError(w, http.StatusNotFound, session.ErrSessionNotFound.Error())
		return
	}

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(snap))
}

// DeleteSession handles DELETE /calculator/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(id); err != nil {
		handlers.WriteError(w, http.StatusNotFound, session.ErrSessionNotFound.Error())
		return
	}

	observability.LoggerWithTrace(ctx).Info("session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// DispatchActions handles POST /calculator/sessions/{id}/actions. The body
// is validated in full before any action reaches the session.
func (h *Handler) DispatchActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.dispatch",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	actions, err := decodeActions(r.Body)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "dispatch", "invalid actions", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	snap, steps, err := h.store.Dispatch(ctx, id, actions...)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		observability.RecordError(ctx, span, logger, errorCounter, "dispatch", session.ErrSessionNotFound.Error(), err, http.StatusNotFound, w)
		return
	case err != nil:
		observability.RecordError(ctx, span, logger, errorCounter, "dispatch", "request cancelled", err, http.StatusServiceUnavailable, w)
		return
	}

	perStep := elapsed / float64(len(steps))
	for _, step := range steps {
		recordStep(ctx, step, perStep)
		if step.Computed {
			logger.Info("calculator operation completed",
				zap.String("session_id", id),
				zap.String("operation", step.Operation.String()),
				zap.Float64("a", step.A),
				zap.Float64("b", step.B),
				zap.String("result", engine.FormatNumber(step.Result)),
				zap.String("request_id", requestID),
			)
		}
	}

	span.SetAttributes(
		attribute.Int("session.actions", len(actions)),
		attribute.String("calculator.state.current_operand", snap.State.CurrentOperand),
	)
	span.SetStatus(codes.Ok, "")

	logger.Debug("session actions applied",
		zap.String("session_id", id),
		zap.Int("actions", len(actions)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(snap))
}
