package calculator

import (
	"github.com/go-chi/chi/v5"

	"go-chi-calculator/internal/engine"
)

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		for _, op := range engine.Operations {
			r.Post("/"+op.String(), Evaluate(op))
		}
		r.Post("/chain", Chain)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Post("/actions", h.DispatchActions)
			})
		})
	})
}
