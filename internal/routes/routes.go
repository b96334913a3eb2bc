package routes

import (
	"net/http"

	"github.com/AnshRaj112/serenify-journal/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers the health, metrics and authenticated API routes.
// requireAuth guards every /api route.
func SetupRoutes(r chi.Router, h *handlers.Handler, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/journal", func(r chi.Router) {
			r.Post("/", h.CreateJournal)
			r.Get("/", h.ListJournals)
			r.Get("/mood-trend", h.MoodTrend)
			r.Delete("/{id}", h.DeleteJournal)
		})

		r.Route("/chatbot", func(r chi.Router) {
			r.Post("/", h.Chatbot)
			r.Get("/tips", h.Tips)
		})
	})
}

// SetupProbes registers routes that bypass rate limiting and authentication.
func SetupProbes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
}
