package resource

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers ingestion and documents-dashboard routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/bots/{bot_id}/resources", func(r chi.Router) {
		r.Post("/file", h.IngestFile)
		r.Post("/url", h.IngestURL)
		r.Post("/audio", h.IngestAudio)
	})

	r.Route("/resources", func(r chi.Router) {
		r.Get("/", h.ListResources)
		r.Delete("/{resource_id}", h.DeleteResource)
	})
}
