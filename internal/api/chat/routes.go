package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the public chat streaming route
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/bots/{bot_id}/chat", h.Chat)
}
