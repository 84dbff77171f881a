package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	botapi "github.com/botbee/botbee-backend/internal/api/bot"
	chatapi "github.com/botbee/botbee-backend/internal/api/chat"
	"github.com/botbee/botbee-backend/internal/api/docs"
	"github.com/botbee/botbee-backend/internal/api/middleware"
	resourceapi "github.com/botbee/botbee-backend/internal/api/resource"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	botHandler *botapi.Handler,
	resourceHandler *resourceapi.Handler,
	chatHandler *chatapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)   // Recover from panics
	r.Use(chimiddleware.RequestID)   // Add request ID
	r.Use(middleware.Logger(logger)) // Log requests
	r.Use(middleware.CORS)           // Handle CORS

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		// Dashboard routes require a forwarded caller identity.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			// Ingestion waits on external providers; give it room beyond
			// a typical request.
			r.Use(chimiddleware.Timeout(120 * time.Second))

			botapi.RegisterRoutes(r, botHandler)
			resourceapi.RegisterRoutes(r, resourceHandler)
		})

		// The chat stream is public (embed widget) and manages its own
		// duration ceiling, so no timeout middleware here.
		chatapi.RegisterRoutes(r, chatHandler)
	})

	return r
}
