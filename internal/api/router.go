package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every route. metricsHandler may be nil.
func NewRouter(apiHandler *APIHandler, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(CORS)

		// Public routes
		r.Get("/health", apiHandler.HealthHandler)
		r.Post("/generate-prompt", apiHandler.GeneratePromptHandler)
		r.Post("/auth/signup", apiHandler.SignupHandler)
		r.Post("/auth/login", apiHandler.LoginHandler)

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Post("/auth/logout", apiHandler.LogoutHandler)
			r.Get("/auth/session", apiHandler.SessionHandler)
			r.Get("/auth/events", apiHandler.AuthEventsHandler)

			r.Get("/profile", apiHandler.ProfileHandler)

			r.Post("/prompts", apiHandler.CreatePromptHandler)
			r.Get("/prompts", apiHandler.ListPromptsHandler)
			r.Get("/prompts/{promptID}", apiHandler.GetPromptHandler)
			r.Delete("/prompts/{promptID}", apiHandler.DeletePromptHandler)
		})
	})

	return r
}
