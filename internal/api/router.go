package api

import (
	"net/http"

	"github.com/aviksec/notes-vault/internal/api/handlers"
	"github.com/aviksec/notes-vault/internal/api/middleware"
	"github.com/aviksec/notes-vault/internal/config"
	"github.com/aviksec/notes-vault/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	noteHandler := handlers.NewNoteHandler(services.Note)
	profileHandler := handlers.NewProfileHandler(services.Profile)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/csrf", authHandler.CSRFToken)

			// Anonymous state-changing routes, covered by the
			// pre-session CSRF token
			r.Group(func(r chi.Router) {
				r.Use(middleware.PreSessionCSRF(services.Auth))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.List)
				r.Post("/", noteHandler.Create)
				r.Get("/{id}", noteHandler.Get)
				r.Put("/{id}", noteHandler.Update)
				r.Delete("/{id}", noteHandler.Delete)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Put("/theme", profileHandler.UpdateTheme)
			})
		})
	})

	return r
}
