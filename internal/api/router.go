package api

import (
	"net/http"

	"github.com/dom/moodbite/internal/api/handlers"
	"github.com/dom/moodbite/internal/api/middleware"
	"github.com/dom/moodbite/internal/api/response"
	"github.com/dom/moodbite/internal/config"
	"github.com/dom/moodbite/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, cfg *config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, log)
	moodHandler := handlers.NewMoodHandler(services.Mood, services.Suggestion, log)
	contactHandler := handlers.NewContactHandler(services.Contact, log)
	adminHandler := handlers.NewAdminHandler(services.Contact, services.Analytics, log)
	requireAuth := middleware.RequireAuth(services.Auth, log)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/verify", authHandler.Verify)
		})

		r.Route("/mood", func(r chi.Router) {
			r.Get("/options", moodHandler.Options)
			r.Get("/suggestions", moodHandler.Catalog)
			r.Get("/suggestions/{mood}", moodHandler.Suggestions)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/select", moodHandler.Select)
				r.Get("/history", moodHandler.History)
			})
		})

		r.Post("/contact", contactHandler.Submit)

		// Named "admin" for the dashboard; any valid token is accepted.
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/contacts", adminHandler.Contacts)
			r.Get("/analytics", adminHandler.Analytics)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			response.Error(w, http.StatusNotFound, "Route not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		})
	})

	if cfg.WebDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
	}

	return r
}
