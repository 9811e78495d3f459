package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/phishguard/internal/tracking"
)

// SetupRoutes configures the full route tree: public simulation
// endpoints, the login endpoint, and the auth-protected admin API.
func SetupRoutes(h *Handlers, trackingHandler *tracking.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)
	r.Get("/education", trackingHandler.HandleEducation)

	r.Route("/api", func(r chi.Router) {
		// Recipient-facing endpoints. These must stay anonymous: the
		// people clicking them are the simulation targets.
		r.Group(func(r chi.Router) {
			trackingHandler.Register(r)
		})

		r.Post("/auth/login", h.HandleLogin)

		// Admin API.
		r.Group(func(r chi.Router) {
			r.Use(h.auth.Middleware)

			r.Get("/auth/me", h.HandleMe)

			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", h.ListCampaigns)
				r.Post("/", h.CreateCampaign)
				r.Get("/{campaignID}", h.GetCampaign)
				r.Put("/{campaignID}", h.UpdateCampaign)
				r.Delete("/{campaignID}", h.DeleteCampaign)
				r.Post("/{campaignID}/launch", h.LaunchCampaign)
				r.Get("/{campaignID}/interactions", h.ListCampaignInteractions)
				r.Get("/{campaignID}/stats", h.GetCampaignStats)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", h.ListTemplates)
				r.Post("/", h.CreateTemplate)
				// Registered before {templateID} so "stats" is not
				// swallowed by the ID pattern.
				r.Get("/stats/success-rates", h.GetTemplateSuccessRates)
				r.Get("/{templateID}", h.GetTemplate)
				r.Put("/{templateID}", h.UpdateTemplate)
				r.Delete("/{templateID}", h.DeleteTemplate)
			})

			r.Route("/target-groups", func(r chi.Router) {
				r.Get("/", h.ListTargetGroups)
				r.Post("/", h.CreateTargetGroup)
				r.Get("/{groupID}", h.GetTargetGroup)
				r.Put("/{groupID}", h.UpdateTargetGroup)
				r.Delete("/{groupID}", h.DeleteTargetGroup)
				r.Get("/{groupID}/users", h.ListGroupUsers)
			})

			r.Route("/target-users", func(r chi.Router) {
				r.Post("/", h.CreateTargetUser)
				r.Get("/{userID}", h.GetTargetUser)
				r.Put("/{userID}", h.UpdateTargetUser)
				r.Delete("/{userID}", h.DeleteTargetUser)
			})

			// Training completion arrives from outside the simulation
			// (an LMS callback or a manual admin action), so it lives on
			// the authenticated side, not with the tracking endpoints.
			r.Post("/interactions/{interactionID}/training-complete", h.CompleteTraining)

			r.Route("/stats", func(r chi.Router) {
				r.Get("/dashboard", h.GetDashboard)
				r.Get("/campaign-performance", h.GetCampaignPerformance)
				r.Get("/recent-activities", h.GetRecentActivities)
			})

			r.Get("/credentials", h.ListCapturedCredentials)
		})
	})

	return r
}
