package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface, the auth endpoints, and the gated
// admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/projects", handlers.projectHandler.getPublicProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/case-studies", handlers.caseStudyHandler.getAllCaseStudies())
		r.Get("/case-studies/{caseStudyID}", handlers.caseStudyHandler.getCaseStudy())
		r.Get("/resume", handlers.resumeHandler.getResume())
		r.Get("/settings", handlers.settingsHandler.getSettings())

		// Event ingestion, fire-and-forget from the visitor's perspective
		r.Post("/events/page-view", handlers.analyticsHandler.trackPageView())
		r.Post("/events/project-view", handlers.analyticsHandler.trackProjectView())
		r.Post("/events/resume-download", handlers.analyticsHandler.trackResumeDownload())

		// Identity provider
		r.Post("/auth/signin", handlers.authHandler.signIn())
		r.Post("/auth/signup", handlers.authHandler.signUp())

		// Self-promotion verifies its own bearer token: the caller is
		// not an admin yet, so it cannot sit behind the admin gate
		r.Post("/admin/promote", handlers.authHandler.promote())
	})

	// Admin routes, every one behind the authorization gate
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.requireAdmin)

		r.Get("/admin/dashboard", handlers.analyticsHandler.getDashboard())
		r.Get("/admin/analytics", handlers.analyticsHandler.getSummary())

		r.Get("/admin/projects", handlers.projectHandler.getAllProjects())
		r.Post("/admin/projects", handlers.projectHandler.createProject())
		r.Put("/admin/projects/order", handlers.projectHandler.reorderProjects())
		r.Post("/admin/projects/move", handlers.projectHandler.moveProject())
		r.Put("/admin/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/admin/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Put("/admin/projects/{projectID}/feature", handlers.projectHandler.setFeatured())
		r.Put("/admin/projects/{projectID}/archive", handlers.projectHandler.setArchived())

		r.Post("/admin/case-studies", handlers.caseStudyHandler.createCaseStudy())
		r.Put("/admin/case-studies/{caseStudyID}", handlers.caseStudyHandler.updateCaseStudy())
		r.Delete("/admin/case-studies/{caseStudyID}", handlers.caseStudyHandler.deleteCaseStudy())

		r.Post("/admin/resume", handlers.resumeHandler.uploadResume())
		r.Delete("/admin/resume", handlers.resumeHandler.deleteResume())

		r.Get("/admin/settings", handlers.settingsHandler.getSettings())
		r.Put("/admin/settings", handlers.settingsHandler.updateSettings())
	})
}
