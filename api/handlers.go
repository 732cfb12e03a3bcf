package api

import (
	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, auth *services.AuthService, storage services.BinaryStorage, demos *demoSessions) *routeHandlers {
	tracker := services.NewTracker(db)
	analytics := services.NewAnalytics(db)

	return &routeHandlers{
		authHandler:      newAuthHandler(auth),
		projectHandler:   newProjectHandler(db.ProjectRepo(), demos),
		caseStudyHandler: newCaseStudyHandler(db.CaseStudyRepo(), db.ProjectRepo(), demos),
		resumeHandler:    newResumeHandler(db.ResumeRepo(), storage, demos),
		analyticsHandler: newAnalyticsHandler(tracker, analytics),
		settingsHandler:  newSettingsHandler(db.SiteSettingsRepo(), demos),
	}
}
