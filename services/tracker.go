package services

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

// Tracker is the event recorder. Every Track call is fire-and-forget:
// failures are logged and never surfaced to the visitor whose action
// triggered them.
type Tracker struct {
	analyticsRepo *database.AnalyticsRepo
	resumeRepo    *database.ResumeRepo
	logger        zerolog.Logger
}

func NewTracker(db database.Database) *Tracker {
	logger := log.With().Str("serviceName", "tracker").Logger()

	return &Tracker{
		analyticsRepo: db.AnalyticsRepo(),
		resumeRepo:    db.ResumeRepo(),
		logger:        logger,
	}
}

// TrackPageView records one page view.
func (t *Tracker) TrackPageView(pagePath, userAgent string) {
	event := &models.AnalyticsEvent{
		EventType: models.EventPageView,
		PagePath:  &pagePath,
		UserAgent: userAgent,
	}
	if err := t.analyticsRepo.Add(event); err != nil {
		t.logger.Error().Err(err).Str("pagePath", pagePath).Msg("Failed to record page view")
	}
}

// TrackProjectView records one project view. The project reference is
// lookup-only; it is recorded even if the project no longer exists.
func (t *Tracker) TrackProjectView(projectID uuid.UUID, userAgent string) {
	event := &models.AnalyticsEvent{
		EventType: models.EventProjectView,
		ProjectID: &projectID,
		UserAgent: userAgent,
	}
	if err := t.analyticsRepo.Add(event); err != nil {
		t.logger.Error().Err(err).Str("projectID", projectID.String()).Msg("Failed to record project view")
	}
}

// TrackResumeDownload records one resume download and bumps the current
// resume's download counter. The counter only moves when the event row
// was recorded, and only by one.
func (t *Tracker) TrackResumeDownload(userAgent string) {
	event := &models.AnalyticsEvent{
		EventType: models.EventResumeDownload,
		UserAgent: userAgent,
	}
	if err := t.analyticsRepo.Add(event); err != nil {
		t.logger.Error().Err(err).Msg("Failed to record resume download")
		return
	}

	resume, err := t.resumeRepo.Current()
	if err != nil {
		t.logger.Error().Err(err).Msg("Failed to load current resume for download count")
		return
	}
	if resume == nil {
		return
	}
	if err := t.resumeRepo.IncrementDownloadCount(resume.ID); err != nil {
		t.logger.Error().Err(err).Str("resumeID", resume.ID.String()).Msg("Failed to increment download count")
	}
}
