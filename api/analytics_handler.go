package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

type analyticsHandler struct {
	responder Responder
	logger    zerolog.Logger
	tracker   *services.Tracker
	analytics *services.Analytics
}

func newAnalyticsHandler(tracker *services.Tracker, analytics *services.Analytics) analyticsHandler {
	logger := log.With().Str("handlerName", "analyticsHandler").Logger()

	return analyticsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tracker:   tracker,
		analytics: analytics,
	}
}

type pageViewRequest struct {
	PagePath string `json:"page_path"`
}

type projectViewRequest struct {
	ProjectID uuid.UUID `json:"project_id"`
}

// trackPageView records a page view. Recording is fire-and-forget: the
// response is accepted whether or not the row landed.
func (h analyticsHandler) trackPageView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PagePath == "" {
			h.responder.WriteError(w, errs.NewValidationError("page_path"))
			return
		}

		h.tracker.TrackPageView(req.PagePath, r.UserAgent())
		w.WriteHeader(http.StatusAccepted)
	}
}

// trackProjectView records a project view
func (h analyticsHandler) trackProjectView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProjectID == uuid.Nil {
			h.responder.WriteError(w, errs.NewValidationError("project_id"))
			return
		}

		h.tracker.TrackProjectView(req.ProjectID, r.UserAgent())
		w.WriteHeader(http.StatusAccepted)
	}
}

// trackResumeDownload records a resume download and bumps the counter.
// A failed recording never blocks the visitor's download.
func (h analyticsHandler) trackResumeDownload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.tracker.TrackResumeDownload(r.UserAgent())
		w.WriteHeader(http.StatusAccepted)
	}
}

// getSummary computes the analytics summary over the full event log
func (h analyticsHandler) getSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := h.analytics.Summary()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, summary)
	}
}

// getDashboard computes the admin landing-page stats
func (h analyticsHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.analytics.DashboardStats()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}
