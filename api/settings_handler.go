package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

type settingsHandler struct {
	responder        Responder
	logger           zerolog.Logger
	siteSettingsRepo *database.SiteSettingsRepo
	demos            *demoSessions
}

func newSettingsHandler(siteSettingsRepo *database.SiteSettingsRepo, demos *demoSessions) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		siteSettingsRepo: siteSettingsRepo,
		demos:            demos,
	}
}

// getSettings returns the site settings row, zero-valued when unset.
// Demo sessions read their own simulated copy.
func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if demo, ok := h.demos.fromRequest(r); ok {
			h.responder.WriteJSON(w, demo.currentSettings())
			return
		}

		settings, err := h.siteSettingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "site settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// updateSettings writes the single settings row, last write wins. Demo
// sessions write the session's simulated copy instead of the durable row.
func (h settingsHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings models.SiteSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode settings request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if demo, ok := h.demos.fromRequest(r); ok {
			demo.setSettings(settings)
			h.responder.WriteJSON(w, map[string]any{"settings": settings, "simulated": true})
			return
		}

		if err := h.siteSettingsRepo.Upsert(&settings); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "site settings", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"settings": settings})
	}
}
