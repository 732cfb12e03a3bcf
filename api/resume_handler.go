package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

const (
	resumeKeyPrefix   = "resumes"
	maxResumeSize     = 10 << 20 // 10MB
	resumeContentType = "application/pdf"
)

type resumeHandler struct {
	responder  Responder
	logger     zerolog.Logger
	resumeRepo *database.ResumeRepo
	storage    services.BinaryStorage
	demos      *demoSessions
}

func newResumeHandler(resumeRepo *database.ResumeRepo, storage services.BinaryStorage, demos *demoSessions) resumeHandler {
	logger := log.With().Str("handlerName", "resumeHandler").Logger()

	return resumeHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		resumeRepo: resumeRepo,
		storage:    storage,
		demos:      demos,
	}
}

// getResume returns the current resume. No resume yet is a valid empty
// state, not an error. Demo sessions read their own simulated record.
func (h resumeHandler) getResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if demo, ok := h.demos.fromRequest(r); ok {
			h.responder.WriteJSON(w, map[string]any{"resume": demo.currentResume()})
			return
		}

		resume, err := h.resumeRepo.Current()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"resume": resume})
	}
}

// uploadResume replaces the current resume: the new binary is stored, the
// previous binary and row are removed, and the new row starts with a zero
// download count. Demo sessions replace the session's simulated record
// instead; no binary is stored and nothing durable changes.
func (h resumeHandler) uploadResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxResumeSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed upload"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("file"))
			return
		}
		defer file.Close()

		if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
			h.responder.WriteError(w, errs.NewInvalidFieldError("file", "resume must be a PDF"))
			return
		}

		key := fmt.Sprintf("%s/resume-%d%s", resumeKeyPrefix, time.Now().UnixMilli(), filepath.Ext(header.Filename))

		if demo, ok := h.demos.fromRequest(r); ok {
			resume := &models.Resume{
				ID:         uuid.New(),
				FileURL:    "/demo/" + key,
				Filename:   header.Filename,
				UploadedAt: time.Now(),
			}
			demo.setResume(resume)
			w.WriteHeader(http.StatusCreated)
			h.responder.WriteJSON(w, map[string]any{"resume": resume, "simulated": true})
			return
		}

		previous, err := h.resumeRepo.Current()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}

		fileURL, err := h.storage.Upload(r.Context(), key, resumeContentType, file)
		if err != nil {
			h.logger.Error().Err(err).Str("key", key).Msg("Failed to upload resume binary")
			h.responder.WriteError(w, errs.NewInternalError("failed to store resume"))
			return
		}

		if previous != nil {
			oldKey := services.ObjectKey(resumeKeyPrefix, previous.FileURL)
			if oldKey != "" {
				if err := h.storage.Remove(r.Context(), oldKey); err != nil {
					// the replacement still proceeds; the orphaned binary is logged
					h.logger.Error().Err(err).Str("key", oldKey).Msg("Failed to remove previous resume binary")
				}
			}
		}

		resume := &models.Resume{
			FileURL:  fileURL,
			Filename: header.Filename,
		}
		if err := h.resumeRepo.Replace(resume); err != nil {
			// the row never landed, so the fresh binary has no owner
			if removeErr := h.storage.Remove(r.Context(), key); removeErr != nil {
				h.logger.Error().Err(removeErr).Str("key", key).Msg("Failed to remove orphaned resume binary")
			}
			h.responder.WriteError(w, wrapDatabaseError("replace", "resume", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{"resume": resume})
	}
}

// deleteResume removes the current resume binary and row. Demo sessions
// clear their simulated record only.
func (h resumeHandler) deleteResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if demo, ok := h.demos.fromRequest(r); ok {
			if demo.currentResume() == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("no resume uploaded"))
				return
			}
			demo.setResume(nil)
			h.responder.WriteJSON(w, map[string]any{"status": "success", "simulated": true})
			return
		}

		resume, err := h.resumeRepo.Current()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}
		if resume == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("no resume uploaded"))
			return
		}

		key := services.ObjectKey(resumeKeyPrefix, resume.FileURL)
		if key != "" {
			if err := h.storage.Remove(r.Context(), key); err != nil {
				h.logger.Error().Err(err).Str("key", key).Msg("Failed to remove resume binary")
			}
		}

		if err := h.resumeRepo.Delete(resume.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "resume", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "resume deleted successfully",
		})
	}
}
