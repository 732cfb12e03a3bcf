package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

type caseStudyHandler struct {
	responder     Responder
	logger        zerolog.Logger
	caseStudyRepo *database.CaseStudyRepo
	projectRepo   *database.ProjectRepo
	demos         *demoSessions
}

func newCaseStudyHandler(caseStudyRepo *database.CaseStudyRepo, projectRepo *database.ProjectRepo, demos *demoSessions) caseStudyHandler {
	logger := log.With().Str("handlerName", "caseStudyHandler").Logger()

	return caseStudyHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		caseStudyRepo: caseStudyRepo,
		projectRepo:   projectRepo,
		demos:         demos,
	}
}

func (h caseStudyHandler) storeFor(r *http.Request) database.CaseStudyStore {
	session, ok := sessionFromCtx(r.Context())
	if ok && session.Demo {
		if demo, found := h.demos.get(session.DemoID); found {
			return demo.caseStudies
		}
	}
	return h.caseStudyRepo
}

// CaseStudyWithProject annotates a case study with its resolved project
// title. A dangling reference resolves to no title, never an error.
type CaseStudyWithProject struct {
	models.CaseStudy
	ProjectTitle *string `json:"project_title,omitempty"`
}

// CaseStudyCollection represents a list of case studies
type CaseStudyCollection struct {
	CaseStudies []CaseStudyWithProject `json:"case_studies"`
	Total       int                    `json:"total"`
}

// getAllCaseStudies retrieves all case studies with resolved project titles
func (h caseStudyHandler) getAllCaseStudies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseStudies, err := h.storeFor(r).FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "case studies", err))
			return
		}

		annotated, err := h.annotate(caseStudies)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, CaseStudyCollection{CaseStudies: annotated, Total: len(annotated)})
	}
}

// getCaseStudy retrieves one case study by ID
func (h caseStudyHandler) getCaseStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseStudyID, err := parseCaseStudyID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		caseStudy, err := h.storeFor(r).FindByID(caseStudyID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "case study", err))
			return
		}
		if caseStudy == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("case study not found"))
			return
		}

		annotated, err := h.annotate([]*models.CaseStudy{caseStudy})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, annotated[0])
	}
}

// createCaseStudy creates a new case study
func (h caseStudyHandler) createCaseStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var caseStudy models.CaseStudy
		if err := json.NewDecoder(r.Body).Decode(&caseStudy); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode case study request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.storeFor(r).Add(&caseStudy); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "case study", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, caseStudy)
	}
}

// updateCaseStudy updates an existing case study
func (h caseStudyHandler) updateCaseStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseStudyID, err := parseCaseStudyID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		store := h.storeFor(r)
		existing, err := store.FindByID(caseStudyID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "case study", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("case study not found"))
			return
		}

		var caseStudy models.CaseStudy
		if err := json.NewDecoder(r.Body).Decode(&caseStudy); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode case study request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		caseStudy.ID = caseStudyID
		caseStudy.CreatedAt = existing.CreatedAt

		if err := store.Update(&caseStudy); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "case study", err))
			return
		}

		h.responder.WriteJSON(w, caseStudy)
	}
}

// deleteCaseStudy deletes a case study by ID
func (h caseStudyHandler) deleteCaseStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseStudyID, err := parseCaseStudyID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.storeFor(r).Delete(caseStudyID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "case study", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "case study deleted successfully",
		})
	}
}

// annotate resolves project titles for the given case studies. Unresolved
// references are left without a title.
func (h caseStudyHandler) annotate(caseStudies []*models.CaseStudy) ([]CaseStudyWithProject, error) {
	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, caseStudy := range caseStudies {
		if caseStudy.ProjectID != nil && !seen[*caseStudy.ProjectID] {
			seen[*caseStudy.ProjectID] = true
			ids = append(ids, *caseStudy.ProjectID)
		}
	}

	titles, err := h.projectRepo.TitlesByID(ids)
	if err != nil {
		return nil, wrapDatabaseError("find", "project titles", err)
	}

	annotated := make([]CaseStudyWithProject, 0, len(caseStudies))
	for _, caseStudy := range caseStudies {
		entry := CaseStudyWithProject{CaseStudy: *caseStudy}
		if caseStudy.ProjectID != nil {
			if title, ok := titles[*caseStudy.ProjectID]; ok {
				entry.ProjectTitle = &title
			}
		}
		annotated = append(annotated, entry)
	}
	return annotated, nil
}

func parseCaseStudyID(r *http.Request) (uuid.UUID, error) {
	caseStudyIDStr := chi.URLParam(r, "caseStudyID")
	if caseStudyIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing caseStudyID")
	}
	caseStudyID, err := uuid.Parse(caseStudyIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid caseStudyID")
	}
	return caseStudyID, nil
}
