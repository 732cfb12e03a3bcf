package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	demos       *demoSessions
}

func newProjectHandler(projectRepo *database.ProjectRepo, demos *demoSessions) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		demos:       demos,
	}
}

// storeFor selects the project store for this request: the durable repo,
// or the session's simulation store for demo sessions.
func (h projectHandler) storeFor(r *http.Request) database.ProjectStore {
	session, ok := sessionFromCtx(r.Context())
	if ok && session.Demo {
		if demo, found := h.demos.get(session.DemoID); found {
			return demo.projects
		}
	}
	return h.projectRepo
}

// ProjectCollection represents a list of projects
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// projectRequest is the mutable subset of a project. Pointer fields are
// optional so updates can be partial.
type projectRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"start_date"`
	FinishDate   *time.Time `json:"finish_date"`
	Technologies []string   `json:"technologies"`
	GithubURL    *string    `json:"github_url"`
	LiveURL      *string    `json:"live_url"`
	ThumbnailURL *string    `json:"thumbnail_url"`
	IsFeatured   *bool      `json:"is_featured"`
}

func (req projectRequest) applyTo(project *models.Project) {
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.FinishDate != nil {
		project.FinishDate = req.FinishDate
	}
	if req.GithubURL != nil {
		project.GithubURL = req.GithubURL
	}
	if req.LiveURL != nil {
		project.LiveURL = req.LiveURL
	}
	if req.ThumbnailURL != nil {
		project.ThumbnailURL = req.ThumbnailURL
	}
	if req.IsFeatured != nil {
		project.IsFeatured = *req.IsFeatured
	}
	if req.Technologies != nil {
		technologies := make([]models.ProjectTechnology, 0, len(req.Technologies))
		for _, value := range req.Technologies {
			technologies = append(technologies, models.ProjectTechnology{Value: value})
		}
		project.Technologies = technologies
	}
}

// getPublicProjects retrieves the public project list
// @Summary List public projects
// @Description Retrieves non-archived projects ordered by display order
// @Tags Projects
// @Produce json
// @Success 200 {object} ProjectCollection "List of projects"
// @Router /projects [get]
func (h projectHandler) getPublicProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindVisible()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// getProject retrieves one project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// getAllProjects retrieves the admin project list, archived included
// @Summary List all projects
// @Tags Projects
// @Produce json
// @Success 200 {object} ProjectCollection "List of projects"
// @Router /admin/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.storeFor(r).FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// createProject creates a new project at the end of the display order
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Success 201 {object} models.Project "Created project"
// @Router /admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		var project models.Project
		req.applyTo(&project)

		if err := h.storeFor(r).Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject applies a partial update to an existing project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Updated project"
// @Router /admin/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		store := h.storeFor(r)
		project, err := store.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		req.applyTo(project)

		if err := store.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject hard-deletes a project. Case studies referencing it keep
// their dangling reference.
// @Summary Delete project
// @Tags Projects
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Router /admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.storeFor(r).Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// setFeatured toggles a project's featured flag
// @Summary Feature or unfeature a project
// @Router /admin/projects/{projectID}/feature [put]
func (h projectHandler) setFeatured() http.HandlerFunc {
	return h.setFlag("is_featured", func(store database.ProjectStore, id uuid.UUID, value bool) error {
		return store.SetFeatured(id, value)
	})
}

// setArchived toggles a project's archived flag. Archiving is the
// soft-delete path: the row keeps its display order for restore.
// @Summary Archive or restore a project
// @Router /admin/projects/{projectID}/archive [put]
func (h projectHandler) setArchived() http.HandlerFunc {
	return h.setFlag("is_archived", func(store database.ProjectStore, id uuid.UUID, value bool) error {
		return store.SetArchived(id, value)
	})
}

func (h projectHandler) setFlag(field string, apply func(database.ProjectStore, uuid.UUID, bool) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body map[string]bool
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		value, ok := body[field]
		if !ok {
			h.responder.WriteError(w, errs.NewValidationError(field))
			return
		}

		if err := apply(h.storeFor(r), projectID, value); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// reorderRequest carries the full ordered id list for a reorder
type reorderRequest struct {
	Order []uuid.UUID `json:"order"`
}

// reorderProjects persists a full explicit ordering
// @Summary Reorder projects
// @Description Recomputes display order from the 1-based position in the supplied list
// @Router /admin/projects/order [put]
func (h projectHandler) reorderProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		store := h.storeFor(r)
		if err := store.Reorder(req.Order); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("reorder", "projects", err))
			return
		}

		projects, err := store.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// moveRequest is one drag gesture: move the item at index From to index To
type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveResult reports the gesture outcome and the order the client must
// converge to. After a rollback, Projects is the durable order.
type MoveResult struct {
	State    string            `json:"state"`
	Projects []*models.Project `json:"projects"`
}

// moveProject applies one optimistic reorder gesture through the
// coordinator: the response always carries the authoritative order.
// @Summary Move a project to a new position
// @Router /admin/projects/move [post]
func (h projectHandler) moveProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		// storeFor hands demo sessions their simulation store, so a demo
		// gesture writes into the session state, never durable storage
		coordinator := services.NewReorderCoordinator(h.storeFor(r))
		if err := coordinator.Load(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		moveErr := coordinator.Move(req.From, req.To)
		result := MoveResult{
			State:    coordinator.State().String(),
			Projects: coordinator.View(),
		}

		if moveErr != nil {
			if errs.IsValidation(moveErr) {
				h.responder.WriteError(w, moveErr)
				return
			}
			// persistence failed: the view already reconciled to the
			// durable order, report it alongside the rollback state
			h.logger.Error().Err(moveErr).Msg("Reorder gesture rolled back")
			w.WriteHeader(http.StatusConflict)
			h.responder.WriteJSON(w, result)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}
