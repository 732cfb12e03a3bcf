package database

import (
	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-admin-backend/models"
)

// ProjectStore is the ordered content store for projects. It is satisfied
// by the durable ProjectRepo and by the in-memory store that serves demo
// sessions, so callers pick persistence once per session and nothing else
// changes.
type ProjectStore interface {
	// FindAll returns every project, archived included, ordered by display order.
	FindAll() ([]*models.Project, error)
	// FindVisible returns non-archived projects ordered by display order.
	FindVisible() ([]*models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
	SetFeatured(id uuid.UUID, featured bool) error
	SetArchived(id uuid.UUID, archived bool) error
	// Reorder takes the full ordered list of project IDs and recomputes
	// display_order as the 1-based position in the list.
	Reorder(ids []uuid.UUID) error
}

// CaseStudyStore is the content store for case studies.
type CaseStudyStore interface {
	FindAll() ([]*models.CaseStudy, error)
	FindByID(id uuid.UUID) (*models.CaseStudy, error)
	Add(caseStudy *models.CaseStudy) error
	Update(caseStudy *models.CaseStudy) error
	Delete(id uuid.UUID) error
}
