package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects, archived included, ordered by display order
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Preload("Technologies").Order("display_order ASC").Find(&projects).Error
	return projects, err
}

// FindVisible returns the public list: non-archived projects ordered by display order
func (r *ProjectRepo) FindVisible() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Preload("Technologies").
		Where("is_archived = ?", false).
		Order("display_order ASC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when no row exists
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Technologies").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project at the end of the display order
func (r *ProjectRepo) Add(project *models.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return errs.NewValidationError("title")
	}

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.Technologies = dedupeTechnologies(project.ID, project.Technologies)

	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(&models.Project{}).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		project.DisplayOrder = maxOrder + 1
		return tx.Create(project).Error
	})
}

// Update saves a project and replaces its technology tags
func (r *ProjectRepo) Update(project *models.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return errs.NewValidationError("title")
	}

	technologies := dedupeTechnologies(project.ID, project.Technologies)
	project.Technologies = nil

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).
			Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		if err := tx.Save(project).Error; err != nil {
			return err
		}
		if len(technologies) > 0 {
			if err := tx.Create(&technologies).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	project.Technologies = technologies
	return nil
}

// Delete hard-deletes a project and its technology tags. Case studies
// referencing the project are left untouched; their reference dangles.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).
			Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}

// SetFeatured toggles the featured flag
func (r *ProjectRepo) SetFeatured(id uuid.UUID, featured bool) error {
	return r.setFlag(id, "is_featured", featured)
}

// SetArchived toggles the archived flag. Archiving keeps the row and its
// display order so un-archiving restores the project to its prior slot.
func (r *ProjectRepo) SetArchived(id uuid.UUID, archived bool) error {
	return r.setFlag(id, "is_archived", archived)
}

func (r *ProjectRepo) setFlag(id uuid.UUID, column string, value bool) error {
	result := r.db.Model(&models.Project{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}

// Reorder recomputes display_order as the 1-based position in ids. The
// list must cover every project exactly once. Rows whose order is
// unchanged are not rewritten.
func (r *ProjectRepo) Reorder(ids []uuid.UUID) error {
	var projects []*models.Project
	if err := r.db.Find(&projects).Error; err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*models.Project, len(projects))
	for _, project := range projects {
		byID[project.ID] = project
	}

	if len(ids) != len(projects) {
		return errs.NewInvalidFieldError("order", "must include every project exactly once")
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; !ok || seen[id] {
			return errs.NewInvalidFieldError("order", "must include every project exactly once")
		}
		seen[id] = true
	}

	for position, id := range ids {
		project := byID[id]
		if project.DisplayOrder == position+1 {
			continue
		}
		if err := r.db.Model(&models.Project{}).
			Where("id = ?", id).
			Update("display_order", position+1).Error; err != nil {
			return err
		}
	}
	return nil
}

// TitlesByID resolves project titles for the given ids. Missing ids are
// simply absent from the result; a dangling reference is not an error.
func (r *ProjectRepo) TitlesByID(ids []uuid.UUID) (map[uuid.UUID]string, error) {
	titles := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	var projects []*models.Project
	if err := r.db.Select("id", "title").Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, project := range projects {
		titles[project.ID] = project.Title
	}
	return titles, nil
}

// dedupeTechnologies drops empty and repeated tag values, preserving the
// order values were first submitted in.
func dedupeTechnologies(projectID uuid.UUID, technologies []models.ProjectTechnology) []models.ProjectTechnology {
	seen := make(map[string]bool, len(technologies))
	deduped := make([]models.ProjectTechnology, 0, len(technologies))
	for _, tech := range technologies {
		value := strings.TrimSpace(tech.Value)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		if tech.ID == uuid.Nil {
			tech.ID = uuid.New()
		}
		tech.ProjectID = projectID
		tech.Value = value
		deduped = append(deduped, tech)
	}
	return deduped
}
