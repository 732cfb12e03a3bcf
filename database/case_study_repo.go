package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

type CaseStudyRepo struct {
	db *gorm.DB
}

func NewCaseStudyRepo(db *gorm.DB) *CaseStudyRepo {
	return &CaseStudyRepo{db}
}

// FindAll returns all case studies, newest first
func (r *CaseStudyRepo) FindAll() ([]*models.CaseStudy, error) {
	var caseStudies []*models.CaseStudy
	err := r.db.Order("created_at DESC").Find(&caseStudies).Error
	return caseStudies, err
}

// FindByID returns a case study by its ID, or nil when no row exists
func (r *CaseStudyRepo) FindByID(id uuid.UUID) (*models.CaseStudy, error) {
	var caseStudy models.CaseStudy
	err := r.db.First(&caseStudy, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &caseStudy, nil
}

// Add inserts a new case study
func (r *CaseStudyRepo) Add(caseStudy *models.CaseStudy) error {
	if err := validateCaseStudy(caseStudy); err != nil {
		return err
	}
	if caseStudy.ID == uuid.Nil {
		caseStudy.ID = uuid.New()
	}
	return r.db.Create(caseStudy).Error
}

// Update saves an existing case study
func (r *CaseStudyRepo) Update(caseStudy *models.CaseStudy) error {
	if err := validateCaseStudy(caseStudy); err != nil {
		return err
	}
	return r.db.Save(caseStudy).Error
}

// Delete removes a case study by id
func (r *CaseStudyRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.CaseStudy{}, "id = ?", id).Error
}

func validateCaseStudy(caseStudy *models.CaseStudy) error {
	if strings.TrimSpace(caseStudy.Title) == "" {
		return errs.NewValidationError("title")
	}
	if strings.TrimSpace(caseStudy.Overview) == "" {
		return errs.NewValidationError("overview")
	}
	return nil
}
