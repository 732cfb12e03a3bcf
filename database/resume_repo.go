package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

type ResumeRepo struct {
	db *gorm.DB
}

func NewResumeRepo(db *gorm.DB) *ResumeRepo {
	return &ResumeRepo{db}
}

// Current returns the most recently uploaded resume, or nil when none has
// been uploaded yet. Absence is a valid lifecycle stage, not an error.
func (r *ResumeRepo) Current() (*models.Resume, error) {
	var resume models.Resume
	err := r.db.Order("uploaded_at DESC").First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// Replace removes the previous resume row and inserts the new one with a
// zeroed download count, in one transaction.
func (r *ResumeRepo) Replace(resume *models.Resume) error {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now()
	}
	resume.DownloadCount = 0

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Resume{}).Error; err != nil {
			return err
		}
		return tx.Create(resume).Error
	})
}

// Delete removes a resume row by id
func (r *ResumeRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Resume{}, "id = ?", id).Error
}

// IncrementDownloadCount bumps the download counter by one. This is a
// read-modify-write: under concurrent downloads a lost update is tolerated.
func (r *ResumeRepo) IncrementDownloadCount(id uuid.UUID) error {
	var resume models.Resume
	if err := r.db.First(&resume, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound("resume")
		}
		return err
	}
	return r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Update("download_count", resume.DownloadCount+1).Error
}
