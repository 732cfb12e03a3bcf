package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-admin-backend/models"
)

// SiteSettingsRepo manages the single settings row. Last write wins.
type SiteSettingsRepo struct {
	db *gorm.DB
}

func NewSiteSettingsRepo(db *gorm.DB) *SiteSettingsRepo {
	return &SiteSettingsRepo{db}
}

// Get returns the settings row, or a zero-valued record when none exists
func (r *SiteSettingsRepo) Get() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.SiteSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert writes the settings row, creating it on first save
func (r *SiteSettingsRepo) Upsert(settings *models.SiteSettings) error {
	settings.UpdatedAt = time.Now()

	var existing models.SiteSettings
	err := r.db.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if settings.ID == uuid.Nil {
			settings.ID = uuid.New()
		}
		return r.db.Create(settings).Error
	}
	if err != nil {
		return err
	}

	settings.ID = existing.ID
	return r.db.Save(settings).Error
}
