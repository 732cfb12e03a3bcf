package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-admin-backend/models"
)

// AnalyticsRepo owns the append-only event log. Events are never updated
// or deleted by normal operation.
type AnalyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db}
}

// Add appends one event row
func (r *AnalyticsRepo) Add(event *models.AnalyticsEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// FindByType returns every event of the given type
func (r *AnalyticsRepo) FindByType(eventType string) ([]*models.AnalyticsEvent, error) {
	var events []*models.AnalyticsEvent
	err := r.db.Where("event_type = ?", eventType).Order("created_at ASC").Find(&events).Error
	return events, err
}

// Recent returns the most recently created events regardless of type
func (r *AnalyticsRepo) Recent(limit int) ([]*models.AnalyticsEvent, error) {
	var events []*models.AnalyticsEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// CountByType returns the number of events of the given type
func (r *AnalyticsRepo) CountByType(eventType string) (int64, error) {
	var count int64
	err := r.db.Model(&models.AnalyticsEvent{}).
		Where("event_type = ?", eventType).
		Count(&count).Error
	return count, err
}
