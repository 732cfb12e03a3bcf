package models

import (
	"time"

	"github.com/google/uuid"
)

// Analytics event types.
const (
	EventPageView       = "page_view"
	EventProjectView    = "project_view"
	EventResumeDownload = "resume_download"
)

// AnalyticsEvent is one append-only usage event. PagePath is set for page
// views, ProjectID for project views; the project reference is lookup-only.
type AnalyticsEvent struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	EventType string     `json:"event_type" db:"event_type" gorm:"type:text;not null;index"`
	PagePath  *string    `json:"page_path,omitempty" db:"page_path" gorm:"type:text"`
	ProjectID *uuid.UUID `json:"project_id,omitempty" db:"project_id" gorm:"type:uuid"`
	UserAgent string     `json:"user_agent" db:"user_agent" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"not null;index"`
}
