package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteSettings is a single-row record of site-wide configuration.
// Last write wins.
type SiteSettings struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	GithubURL       string    `json:"github_url" db:"github_url" gorm:"type:text"`
	LinkedinURL     string    `json:"linkedin_url" db:"linkedin_url" gorm:"type:text"`
	TwitterURL      string    `json:"twitter_url" db:"twitter_url" gorm:"type:text"`
	Email           string    `json:"email" db:"email" gorm:"type:text"`
	MetaTitle       string    `json:"meta_title" db:"meta_title" gorm:"type:text"`
	MetaDescription string    `json:"meta_description" db:"meta_description" gorm:"type:text"`
	OGImageURL      string    `json:"og_image_url" db:"og_image_url" gorm:"type:text"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
